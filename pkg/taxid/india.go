package taxid

import (
	"fmt"
	"strings"

	"github.com/coolbeans/taxid/pkg/lookup"
)

// mod36Alphabet is the value table for the GSTIN check character: digits map
// to 0-9 and letters to 10-35.
const mod36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// panEntityTypes maps the fourth PAN character to its holder category.
var panEntityTypes = map[byte]string{
	'A': "Association of persons",
	'B': "Body of individuals",
	'C': "Company",
	'F': "Firm",
	'G': "Government",
	'H': "Hindu undivided family",
	'J': "Artificial juridical person",
	'L': "Local authority",
	'P': "Individual",
	'T': "Trust",
}

var gstinSchema = &Schema{
	Kind:   KindGSTIN,
	Length: 15,
	Segments: []Segment{
		{Name: "state", Start: 0, Length: 2, Class: ClassDigit, Role: RoleStateCode},
		{Name: "pan", Start: 2, Length: 10, Class: ClassAlphaNum, Role: RoleBody},
		{Name: "entity", Start: 12, Length: 1, Class: ClassAlphaNum, Role: RoleSequence},
		{Name: "marker", Start: 13, Length: 1, Class: ClassLiteral, Literal: "Z", Role: RoleFixedMarker},
		{Name: "check", Start: 14, Length: 1, Class: ClassAlphaNum, Role: RoleCheckDigit},
	},
}

var panSchema = &Schema{
	Kind:   KindPAN,
	Length: 10,
	Segments: []Segment{
		{Name: "series", Start: 0, Length: 3, Class: ClassAlpha, Role: RoleBody},
		{Name: "entityType", Start: 3, Length: 1, Class: ClassAlpha, Role: RoleEntityType},
		{Name: "nameInitial", Start: 4, Length: 1, Class: ClassAlpha, Role: RoleBody},
		{Name: "sequence", Start: 5, Length: 4, Class: ClassDigit, Role: RoleSequence},
		{Name: "check", Start: 9, Length: 1, Class: ClassAlpha, Role: RoleCheckDigit},
	},
}

// mod36CheckCharacter computes the GSTIN check character over the payload
// (the first 14 characters). Positions alternate weight 1 and 2 starting with
// 1; weighted products above 35 are folded as base-36 quotient plus
// remainder.
func mod36CheckCharacter(payload string) (byte, error) {
	sum := 0
	for i := 0; i < len(payload); i++ {
		value := strings.IndexByte(mod36Alphabet, payload[i])
		if value < 0 {
			return 0, fmt.Errorf("character %q is outside the GSTIN alphabet", payload[i])
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		product := value * factor
		sum += product/36 + product%36
	}
	return mod36Alphabet[(36-sum%36)%36], nil
}

// panStructureError checks the PAN-internal layout of a 10-character value
// and returns the first violation, or nil. The trailing check letter is only
// format-checked; PAN publishes no verification algorithm for it.
func panStructureError(value string) *ValidationError {
	if err := panSchema.CheckClasses(value); err != nil {
		return err
	}
	if _, ok := panEntityTypes[value[3]]; !ok {
		return &ValidationError{
			Kind:    ErrInvalidFormat,
			Message: fmt.Sprintf("pan entity-type letter %q is not a recognized holder category", value[3:4]),
		}
	}
	return nil
}

// ---- GSTIN ----

type gstinStrategy struct{}

func newGSTINStrategy() *gstinStrategy { return &gstinStrategy{} }

func (s *gstinStrategy) Kind() Kind       { return KindGSTIN }
func (s *gstinStrategy) Country() Country { return CountryIN }

func (s *gstinStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindGSTIN, normalized, ErrMissingValue, "gstin is empty")
	}
	if err := gstinSchema.CheckLength(normalized); err != nil {
		return ValidationResult{Kind: KindGSTIN, Normalized: normalized, Err: err}
	}
	if err := gstinSchema.CheckClasses(normalized); err != nil {
		return ValidationResult{Kind: KindGSTIN, Normalized: normalized, Err: err}
	}
	if err := panStructureError(normalized[2:12]); err != nil {
		return ValidationResult{Kind: KindGSTIN, Normalized: normalized, Err: err}
	}

	stateCode := normalized[:2]
	entry, ok := lookup.IndiaStates().ByCode(stateCode)
	if !ok {
		return invalid(KindGSTIN, normalized, ErrInvalidLookup,
			fmt.Sprintf("state code %q is not assigned", stateCode))
	}
	if !entry.Active {
		return invalid(KindGSTIN, normalized, ErrInvalidLookup,
			fmt.Sprintf("state code %q (%s) is no longer issued", stateCode, entry.Name))
	}

	if err := gstinSchema.CheckLiterals(normalized); err != nil {
		return ValidationResult{Kind: KindGSTIN, Normalized: normalized, Err: err}
	}

	expected, err := mod36CheckCharacter(normalized[:14])
	if err != nil {
		return invalid(KindGSTIN, normalized, ErrInvalidFormat, err.Error())
	}
	if normalized[14] != expected {
		return invalid(KindGSTIN, normalized, ErrInvalidCheck,
			fmt.Sprintf("check character %q does not match computed %q", normalized[14:], string(expected)))
	}

	return valid(KindGSTIN, normalized, gstinSchema.Extract(normalized))
}

func (s *gstinStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid gstin: %s", result.Err.Message)
	}
	stateEntry, _ := lookup.IndiaStates().ByCode(result.Segments["state"])
	lookups := map[string]lookup.Entry{"state": stateEntry}
	if name, ok := panEntityTypes[result.Normalized[5]]; ok {
		lookups["entityType"] = lookup.Entry{Code: result.Normalized[5:6], Name: name, Active: true}
	}
	return &ParsedIdentifier{
		Kind:       KindGSTIN,
		Normalized: result.Normalized,
		Segments:   result.Segments,
		Lookups:    lookups,
	}, nil
}

func (s *gstinStrategy) Format(raw, separator string) (string, error) {
	normalized := Normalize(raw)
	if err := gstinSchema.CheckLength(normalized); err != nil {
		return "", fmt.Errorf("cannot format gstin: %s", err.Message)
	}
	if err := gstinSchema.CheckClasses(normalized); err != nil {
		return "", fmt.Errorf("cannot format gstin: %s", err.Message)
	}
	if separator == "" {
		separator = "-"
	}
	return formatGroups(normalized, []int{2, 10, 1, 1, 1}, separator), nil
}

func (s *gstinStrategy) Generate(segments map[string]string) (string, error) {
	stateCode := segmentOrDefault(segments, "state", "27")
	pan := strings.ToUpper(segmentOrDefault(segments, "pan", "AAAPA1234A"))
	entity := strings.ToUpper(segmentOrDefault(segments, "entity", "1"))

	entry, ok := lookup.IndiaStates().ByCode(stateCode)
	if !ok {
		return "", fmt.Errorf("unknown state code %q", stateCode)
	}
	if !entry.Active {
		return "", fmt.Errorf("state code %q (%s) is no longer issued", stateCode, entry.Name)
	}
	if len(pan) != 10 {
		return "", fmt.Errorf("pan component must be 10 characters, got %d", len(pan))
	}
	if err := panStructureError(pan); err != nil {
		return "", fmt.Errorf("pan component: %s", err.Message)
	}
	if len(entity) != 1 || !isUpperAlphaNum(entity) {
		return "", fmt.Errorf("entity component must be one letter or digit, got %q", entity)
	}

	payload := stateCode + pan + entity + "Z"
	check, err := mod36CheckCharacter(payload)
	if err != nil {
		return "", err
	}
	return payload + string(check), nil
}

// ---- PAN ----

type panStrategy struct{}

func newPANStrategy() *panStrategy { return &panStrategy{} }

func (s *panStrategy) Kind() Kind       { return KindPAN }
func (s *panStrategy) Country() Country { return CountryIN }

func (s *panStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindPAN, normalized, ErrMissingValue, "pan is empty")
	}
	if err := panSchema.CheckLength(normalized); err != nil {
		return ValidationResult{Kind: KindPAN, Normalized: normalized, Err: err}
	}
	if err := panStructureError(normalized); err != nil {
		return ValidationResult{Kind: KindPAN, Normalized: normalized, Err: err}
	}
	return valid(KindPAN, normalized, panSchema.Extract(normalized))
}

func (s *panStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid pan: %s", result.Err.Message)
	}
	lookups := map[string]lookup.Entry{}
	if name, ok := panEntityTypes[result.Normalized[3]]; ok {
		lookups["entityType"] = lookup.Entry{Code: result.Normalized[3:4], Name: name, Active: true}
	}
	return &ParsedIdentifier{
		Kind:       KindPAN,
		Normalized: result.Normalized,
		Segments:   result.Segments,
		Lookups:    lookups,
	}, nil
}

func (s *panStrategy) Format(raw, separator string) (string, error) {
	normalized := Normalize(raw)
	if err := panSchema.CheckLength(normalized); err != nil {
		return "", fmt.Errorf("cannot format pan: %s", err.Message)
	}
	if err := panStructureError(normalized); err != nil {
		return "", fmt.Errorf("cannot format pan: %s", err.Message)
	}
	if separator == "" {
		separator = "-"
	}
	return formatGroups(normalized, []int{5, 4, 1}, separator), nil
}

func (s *panStrategy) Generate(segments map[string]string) (string, error) {
	series := strings.ToUpper(segmentOrDefault(segments, "series", "AAA"))
	entityType := strings.ToUpper(segmentOrDefault(segments, "entityType", "P"))
	nameInitial := strings.ToUpper(segmentOrDefault(segments, "nameInitial", "A"))
	sequence := segmentOrDefault(segments, "sequence", "1234")
	check := strings.ToUpper(segmentOrDefault(segments, "check", "A"))

	candidate := series + entityType + nameInitial + sequence + check
	if len(candidate) != panSchema.Length {
		return "", fmt.Errorf("pan components assemble to %d characters, want %d", len(candidate), panSchema.Length)
	}
	if err := panStructureError(candidate); err != nil {
		return "", fmt.Errorf("pan components: %s", err.Message)
	}
	return candidate, nil
}

// ---- HSN ----

type hsnStrategy struct{}

func newHSNStrategy() *hsnStrategy { return &hsnStrategy{} }

func (s *hsnStrategy) Kind() Kind       { return KindHSN }
func (s *hsnStrategy) Country() Country { return CountryIN }

func (s *hsnStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindHSN, normalized, ErrMissingValue, "hsn code is empty")
	}
	if len(normalized) != 4 && len(normalized) != 6 && len(normalized) != 8 {
		return invalid(KindHSN, normalized, ErrInvalidLength,
			fmt.Sprintf("hsn code must be 4, 6, or 8 digits, got %d characters", len(normalized)))
	}
	if !isDigits(normalized) {
		return invalid(KindHSN, normalized, ErrInvalidFormat,
			fmt.Sprintf("hsn code must be digits, got %q", normalized))
	}
	return valid(KindHSN, normalized, map[string]string{"code": normalized})
}

func (s *hsnStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid hsn code: %s", result.Err.Message)
	}
	return &ParsedIdentifier{Kind: KindHSN, Normalized: result.Normalized, Segments: result.Segments}, nil
}

func (s *hsnStrategy) Format(raw, separator string) (string, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return "", fmt.Errorf("cannot format hsn code: %s", result.Err.Message)
	}
	return result.Normalized, nil
}

func (s *hsnStrategy) Generate(segments map[string]string) (string, error) {
	code := segmentOrDefault(segments, "code", "8471")
	result := s.Validate(code)
	if !result.Valid {
		return "", fmt.Errorf("hsn component: %s", result.Err.Message)
	}
	return result.Normalized, nil
}

// ---- SAC ----

type sacStrategy struct{}

func newSACStrategy() *sacStrategy { return &sacStrategy{} }

func (s *sacStrategy) Kind() Kind       { return KindSAC }
func (s *sacStrategy) Country() Country { return CountryIN }

func (s *sacStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindSAC, normalized, ErrMissingValue, "sac code is empty")
	}
	if len(normalized) != 6 {
		return invalid(KindSAC, normalized, ErrInvalidLength,
			fmt.Sprintf("sac code must be 6 digits, got %d characters", len(normalized)))
	}
	if !isDigits(normalized) {
		return invalid(KindSAC, normalized, ErrInvalidFormat,
			fmt.Sprintf("sac code must be digits, got %q", normalized))
	}
	if !strings.HasPrefix(normalized, "99") {
		return invalid(KindSAC, normalized, ErrInvalidPrefix,
			fmt.Sprintf("sac code must start with 99, got %q", normalized[:2]))
	}
	return valid(KindSAC, normalized, map[string]string{"code": normalized})
}

func (s *sacStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid sac code: %s", result.Err.Message)
	}
	return &ParsedIdentifier{Kind: KindSAC, Normalized: result.Normalized, Segments: result.Segments}, nil
}

func (s *sacStrategy) Format(raw, separator string) (string, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return "", fmt.Errorf("cannot format sac code: %s", result.Err.Message)
	}
	return result.Normalized, nil
}

func (s *sacStrategy) Generate(segments map[string]string) (string, error) {
	code := segmentOrDefault(segments, "code", "998311")
	result := s.Validate(code)
	if !result.Valid {
		return "", fmt.Errorf("sac component: %s", result.Err.Message)
	}
	return result.Normalized, nil
}

// segmentOrDefault returns segments[key] when present and non-empty,
// otherwise the fallback.
func segmentOrDefault(segments map[string]string, key, fallback string) string {
	if value, ok := segments[key]; ok && value != "" {
		return value
	}
	return fallback
}
