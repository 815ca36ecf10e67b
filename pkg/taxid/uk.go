package taxid

import (
	"fmt"
	"regexp"
	"strings"
)

// utrWeights are the modulus-11 weights over the first nine UTR digits.
var utrWeights = [9]int{6, 7, 8, 9, 10, 5, 4, 3, 2}

// NINO letter-exclusion policies.
var (
	ninoFirstLetterExcluded  = map[byte]bool{'D': true, 'F': true, 'I': true, 'Q': true, 'U': true, 'V': true}
	ninoSecondLetterExcluded = map[byte]bool{'D': true, 'F': true, 'I': true, 'O': true, 'Q': true, 'U': true, 'V': true}
	ninoPrefixBlacklist      = map[string]bool{
		"BG": true, "GB": true, "NK": true, "KN": true, "TN": true, "NT": true, "ZZ": true,
	}
	ninoSuffixLetters = map[byte]bool{'A': true, 'B': true, 'C': true, 'D': true}
)

var utrSchema = &Schema{
	Kind:   KindUKUTR,
	Length: 10,
	Segments: []Segment{
		{Name: "digits", Start: 0, Length: 9, Class: ClassDigit, Role: RoleSequence},
		{Name: "check", Start: 9, Length: 1, Class: ClassDigit, Role: RoleCheckDigit},
	},
}

var ninoSchema = &Schema{
	Kind:   KindUKNINO,
	Length: 9,
	Segments: []Segment{
		{Name: "prefix", Start: 0, Length: 2, Class: ClassAlpha, Role: RoleBody},
		{Name: "digits", Start: 2, Length: 6, Class: ClassDigit, Role: RoleSequence},
		{Name: "suffix", Start: 8, Length: 1, Class: ClassAlpha, Role: RoleCheckDigit},
	},
}

var payePattern = regexp.MustCompile(`^(\d{3})/([A-Z0-9]{1,10})$`)

// utrCheckDigit computes the UTR check digit from the first nine digits.
// The raw value 11 - (sum % 11) is folded with the published convention:
// 10 becomes 0 and 11 becomes 1.
func utrCheckDigit(digits string) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * utrWeights[i]
	}
	check := 11 - sum%11
	switch check {
	case 10:
		return 0
	case 11:
		return 1
	default:
		return check
	}
}

// ---- VAT ----

type ukVATStrategy struct{}

func newUKVATStrategy() *ukVATStrategy { return &ukVATStrategy{} }

func (s *ukVATStrategy) Kind() Kind       { return KindUKVAT }
func (s *ukVATStrategy) Country() Country { return CountryUK }

func (s *ukVATStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindUKVAT, normalized, ErrMissingValue, "vat number is empty")
	}
	if len(normalized) != 7 && len(normalized) != 11 && len(normalized) != 14 {
		return invalid(KindUKVAT, normalized, ErrInvalidLength,
			fmt.Sprintf("vat number must be 7, 11, or 14 characters, got %d", len(normalized)))
	}
	if !strings.HasPrefix(normalized, "GB") {
		return invalid(KindUKVAT, normalized, ErrInvalidPrefix,
			fmt.Sprintf("vat number must start with GB, got %q", normalized[:2]))
	}

	body := normalized[2:]
	segments := map[string]string{"prefix": "GB"}
	switch len(body) {
	case 9:
		if !isDigits(body) {
			return invalid(KindUKVAT, normalized, ErrInvalidFormat,
				fmt.Sprintf("vat number body must be 9 digits, got %q", body))
		}
		segments["number"] = body
	case 12:
		if !isDigits(body) {
			return invalid(KindUKVAT, normalized, ErrInvalidFormat,
				fmt.Sprintf("branch trader vat number body must be 12 digits, got %q", body))
		}
		segments["number"] = body[:9]
		segments["branch"] = body[9:]
	case 5:
		scheme := body[:2]
		if scheme != "GD" && scheme != "HA" {
			return invalid(KindUKVAT, normalized, ErrInvalidFormat,
				fmt.Sprintf("short vat number must use scheme GD or HA, got %q", scheme))
		}
		if !isDigits(body[2:]) {
			return invalid(KindUKVAT, normalized, ErrInvalidFormat,
				fmt.Sprintf("%s vat number must end in 3 digits, got %q", scheme, body[2:]))
		}
		segments["scheme"] = scheme
		segments["number"] = body[2:]
	}
	return valid(KindUKVAT, normalized, segments)
}

func (s *ukVATStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid vat number: %s", result.Err.Message)
	}
	return &ParsedIdentifier{Kind: KindUKVAT, Normalized: result.Normalized, Segments: result.Segments}, nil
}

func (s *ukVATStrategy) Format(raw, separator string) (string, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return "", fmt.Errorf("cannot format vat number: %s", result.Err.Message)
	}
	if separator == "" {
		separator = " "
	}
	switch len(result.Normalized) {
	case 11:
		return formatGroups(result.Normalized, []int{2, 3, 4, 2}, separator), nil
	case 14:
		return formatGroups(result.Normalized, []int{2, 3, 4, 2, 3}, separator), nil
	default:
		return formatGroups(result.Normalized, []int{2, 2, 3}, separator), nil
	}
}

func (s *ukVATStrategy) Generate(segments map[string]string) (string, error) {
	scheme := strings.ToUpper(segmentOrDefault(segments, "scheme", "standard"))
	number := segmentOrDefault(segments, "number", "")
	switch scheme {
	case "STANDARD":
		if number == "" {
			number = "123456789"
		}
		if !isDigits(number) || len(number) > 9 {
			return "", fmt.Errorf("vat number component must be up to 9 digits, got %q", number)
		}
		return "GB" + leftPadZeros(number, 9), nil
	case "BRANCH":
		if number == "" {
			number = "123456789001"
		}
		if !isDigits(number) || len(number) > 12 {
			return "", fmt.Errorf("branch vat number component must be up to 12 digits, got %q", number)
		}
		return "GB" + leftPadZeros(number, 12), nil
	case "GD", "HA":
		if number == "" {
			number = "001"
		}
		if !isDigits(number) || len(number) > 3 {
			return "", fmt.Errorf("%s vat number component must be up to 3 digits, got %q", scheme, number)
		}
		return "GB" + scheme + leftPadZeros(number, 3), nil
	default:
		return "", fmt.Errorf("vat scheme must be standard, branch, GD, or HA, got %q", scheme)
	}
}

// ---- Company Number ----

type ukCompanyStrategy struct{}

func newUKCompanyStrategy() *ukCompanyStrategy { return &ukCompanyStrategy{} }

func (s *ukCompanyStrategy) Kind() Kind       { return KindUKCompanyNumber }
func (s *ukCompanyStrategy) Country() Country { return CountryUK }

func (s *ukCompanyStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindUKCompanyNumber, normalized, ErrMissingValue, "company number is empty")
	}
	switch len(normalized) {
	case 8:
		if isDigits(normalized) {
			return valid(KindUKCompanyNumber, normalized, map[string]string{"number": normalized})
		}
		prefix := normalized[:2]
		if (prefix == "SC" || prefix == "NI") && isDigits(normalized[2:]) {
			return valid(KindUKCompanyNumber, normalized, map[string]string{
				"prefix": prefix,
				"number": normalized[2:],
			})
		}
		return invalid(KindUKCompanyNumber, normalized, ErrInvalidFormat,
			fmt.Sprintf("company number must be 8 digits or SC/NI plus 6 digits, got %q", normalized))
	case 6:
		// Legacy pre-1982 numbers without leading zeros.
		if !isDigits(normalized) {
			return invalid(KindUKCompanyNumber, normalized, ErrInvalidFormat,
				fmt.Sprintf("legacy company number must be 6 digits, got %q", normalized))
		}
		return valid(KindUKCompanyNumber, normalized, map[string]string{"number": normalized})
	default:
		return invalid(KindUKCompanyNumber, normalized, ErrInvalidLength,
			fmt.Sprintf("company number must be 6 or 8 characters, got %d", len(normalized)))
	}
}

func (s *ukCompanyStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid company number: %s", result.Err.Message)
	}
	return &ParsedIdentifier{Kind: KindUKCompanyNumber, Normalized: result.Normalized, Segments: result.Segments}, nil
}

func (s *ukCompanyStrategy) Format(raw, separator string) (string, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return "", fmt.Errorf("cannot format company number: %s", result.Err.Message)
	}
	// Companies House renders the number without separators.
	return result.Normalized, nil
}

func (s *ukCompanyStrategy) Generate(segments map[string]string) (string, error) {
	prefix := strings.ToUpper(segmentOrDefault(segments, "prefix", ""))
	number := segmentOrDefault(segments, "number", "12345678")
	if prefix != "" {
		if prefix != "SC" && prefix != "NI" {
			return "", fmt.Errorf("company number prefix must be SC or NI, got %q", prefix)
		}
		if !isDigits(number) || len(number) > 6 {
			return "", fmt.Errorf("prefixed company number component must be up to 6 digits, got %q", number)
		}
		return prefix + leftPadZeros(number, 6), nil
	}
	if !isDigits(number) || len(number) > 8 {
		return "", fmt.Errorf("company number component must be up to 8 digits, got %q", number)
	}
	return leftPadZeros(number, 8), nil
}

// ---- UTR ----

type ukUTRStrategy struct{}

func newUKUTRStrategy() *ukUTRStrategy { return &ukUTRStrategy{} }

func (s *ukUTRStrategy) Kind() Kind       { return KindUKUTR }
func (s *ukUTRStrategy) Country() Country { return CountryUK }

func (s *ukUTRStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindUKUTR, normalized, ErrMissingValue, "utr is empty")
	}
	if err := utrSchema.CheckLength(normalized); err != nil {
		return ValidationResult{Kind: KindUKUTR, Normalized: normalized, Err: err}
	}
	if err := utrSchema.CheckClasses(normalized); err != nil {
		return ValidationResult{Kind: KindUKUTR, Normalized: normalized, Err: err}
	}
	expected := utrCheckDigit(normalized[:9])
	if int(normalized[9]-'0') != expected {
		return invalid(KindUKUTR, normalized, ErrInvalidCheck,
			fmt.Sprintf("check digit %q does not match computed %d", normalized[9:], expected))
	}
	return valid(KindUKUTR, normalized, utrSchema.Extract(normalized))
}

func (s *ukUTRStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid utr: %s", result.Err.Message)
	}
	return &ParsedIdentifier{Kind: KindUKUTR, Normalized: result.Normalized, Segments: result.Segments}, nil
}

func (s *ukUTRStrategy) Format(raw, separator string) (string, error) {
	normalized := Normalize(raw)
	if err := utrSchema.CheckLength(normalized); err != nil {
		return "", fmt.Errorf("cannot format utr: %s", err.Message)
	}
	if err := utrSchema.CheckClasses(normalized); err != nil {
		return "", fmt.Errorf("cannot format utr: %s", err.Message)
	}
	if separator == "" {
		separator = " "
	}
	return formatGroups(normalized, []int{5, 5}, separator), nil
}

func (s *ukUTRStrategy) Generate(segments map[string]string) (string, error) {
	digits := segmentOrDefault(segments, "digits", "123456789")
	if !isDigits(digits) || len(digits) > 9 {
		return "", fmt.Errorf("utr digits component must be up to 9 digits, got %q", digits)
	}
	digits = leftPadZeros(digits, 9)
	return fmt.Sprintf("%s%d", digits, utrCheckDigit(digits)), nil
}

// ---- NINO ----

type ukNINOStrategy struct{}

func newUKNINOStrategy() *ukNINOStrategy { return &ukNINOStrategy{} }

func (s *ukNINOStrategy) Kind() Kind       { return KindUKNINO }
func (s *ukNINOStrategy) Country() Country { return CountryUK }

// ninoPolicyError applies the letter-exclusion policies to a structurally
// shaped NINO and returns the first violation, or nil.
func ninoPolicyError(normalized string) *ValidationError {
	if ninoFirstLetterExcluded[normalized[0]] {
		return &ValidationError{
			Kind:    ErrInvalidFormat,
			Message: fmt.Sprintf("nino first letter %q is not allowed", normalized[:1]),
		}
	}
	if ninoSecondLetterExcluded[normalized[1]] {
		return &ValidationError{
			Kind:    ErrInvalidFormat,
			Message: fmt.Sprintf("nino second letter %q is not allowed", normalized[1:2]),
		}
	}
	if ninoPrefixBlacklist[normalized[:2]] {
		return &ValidationError{
			Kind:    ErrInvalidFormat,
			Message: fmt.Sprintf("nino prefix %q is not allocated", normalized[:2]),
		}
	}
	if !ninoSuffixLetters[normalized[8]] {
		return &ValidationError{
			Kind:    ErrInvalidFormat,
			Message: fmt.Sprintf("nino suffix must be A, B, C, or D, got %q", normalized[8:]),
		}
	}
	return nil
}

func (s *ukNINOStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindUKNINO, normalized, ErrMissingValue, "nino is empty")
	}
	if err := ninoSchema.CheckLength(normalized); err != nil {
		return ValidationResult{Kind: KindUKNINO, Normalized: normalized, Err: err}
	}
	if err := ninoSchema.CheckClasses(normalized); err != nil {
		return ValidationResult{Kind: KindUKNINO, Normalized: normalized, Err: err}
	}
	if err := ninoPolicyError(normalized); err != nil {
		return ValidationResult{Kind: KindUKNINO, Normalized: normalized, Err: err}
	}
	return valid(KindUKNINO, normalized, ninoSchema.Extract(normalized))
}

func (s *ukNINOStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid nino: %s", result.Err.Message)
	}
	return &ParsedIdentifier{Kind: KindUKNINO, Normalized: result.Normalized, Segments: result.Segments}, nil
}

func (s *ukNINOStrategy) Format(raw, separator string) (string, error) {
	normalized := Normalize(raw)
	if err := ninoSchema.CheckLength(normalized); err != nil {
		return "", fmt.Errorf("cannot format nino: %s", err.Message)
	}
	if err := ninoSchema.CheckClasses(normalized); err != nil {
		return "", fmt.Errorf("cannot format nino: %s", err.Message)
	}
	if separator == "" {
		separator = " "
	}
	return formatGroups(normalized, []int{2, 2, 2, 2, 1}, separator), nil
}

func (s *ukNINOStrategy) Generate(segments map[string]string) (string, error) {
	prefix := strings.ToUpper(segmentOrDefault(segments, "prefix", "AA"))
	digits := segmentOrDefault(segments, "digits", "123456")
	suffix := strings.ToUpper(segmentOrDefault(segments, "suffix", "C"))

	if len(prefix) != 2 || !isUpperAlpha(prefix) {
		return "", fmt.Errorf("nino prefix component must be 2 letters, got %q", prefix)
	}
	if !isDigits(digits) || len(digits) > 6 {
		return "", fmt.Errorf("nino digits component must be up to 6 digits, got %q", digits)
	}
	if len(suffix) != 1 || !isUpperAlpha(suffix) {
		return "", fmt.Errorf("nino suffix component must be one letter, got %q", suffix)
	}

	candidate := prefix + leftPadZeros(digits, 6) + suffix
	if err := ninoPolicyError(candidate); err != nil {
		return "", fmt.Errorf("nino components: %s", err.Message)
	}
	return candidate, nil
}

// ---- PAYE ----

type ukPAYEStrategy struct{}

func newUKPAYEStrategy() *ukPAYEStrategy { return &ukPAYEStrategy{} }

func (s *ukPAYEStrategy) Kind() Kind       { return KindUKPAYE }
func (s *ukPAYEStrategy) Country() Country { return CountryUK }

func (s *ukPAYEStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindUKPAYE, normalized, ErrMissingValue, "paye reference is empty")
	}
	if len(normalized) < 5 || len(normalized) > 14 {
		return invalid(KindUKPAYE, normalized, ErrInvalidLength,
			fmt.Sprintf("paye reference must be 5 to 14 characters, got %d", len(normalized)))
	}
	match := payePattern.FindStringSubmatch(normalized)
	if match == nil {
		return invalid(KindUKPAYE, normalized, ErrInvalidFormat,
			fmt.Sprintf("paye reference must be 3 digits, a slash, and 1-10 letters or digits, got %q", normalized))
	}
	return valid(KindUKPAYE, normalized, map[string]string{
		"office":    match[1],
		"reference": match[2],
	})
}

func (s *ukPAYEStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid paye reference: %s", result.Err.Message)
	}
	return &ParsedIdentifier{Kind: KindUKPAYE, Normalized: result.Normalized, Segments: result.Segments}, nil
}

func (s *ukPAYEStrategy) Format(raw, separator string) (string, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return "", fmt.Errorf("cannot format paye reference: %s", result.Err.Message)
	}
	// The slash is part of the reference itself.
	return result.Normalized, nil
}

func (s *ukPAYEStrategy) Generate(segments map[string]string) (string, error) {
	office := segmentOrDefault(segments, "office", "123")
	reference := strings.ToUpper(segmentOrDefault(segments, "reference", "AB456"))
	if !isDigits(office) || len(office) != 3 {
		return "", fmt.Errorf("paye office component must be 3 digits, got %q", office)
	}
	if len(reference) < 1 || len(reference) > 10 || !isUpperAlphaNum(reference) {
		return "", fmt.Errorf("paye reference component must be 1-10 letters or digits, got %q", reference)
	}
	return office + "/" + reference, nil
}
