package taxid

import "fmt"

var jpCorporateSchema = &Schema{
	Kind:   KindJPCorporateNumber,
	Length: 13,
	Segments: []Segment{
		{Name: "check", Start: 0, Length: 1, Class: ClassDigit, Role: RoleCheckDigit},
		{Name: "base", Start: 1, Length: 12, Class: ClassDigit, Role: RoleSequence},
	},
}

var jpInvoiceSchema = &Schema{
	Kind:   KindJPInvoiceNumber,
	Length: 14,
	Segments: []Segment{
		{Name: "marker", Start: 0, Length: 1, Class: ClassLiteral, Literal: "T", Role: RoleFixedMarker},
		{Name: "check", Start: 1, Length: 1, Class: ClassDigit, Role: RoleCheckDigit},
		{Name: "base", Start: 2, Length: 12, Class: ClassDigit, Role: RoleSequence},
	},
}

// jpCorporateCheckDigit computes the leading check digit of a Corporate
// Number from its 12 base digits. Digits are weighted 1 and 2 alternating
// from the rightmost position; check = 9 - (sum % 9), with a raw 9 mapped
// to 0.
func jpCorporateCheckDigit(base string) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		digit := int(base[i] - '0')
		weight := 1
		if (len(base)-i)%2 == 0 {
			weight = 2
		}
		sum += digit * weight
	}
	check := 9 - sum%9
	if check == 9 {
		return 0
	}
	return check
}

// ---- Corporate Number ----

type jpCorporateStrategy struct{}

func newJPCorporateStrategy() *jpCorporateStrategy { return &jpCorporateStrategy{} }

func (s *jpCorporateStrategy) Kind() Kind       { return KindJPCorporateNumber }
func (s *jpCorporateStrategy) Country() Country { return CountryJP }

func (s *jpCorporateStrategy) Validate(raw string) ValidationResult {
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindJPCorporateNumber, normalized, ErrMissingValue, "corporate number is empty")
	}
	if err := jpCorporateSchema.CheckLength(normalized); err != nil {
		return ValidationResult{Kind: KindJPCorporateNumber, Normalized: normalized, Err: err}
	}
	if err := jpCorporateSchema.CheckClasses(normalized); err != nil {
		return ValidationResult{Kind: KindJPCorporateNumber, Normalized: normalized, Err: err}
	}
	expected := jpCorporateCheckDigit(normalized[1:])
	if int(normalized[0]-'0') != expected {
		return invalid(KindJPCorporateNumber, normalized, ErrInvalidCheck,
			fmt.Sprintf("check digit %q does not match computed %d", normalized[:1], expected))
	}
	return valid(KindJPCorporateNumber, normalized, jpCorporateSchema.Extract(normalized))
}

func (s *jpCorporateStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid corporate number: %s", result.Err.Message)
	}
	return &ParsedIdentifier{
		Kind:       KindJPCorporateNumber,
		Normalized: result.Normalized,
		Segments:   result.Segments,
	}, nil
}

func (s *jpCorporateStrategy) Format(raw, separator string) (string, error) {
	normalized := Normalize(raw)
	if err := jpCorporateSchema.CheckLength(normalized); err != nil {
		return "", fmt.Errorf("cannot format corporate number: %s", err.Message)
	}
	if err := jpCorporateSchema.CheckClasses(normalized); err != nil {
		return "", fmt.Errorf("cannot format corporate number: %s", err.Message)
	}
	if separator == "" {
		separator = "-"
	}
	return formatGroups(normalized, []int{1, 12}, separator), nil
}

func (s *jpCorporateStrategy) Generate(segments map[string]string) (string, error) {
	base := segmentOrDefault(segments, "base", "000012345678")
	if !isDigits(base) || len(base) > 12 {
		return "", fmt.Errorf("corporate number base component must be up to 12 digits, got %q", base)
	}
	base = leftPadZeros(base, 12)
	return fmt.Sprintf("%d%s", jpCorporateCheckDigit(base), base), nil
}

// ---- Invoice Registration Number ----

type jpInvoiceStrategy struct {
	corporate *jpCorporateStrategy
}

func newJPInvoiceStrategy() *jpInvoiceStrategy {
	return &jpInvoiceStrategy{corporate: newJPCorporateStrategy()}
}

func (s *jpInvoiceStrategy) Kind() Kind       { return KindJPInvoiceNumber }
func (s *jpInvoiceStrategy) Country() Country { return CountryJP }

func (s *jpInvoiceStrategy) Validate(raw string) ValidationResult {
	// Normalization uppercases, so a lowercase t prefix is accepted.
	normalized := Normalize(raw)
	if normalized == "" {
		return invalid(KindJPInvoiceNumber, normalized, ErrMissingValue, "invoice registration number is empty")
	}
	if err := jpInvoiceSchema.CheckLength(normalized); err != nil {
		return ValidationResult{Kind: KindJPInvoiceNumber, Normalized: normalized, Err: err}
	}
	if err := jpInvoiceSchema.CheckClasses(normalized); err != nil {
		return ValidationResult{Kind: KindJPInvoiceNumber, Normalized: normalized, Err: err}
	}
	if err := jpInvoiceSchema.CheckLiterals(normalized); err != nil {
		return ValidationResult{Kind: KindJPInvoiceNumber, Normalized: normalized, Err: err}
	}
	corporateResult := s.corporate.Validate(normalized[1:])
	if !corporateResult.Valid {
		return ValidationResult{Kind: KindJPInvoiceNumber, Normalized: normalized, Err: corporateResult.Err}
	}
	return valid(KindJPInvoiceNumber, normalized, jpInvoiceSchema.Extract(normalized))
}

func (s *jpInvoiceStrategy) Parse(raw string) (*ParsedIdentifier, error) {
	result := s.Validate(raw)
	if !result.Valid {
		return nil, fmt.Errorf("invalid invoice registration number: %s", result.Err.Message)
	}
	return &ParsedIdentifier{
		Kind:       KindJPInvoiceNumber,
		Normalized: result.Normalized,
		Segments:   result.Segments,
	}, nil
}

func (s *jpInvoiceStrategy) Format(raw, separator string) (string, error) {
	normalized := Normalize(raw)
	if err := jpInvoiceSchema.CheckLength(normalized); err != nil {
		return "", fmt.Errorf("cannot format invoice registration number: %s", err.Message)
	}
	if err := jpInvoiceSchema.CheckClasses(normalized); err != nil {
		return "", fmt.Errorf("cannot format invoice registration number: %s", err.Message)
	}
	if separator == "" {
		separator = "-"
	}
	return formatGroups(normalized, []int{1, 13}, separator), nil
}

func (s *jpInvoiceStrategy) Generate(segments map[string]string) (string, error) {
	corporateNumber, err := s.corporate.Generate(segments)
	if err != nil {
		return "", err
	}
	return "T" + corporateNumber, nil
}
