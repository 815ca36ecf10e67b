package taxid

import "fmt"

// CharClass constrains the characters a segment may contain.
type CharClass int

const (
	ClassDigit CharClass = iota
	ClassAlpha
	ClassAlphaNum
	ClassLiteral
)

// Role is the semantic meaning of a segment within its identifier.
type Role int

const (
	RoleBody Role = iota
	RoleStateCode
	RoleEntityType
	RoleSequence
	RoleCheckDigit
	RoleFixedMarker
)

// Segment is one named slice of a fixed-length identifier.
type Segment struct {
	Name   string
	Start  int
	Length int
	Class  CharClass

	// Literal is the required value for ClassLiteral segments.
	Literal string

	Role Role
}

// Schema describes a fixed-length identifier layout: total length plus an
// ordered list of segments covering it. Variable-length kinds (UK VAT,
// company numbers, PAYE, HSN) do not use schemas.
type Schema struct {
	Kind     Kind
	Length   int
	Segments []Segment
}

// Extract slices a normalized value into named segment values. The value must
// already have the schema's length.
func (s *Schema) Extract(value string) map[string]string {
	segments := make(map[string]string, len(s.Segments))
	for _, segment := range s.Segments {
		segments[segment.Name] = value[segment.Start : segment.Start+segment.Length]
	}
	return segments
}

// CheckLength reports an invalid-length error when the value has the wrong
// character count, or nil.
func (s *Schema) CheckLength(value string) *ValidationError {
	if len(value) != s.Length {
		return &ValidationError{
			Kind:    ErrInvalidLength,
			Message: fmt.Sprintf("%s must be %d characters, got %d", s.Kind, s.Length, len(value)),
		}
	}
	return nil
}

// CheckClasses verifies each non-literal segment against its character class
// and returns the first violation, or nil. Literal segments are checked
// separately by CheckLiterals so that a wrong fixed marker reports
// ErrInvalidPrefix rather than ErrInvalidFormat.
func (s *Schema) CheckClasses(value string) *ValidationError {
	for _, segment := range s.Segments {
		if segment.Class == ClassLiteral {
			continue
		}
		segmentValue := value[segment.Start : segment.Start+segment.Length]
		if !classMatches(segment.Class, segmentValue) {
			return &ValidationError{
				Kind: ErrInvalidFormat,
				Message: fmt.Sprintf("%s segment %q must be %s, got %q",
					s.Kind, segment.Name, classDescription(segment.Class), segmentValue),
			}
		}
	}
	return nil
}

// CheckLiterals verifies fixed-marker segments and returns the first mismatch
// as an invalid-prefix error, or nil.
func (s *Schema) CheckLiterals(value string) *ValidationError {
	for _, segment := range s.Segments {
		if segment.Class != ClassLiteral {
			continue
		}
		segmentValue := value[segment.Start : segment.Start+segment.Length]
		if segmentValue != segment.Literal {
			return &ValidationError{
				Kind: ErrInvalidPrefix,
				Message: fmt.Sprintf("%s segment %q must be %q, got %q",
					s.Kind, segment.Name, segment.Literal, segmentValue),
			}
		}
	}
	return nil
}

func classMatches(class CharClass, value string) bool {
	switch class {
	case ClassDigit:
		return isDigits(value)
	case ClassAlpha:
		return isUpperAlpha(value)
	case ClassAlphaNum:
		return isUpperAlphaNum(value)
	default:
		return true
	}
}

func classDescription(class CharClass) string {
	switch class {
	case ClassDigit:
		return "digits"
	case ClassAlpha:
		return "letters"
	case ClassAlphaNum:
		return "letters or digits"
	default:
		return "fixed"
	}
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isUpperAlpha(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isUpperAlphaNum(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
