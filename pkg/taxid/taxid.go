// Package taxid validates, parses, formats, and generates national tax
// identifiers across jurisdictions (India, Spain, Japan, United Kingdom).
// Every operation is a pure function over immutable inputs and static lookup
// tables; the package holds no mutable state and is safe for concurrent use.
package taxid

import (
	"strings"

	"github.com/coolbeans/taxid/pkg/lookup"
)

// Kind identifies one national identifier format.
type Kind string

const (
	KindGSTIN Kind = "gstin"
	KindPAN   Kind = "pan"
	KindHSN   Kind = "hsn"
	KindSAC   Kind = "sac"

	KindNIF        Kind = "nif"
	KindNIE        Kind = "nie"
	KindCIF        Kind = "cif"
	KindSpanishVAT Kind = "es-vat"

	KindJPCorporateNumber Kind = "jp-corporate"
	KindJPInvoiceNumber   Kind = "jp-invoice"

	KindUKVAT           Kind = "uk-vat"
	KindUKCompanyNumber Kind = "uk-company"
	KindUKUTR           Kind = "uk-utr"
	KindUKNINO          Kind = "uk-nino"
	KindUKPAYE          Kind = "uk-paye"
)

// Country is the issuing jurisdiction of an identifier kind.
type Country string

const (
	CountryIN Country = "IN"
	CountryES Country = "ES"
	CountryJP Country = "JP"
	CountryUK Country = "UK"
)

// ErrorKind classifies a validation failure. Kinds are checked in declaration
// order; a result carries exactly one primary cause.
type ErrorKind string

const (
	ErrMissingValue  ErrorKind = "missing_value"
	ErrInvalidLength ErrorKind = "invalid_length"
	ErrInvalidFormat ErrorKind = "invalid_format"
	ErrInvalidLookup ErrorKind = "invalid_lookup_code"
	ErrInvalidPrefix ErrorKind = "invalid_prefix"
	ErrInvalidCheck  ErrorKind = "invalid_check_digit"
)

// ValidationError describes why an identifier failed validation. It is data
// carried inside a ValidationResult, not a Go error: malformed user input
// never surfaces as an error from Validate.
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationResult is the outcome of validating one identifier.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Kind       Kind              `json:"kind"`
	Normalized string            `json:"normalized"`
	Segments   map[string]string `json:"segments,omitempty"`
	Err        *ValidationError  `json:"error,omitempty"`
}

// ParsedIdentifier is a structurally and semantically valid identifier
// decomposed into named segments, with any lookup entries its segments
// resolved to (e.g. the state behind a GSTIN's state code).
type ParsedIdentifier struct {
	Kind       Kind                    `json:"kind"`
	Normalized string                  `json:"normalized"`
	Segments   map[string]string       `json:"segments"`
	Lookups    map[string]lookup.Entry `json:"lookups,omitempty"`
}

// Normalize strips spaces, tabs, hyphens, and dots and uppercases the input.
// It is idempotent and shared by every identifier kind.
func Normalize(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '.':
			continue
		}
		builder.WriteRune(r)
	}
	return strings.ToUpper(builder.String())
}

// valid builds a passing result.
func valid(kind Kind, normalized string, segments map[string]string) ValidationResult {
	return ValidationResult{
		Valid:      true,
		Kind:       kind,
		Normalized: normalized,
		Segments:   segments,
	}
}

// invalid builds a failing result with a single primary cause.
func invalid(kind Kind, normalized string, errKind ErrorKind, message string) ValidationResult {
	return ValidationResult{
		Kind:       kind,
		Normalized: normalized,
		Err:        &ValidationError{Kind: errKind, Message: message},
	}
}
