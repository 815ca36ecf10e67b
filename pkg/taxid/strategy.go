package taxid

// Strategy implements one identifier format: normalization, structural and
// checksum validation, segment extraction, display formatting, and fixture
// generation. Implementations are stateless and safe for concurrent use.
type Strategy interface {
	// Kind returns the identifier kind this strategy handles.
	Kind() Kind

	// Country returns the issuing jurisdiction.
	Country() Country

	// Validate normalizes the raw input and runs the full check pipeline.
	// It never returns a Go error: malformed input yields a result whose
	// Err field carries the single primary failure cause.
	Validate(raw string) ValidationResult

	// Parse returns the decomposed identifier with resolved lookup
	// entries, or an error when the value does not validate.
	Parse(raw string) (*ParsedIdentifier, error)

	// Format re-inserts display separators into a structurally valid
	// value. An empty separator selects the kind's canonical one.
	Format(raw, separator string) (string, error)

	// Generate composes a canonical identifier from the supplied
	// segments, filling unsupplied ones with deterministic defaults and
	// computing the check digit. Invalid components are construction
	// errors, not validation failures.
	Generate(segments map[string]string) (string, error)
}
