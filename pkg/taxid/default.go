package taxid

// defaultRegistry holds every built-in strategy. It is assembled once at
// package load and never mutated afterwards.
var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	registry := NewRegistry()
	strategies := []Strategy{
		newGSTINStrategy(),
		newPANStrategy(),
		newHSNStrategy(),
		newSACStrategy(),
		newNIFStrategy(),
		newNIEStrategy(),
		newCIFStrategy(),
		newSpanishVATStrategy(),
		newJPCorporateStrategy(),
		newJPInvoiceStrategy(),
		newUKVATStrategy(),
		newUKCompanyStrategy(),
		newUKUTRStrategy(),
		newUKNINOStrategy(),
		newUKPAYEStrategy(),
	}
	for _, strategy := range strategies {
		if err := registry.Register(strategy); err != nil {
			panic(err)
		}
	}
	return registry
}

// DefaultRegistry returns the registry with all built-in strategies.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Validate validates raw as an identifier of kind using the default registry.
func Validate(kind Kind, raw string) (ValidationResult, error) {
	return defaultRegistry.Validate(kind, raw)
}

// IsValid reports whether raw is a valid identifier of kind.
func IsValid(kind Kind, raw string) bool {
	return defaultRegistry.IsValid(kind, raw)
}

// ValidateMany validates each value, index-aligned with the input.
func ValidateMany(kind Kind, raws []string) ([]ValidationResult, error) {
	return defaultRegistry.ValidateMany(kind, raws)
}

// Parse decomposes raw into named segments with resolved lookup entries.
func Parse(kind Kind, raw string) (*ParsedIdentifier, error) {
	return defaultRegistry.Parse(kind, raw)
}

// Format re-inserts display separators. An empty separator selects the
// kind's canonical one.
func Format(kind Kind, raw, separator string) (string, error) {
	return defaultRegistry.Format(kind, raw, separator)
}

// Generate composes a canonical identifier from partial segments.
func Generate(kind Kind, segments map[string]string) (string, error) {
	return defaultRegistry.Generate(kind, segments)
}

// Kinds returns all built-in identifier kinds in sorted order.
func Kinds() []Kind {
	return defaultRegistry.List()
}
