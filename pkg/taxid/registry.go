package taxid

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages identifier strategies and dispatches operations to the
// strategy for a kind. Thread-safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	strategies   map[Kind]Strategy
	countryIndex map[Country][]Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies:   make(map[Kind]Strategy),
		countryIndex: make(map[Country][]Kind),
	}
}

// Register adds a strategy. Returns an error if the strategy is nil, has an
// empty kind, or a strategy for the same kind is already registered.
func (r *Registry) Register(strategy Strategy) error {
	if strategy == nil {
		return fmt.Errorf("identifier strategy cannot be nil")
	}
	kind := strategy.Kind()
	if kind == "" {
		return fmt.Errorf("identifier strategy kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[kind]; exists {
		return fmt.Errorf("identifier strategy %q already registered", kind)
	}

	r.strategies[kind] = strategy
	country := strategy.Country()
	r.countryIndex[country] = append(r.countryIndex[country], kind)
	return nil
}

// Get returns the strategy for a kind.
func (r *Registry) Get(kind Kind) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	strategy, ok := r.strategies[kind]
	return strategy, ok
}

// List returns all registered kinds in sorted order.
func (r *Registry) List() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.strategies))
	for kind := range r.strategies {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ListByCountry returns the kinds registered for a country in sorted order.
func (r *Registry) ListByCountry(country Country) []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, len(r.countryIndex[country]))
	copy(kinds, r.countryIndex[country])
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Count returns the number of registered strategies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.strategies)
}

// Validate dispatches to the strategy for kind. Unknown kinds are API misuse
// and return a Go error rather than a ValidationResult.
func (r *Registry) Validate(kind Kind, raw string) (ValidationResult, error) {
	strategy, ok := r.Get(kind)
	if !ok {
		return ValidationResult{}, fmt.Errorf("unknown identifier kind %q", kind)
	}
	return strategy.Validate(raw), nil
}

// IsValid reports whether raw is a valid identifier of kind. Unknown kinds
// report false.
func (r *Registry) IsValid(kind Kind, raw string) bool {
	strategy, ok := r.Get(kind)
	if !ok {
		return false
	}
	return strategy.Validate(raw).Valid
}

// ValidateMany validates each value, returning results index-aligned with the
// input. Validation is pure, so callers needing parallelism can shard the
// input without coordination.
func (r *Registry) ValidateMany(kind Kind, raws []string) ([]ValidationResult, error) {
	strategy, ok := r.Get(kind)
	if !ok {
		return nil, fmt.Errorf("unknown identifier kind %q", kind)
	}
	results := make([]ValidationResult, len(raws))
	for i, raw := range raws {
		results[i] = strategy.Validate(raw)
	}
	return results, nil
}

// Parse dispatches to the strategy for kind.
func (r *Registry) Parse(kind Kind, raw string) (*ParsedIdentifier, error) {
	strategy, ok := r.Get(kind)
	if !ok {
		return nil, fmt.Errorf("unknown identifier kind %q", kind)
	}
	return strategy.Parse(raw)
}

// Format dispatches to the strategy for kind.
func (r *Registry) Format(kind Kind, raw, separator string) (string, error) {
	strategy, ok := r.Get(kind)
	if !ok {
		return "", fmt.Errorf("unknown identifier kind %q", kind)
	}
	return strategy.Format(raw, separator)
}

// Generate dispatches to the strategy for kind.
func (r *Registry) Generate(kind Kind, segments map[string]string) (string, error) {
	strategy, ok := r.Get(kind)
	if !ok {
		return "", fmt.Errorf("unknown identifier kind %q", kind)
	}
	return strategy.Generate(segments)
}
