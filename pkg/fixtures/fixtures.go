// Package fixtures fabricates batches of valid tax identifiers from YAML
// fixture specifications, for seeding demo organisations and test data. It
// also provides a file watcher that revalidates identifier lists on change.
package fixtures

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/taxid/pkg/taxid"
)

// Fixture describes one batch of identifiers to generate.
type Fixture struct {
	// Name labels the batch in generated output.
	Name string `yaml:"name"`

	// Kind is the identifier kind to generate.
	Kind string `yaml:"kind"`

	// Count is the number of identifiers; 0 means 1.
	Count int `yaml:"count,omitempty"`

	// Segments pins identifier components; unsupplied ones get
	// deterministic defaults, with one counter segment varied per index.
	Segments map[string]string `yaml:"segments,omitempty"`
}

// FixtureSet is the root of a fixture specification file.
type FixtureSet struct {
	Fixtures []Fixture `yaml:"fixtures"`
}

// Generated is one fabricated identifier.
type Generated struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// counterSegments names the segment varied per generated index for kinds
// whose identifiers must differ within a batch. Kinds without an entry (HSN,
// SAC) are classification codes where repeats are meaningful.
var counterSegments = map[taxid.Kind]counterSpec{
	taxid.KindGSTIN:             {segment: "entity", style: counterBase36},
	taxid.KindPAN:               {segment: "sequence", style: counterNumeric, base: 1000, width: 4},
	taxid.KindNIF:               {segment: "number", style: counterNumeric, base: 10000000, width: 8},
	taxid.KindNIE:               {segment: "number", style: counterNumeric, base: 1000000, width: 7},
	taxid.KindCIF:               {segment: "number", style: counterNumeric, base: 1000000, width: 7},
	taxid.KindSpanishVAT:        {segment: "number", style: counterNumeric, base: 10000000, width: 8},
	taxid.KindJPCorporateNumber: {segment: "base", style: counterNumeric, base: 12345678, width: 12},
	taxid.KindJPInvoiceNumber:   {segment: "base", style: counterNumeric, base: 12345678, width: 12},
	taxid.KindUKVAT:             {segment: "number", style: counterNumeric, base: 100000000, width: 9},
	taxid.KindUKCompanyNumber:   {segment: "number", style: counterNumeric, base: 10000000, width: 8},
	taxid.KindUKUTR:             {segment: "digits", style: counterNumeric, base: 100000000, width: 9},
	taxid.KindUKNINO:            {segment: "digits", style: counterNumeric, base: 100000, width: 6},
	taxid.KindUKPAYE:            {segment: "reference", style: counterReference},
}

type counterStyle int

const (
	counterNumeric counterStyle = iota
	counterBase36
	counterReference
)

type counterSpec struct {
	segment string
	style   counterStyle
	base    int
	width   int
}

func (c counterSpec) value(index int) (string, error) {
	switch c.style {
	case counterBase36:
		// Single alphanumeric character, starting at 1.
		const alphabet = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		if index >= len(alphabet) {
			return "", fmt.Errorf("batch exceeds %d entries for a single-character counter segment", len(alphabet))
		}
		return alphabet[index : index+1], nil
	case counterReference:
		return fmt.Sprintf("AB%03d", index+1), nil
	default:
		value := strconv.Itoa(c.base + index)
		if len(value) > c.width {
			return "", fmt.Errorf("counter value %s exceeds segment width %d", value, c.width)
		}
		return value, nil
	}
}

// Load parses and checks a fixture specification.
func Load(data []byte) (*FixtureSet, error) {
	var set FixtureSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(set.Fixtures) == 0 {
		return nil, fmt.Errorf("fixture specification contains no fixtures")
	}
	for i := range set.Fixtures {
		fixture := &set.Fixtures[i]
		if fixture.Name == "" {
			return nil, fmt.Errorf("fixture %d has no name", i)
		}
		if _, ok := taxid.DefaultRegistry().Get(taxid.Kind(fixture.Kind)); !ok {
			return nil, fmt.Errorf("fixture %q: unknown identifier kind %q", fixture.Name, fixture.Kind)
		}
		if fixture.Count < 0 {
			return nil, fmt.Errorf("fixture %q: count cannot be negative", fixture.Name)
		}
		if fixture.Count == 0 {
			fixture.Count = 1
		}
	}
	return &set, nil
}

// LoadFile reads and parses a fixture specification file.
func LoadFile(path string) (*FixtureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Load(data)
}

// Generate fabricates every batch in the set. Each produced identifier is
// re-validated before being returned; a validation failure indicates a bug
// in a generator and surfaces as an error.
func (s *FixtureSet) Generate() ([]Generated, error) {
	var generated []Generated
	for _, fixture := range s.Fixtures {
		kind := taxid.Kind(fixture.Kind)
		for index := 0; index < fixture.Count; index++ {
			segments := make(map[string]string, len(fixture.Segments)+1)
			for name, value := range fixture.Segments {
				segments[name] = value
			}
			if spec, ok := counterSegments[kind]; ok {
				if _, pinned := segments[spec.segment]; !pinned {
					counter, err := spec.value(index)
					if err != nil {
						return nil, fmt.Errorf("fixture %q: %w", fixture.Name, err)
					}
					segments[spec.segment] = counter
				}
			}

			value, err := taxid.Generate(kind, segments)
			if err != nil {
				return nil, fmt.Errorf("fixture %q: %w", fixture.Name, err)
			}
			result, err := taxid.Validate(kind, value)
			if err != nil {
				return nil, fmt.Errorf("fixture %q: %w", fixture.Name, err)
			}
			if !result.Valid {
				return nil, fmt.Errorf("fixture %q: generated %q failed validation: %s",
					fixture.Name, value, result.Err.Message)
			}
			generated = append(generated, Generated{
				Name:  fixture.Name,
				Kind:  fixture.Kind,
				Value: value,
			})
		}
	}
	return generated, nil
}
