package fixtures

import (
	"strings"
	"testing"

	"github.com/coolbeans/taxid/pkg/taxid"
)

const sampleSpec = `
fixtures:
  - name: maharashtra-firms
    kind: gstin
    count: 3
    segments:
      state: "27"
      pan: AAPFU0939F
  - name: spanish-companies
    kind: cif
    count: 2
  - name: single-utr
    kind: uk-utr
`

func TestLoad(t *testing.T) {
	set, err := Load([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(set.Fixtures) != 3 {
		t.Fatalf("loaded %d fixtures, want 3", len(set.Fixtures))
	}
	if set.Fixtures[0].Count != 3 {
		t.Errorf("count = %d, want 3", set.Fixtures[0].Count)
	}
	if set.Fixtures[2].Count != 1 {
		t.Errorf("unset count = %d, want defaulted 1", set.Fixtures[2].Count)
	}
	if set.Fixtures[0].Segments["state"] != "27" {
		t.Errorf("pinned segment = %q, want 27", set.Fixtures[0].Segments["state"])
	}
}

func TestLoadRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{name: "not_yaml", spec: "fixtures: ]["},
		{name: "empty", spec: ""},
		{name: "no_fixtures", spec: "fixtures: []"},
		{name: "missing_name", spec: "fixtures:\n  - kind: gstin"},
		{name: "unknown_kind", spec: "fixtures:\n  - name: x\n    kind: ssn"},
		{name: "negative_count", spec: "fixtures:\n  - name: x\n    kind: gstin\n    count: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.spec)); err == nil {
				t.Errorf("Load accepted bad spec %q", tt.spec)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	set, err := Load([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	generated, err := set.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(generated) != 6 {
		t.Fatalf("generated %d identifiers, want 6", len(generated))
	}

	seen := make(map[string]bool)
	for _, item := range generated {
		if item.Name == "" || item.Kind == "" || item.Value == "" {
			t.Errorf("incomplete generated item: %+v", item)
		}
		if !taxid.IsValid(taxid.Kind(item.Kind), item.Value) {
			t.Errorf("generated %q is not a valid %s", item.Value, item.Kind)
		}
		key := item.Kind + ":" + item.Value
		if seen[key] {
			t.Errorf("duplicate generated identifier %q", key)
		}
		seen[key] = true
	}

	// Pinned segments must appear in every value of the batch.
	for _, item := range generated {
		if item.Name == "maharashtra-firms" && !strings.HasPrefix(item.Value, "27AAPFU0939F") {
			t.Errorf("pinned segments missing from %q", item.Value)
		}
	}
}

func TestGenerateCounterVariesWithinBatch(t *testing.T) {
	set := &FixtureSet{Fixtures: []Fixture{{Name: "ninos", Kind: "uk-nino", Count: 5}}}
	generated, err := set.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	values := make(map[string]bool)
	for _, item := range generated {
		values[item.Value] = true
	}
	if len(values) != 5 {
		t.Errorf("batch of 5 produced %d distinct values", len(values))
	}
}

func TestGeneratePinnedCounterRepeats(t *testing.T) {
	set := &FixtureSet{Fixtures: []Fixture{{
		Name:     "same-utr",
		Kind:     "uk-utr",
		Count:    2,
		Segments: map[string]string{"digits": "123456789"},
	}}}
	generated, err := set.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(generated) != 2 || generated[0].Value != generated[1].Value {
		t.Errorf("pinned counter segment should repeat, got %+v", generated)
	}
	if generated[0].Value != "1234567891" {
		t.Errorf("value = %q, want 1234567891", generated[0].Value)
	}
}

func TestGenerateBatchOverflow(t *testing.T) {
	// GSTIN varies a single-character segment, so a batch cannot exceed the
	// 35 usable counter values.
	set := &FixtureSet{Fixtures: []Fixture{{Name: "too-many", Kind: "gstin", Count: 40}}}
	if _, err := set.Generate(); err == nil {
		t.Error("expected error for oversized single-character batch")
	}
}

func TestGenerateClassificationCodesRepeat(t *testing.T) {
	set := &FixtureSet{Fixtures: []Fixture{{Name: "hsn-codes", Kind: "hsn", Count: 3}}}
	generated, err := set.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, item := range generated {
		if item.Value != "8471" {
			t.Errorf("hsn value = %q, want default 8471", item.Value)
		}
	}
}

func TestCounterSpecValues(t *testing.T) {
	numeric := counterSpec{style: counterNumeric, base: 1000, width: 4}
	first, err := numeric.value(0)
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if first != "1000" {
		t.Errorf("numeric value(0) = %q, want 1000", first)
	}
	overflowing := counterSpec{style: counterNumeric, base: 9999, width: 4}
	if _, err := overflowing.value(1); err == nil {
		t.Error("expected width overflow error")
	}

	base36 := counterSpec{style: counterBase36}
	if v, _ := base36.value(0); v != "1" {
		t.Errorf("base36 value(0) = %q, want 1", v)
	}
	if v, _ := base36.value(9); v != "A" {
		t.Errorf("base36 value(9) = %q, want A", v)
	}
	if _, err := base36.value(35); err == nil {
		t.Error("expected overflow past the single-character alphabet")
	}

	reference := counterSpec{style: counterReference}
	if v, _ := reference.value(0); v != "AB001" {
		t.Errorf("reference value(0) = %q, want AB001", v)
	}
}
