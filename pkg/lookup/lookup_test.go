package lookup

import "testing"

func TestTableByCode(t *testing.T) {
	table := NewTable([]Entry{
		{Code: "01", Name: "Alpha", Active: true},
		{Code: "02", Name: "Beta", Active: false},
	})

	entry, ok := table.ByCode("01")
	if !ok || entry.Name != "Alpha" {
		t.Errorf("ByCode(01) = %+v, %v; want Alpha", entry, ok)
	}
	if _, ok := table.ByCode("99"); ok {
		t.Error("ByCode(99) found an entry in a table without it")
	}
}

func TestTableByName(t *testing.T) {
	table := NewTable([]Entry{{Code: "01", Name: "Alpha", Active: true}})

	for _, name := range []string{"Alpha", "alpha", "ALPHA"} {
		if entry, ok := table.ByName(name); !ok || entry.Code != "01" {
			t.Errorf("ByName(%q) = %+v, %v; want code 01", name, entry, ok)
		}
	}
	if _, ok := table.ByName("Gamma"); ok {
		t.Error("ByName(Gamma) found an entry in a table without it")
	}
}

func TestTableList(t *testing.T) {
	table := NewTable([]Entry{
		{Code: "01", Name: "Alpha", Active: true},
		{Code: "02", Name: "Beta", Active: false},
		{Code: "03", Name: "Gamma", Active: true, UnionTerritory: true},
	})

	if got := len(table.List(nil)); got != 3 {
		t.Errorf("List(nil) returned %d entries, want 3", got)
	}
	if got := len(table.List(Active)); got != 2 {
		t.Errorf("List(Active) returned %d entries, want 2", got)
	}
	if got := table.List(UnionTerritories); len(got) != 1 || got[0].Code != "03" {
		t.Errorf("List(UnionTerritories) = %+v, want only code 03", got)
	}
	if table.Len() != 3 {
		t.Errorf("Len = %d, want 3", table.Len())
	}
}

func TestIndiaStates(t *testing.T) {
	states := IndiaStates()

	tests := []struct {
		code           string
		name           string
		active         bool
		unionTerritory bool
		class          Class
	}{
		{code: "27", name: "Maharashtra", active: true},
		{code: "25", name: "Daman and Diu", active: false, unionTerritory: true},
		{code: "26", name: "Dadra and Nagar Haveli and Daman and Diu", active: true, unionTerritory: true},
		{code: "38", name: "Ladakh", active: true, unionTerritory: true},
		{code: "97", name: "Other Territory", active: true, class: ClassSpecialJurisdiction},
		{code: "99", name: "Centre Jurisdiction", active: true, class: ClassSpecialJurisdiction},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			entry, ok := states.ByCode(tt.code)
			if !ok {
				t.Fatalf("code %s missing from table", tt.code)
			}
			if entry.Name != tt.name {
				t.Errorf("name = %q, want %q", entry.Name, tt.name)
			}
			if entry.Active != tt.active {
				t.Errorf("active = %v, want %v", entry.Active, tt.active)
			}
			if entry.UnionTerritory != tt.unionTerritory {
				t.Errorf("union territory = %v, want %v", entry.UnionTerritory, tt.unionTerritory)
			}
			if entry.Class != tt.class {
				t.Errorf("class = %s, want %s", entry.Class, tt.class)
			}
		})
	}

	if states.Len() != 40 {
		t.Errorf("table has %d entries, want 40", states.Len())
	}
	if _, ok := states.ByCode("00"); ok {
		t.Error("code 00 should not be assigned")
	}
	if _, ok := states.ByCode("39"); ok {
		t.Error("code 39 should not be assigned")
	}
	if entry, ok := states.ByName("maharashtra"); !ok || entry.Code != "27" {
		t.Errorf("ByName(maharashtra) = %+v, %v; want code 27", entry, ok)
	}
}

func TestSpainCIFTypes(t *testing.T) {
	types := SpainCIFTypes()

	if types.Len() != 17 {
		t.Errorf("table has %d entries, want 17", types.Len())
	}
	entry, ok := types.ByCode("B")
	if !ok {
		t.Fatal("type letter B missing from table")
	}
	if entry.Name != "Sociedad de responsabilidad limitada" {
		t.Errorf("name = %q", entry.Name)
	}
	for _, letter := range []string{"I", "K", "L", "M", "O", "T", "X", "Y", "Z"} {
		if _, ok := types.ByCode(letter); ok {
			t.Errorf("letter %s should not be documented", letter)
		}
	}
}

func TestClassString(t *testing.T) {
	if ClassOrdinary.String() != "ordinary" {
		t.Errorf("ClassOrdinary = %s", ClassOrdinary)
	}
	if ClassSpecialJurisdiction.String() != "special_jurisdiction" {
		t.Errorf("ClassSpecialJurisdiction = %s", ClassSpecialJurisdiction)
	}
	if Class(42).String() != "unknown" {
		t.Errorf("Class(42) = %s", Class(42))
	}
}
