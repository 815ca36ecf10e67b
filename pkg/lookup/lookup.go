// Package lookup provides the static code tables consumed by identifier
// validation: Indian GST state/jurisdiction codes and Spanish CIF entity-type
// letters. Tables are built once at package load and never mutated, so they
// are safe for unsynchronized concurrent reads.
package lookup

import "strings"

// Class distinguishes ordinary region codes from special jurisdiction codes
// that are not physical regions (e.g. GSTIN codes 97 and 99).
type Class int

const (
	ClassOrdinary Class = iota
	ClassSpecialJurisdiction
)

func (c Class) String() string {
	switch c {
	case ClassOrdinary:
		return "ordinary"
	case ClassSpecialJurisdiction:
		return "special_jurisdiction"
	default:
		return "unknown"
	}
}

// Entry is a single lookup-table row.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`

	// Active is false for codes that remain syntactically recognized but
	// are no longer issued (e.g. state code 25 after the Daman and Diu
	// merger).
	Active bool `json:"active"`

	Class Class `json:"-"`

	// UnionTerritory marks Indian union territories without their own
	// legislature; GST rate splitting uses UTGST instead of SGST for them.
	UnionTerritory bool `json:"union_territory,omitempty"`
}

// Table is an immutable collection of entries indexed by code and by
// case-insensitive name.
type Table struct {
	entries []Entry
	byCode  map[string]Entry
	byName  map[string]Entry
}

// NewTable builds a table from entries. Later duplicates overwrite earlier
// ones in the indexes.
func NewTable(entries []Entry) *Table {
	table := &Table{
		entries: entries,
		byCode:  make(map[string]Entry, len(entries)),
		byName:  make(map[string]Entry, len(entries)),
	}
	for _, entry := range entries {
		table.byCode[entry.Code] = entry
		table.byName[strings.ToUpper(entry.Name)] = entry
	}
	return table
}

// ByCode returns the entry for a code.
func (t *Table) ByCode(code string) (Entry, bool) {
	entry, ok := t.byCode[code]
	return entry, ok
}

// ByName returns the entry for a display name. Matching is case-insensitive.
func (t *Table) ByName(name string) (Entry, bool) {
	entry, ok := t.byName[strings.ToUpper(name)]
	return entry, ok
}

// List returns entries matching the filter, in table order. A nil filter
// returns every entry. The returned slice is a copy.
func (t *Table) List(filter func(Entry) bool) []Entry {
	result := make([]Entry, 0, len(t.entries))
	for _, entry := range t.entries {
		if filter == nil || filter(entry) {
			result = append(result, entry)
		}
	}
	return result
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Active is a List filter selecting active entries.
func Active(entry Entry) bool {
	return entry.Active
}

// UnionTerritories is a List filter selecting union-territory entries.
func UnionTerritories(entry Entry) bool {
	return entry.UnionTerritory
}
