package api

import "sort"

// Canonical is the single canonical selection encoding: category id to an
// ordered, duplicate-free list of item ids. An absent key and an empty
// list mean the same thing — no selection for that category — and every
// consumer treats them as equivalent.
type Canonical map[string][]string

// Mode distinguishes single-environment from dual-environment selection
// tracking.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeDual   Mode = "dual"
)

// SelectionState is the tagged union over the two selection shapes.
// Single is populated in ModeSingle; Mobile and Backend in ModeDual.
// Consumers switch on Mode instead of guessing the shape.
type SelectionState struct {
	Mode    Mode      `json:"mode"`
	Single  Canonical `json:"single,omitempty"`
	Mobile  Canonical `json:"mobile,omitempty"`
	Backend Canonical `json:"backend,omitempty"`
}

// Clone returns an independent copy. Selection operations return new
// values instead of mutating in place.
func (c Canonical) Clone() Canonical {
	out := make(Canonical, len(c))
	for cat, ids := range c {
		out[cat] = append([]string(nil), ids...)
	}
	return out
}

// Has reports whether itemID is selected under categoryID.
func (c Canonical) Has(categoryID, itemID string) bool {
	for _, id := range c[categoryID] {
		if id == itemID {
			return true
		}
	}
	return false
}

// CategoryIDs returns the category ids with at least one selection, in
// sorted order for deterministic iteration.
func (c Canonical) CategoryIDs() []string {
	ids := make([]string, 0, len(c))
	for cat, items := range c {
		if len(items) > 0 {
			ids = append(ids, cat)
		}
	}
	sort.Strings(ids)
	return ids
}

// Count returns the total number of selected items.
func (c Canonical) Count() int {
	n := 0
	for _, ids := range c {
		n += len(ids)
	}
	return n
}
