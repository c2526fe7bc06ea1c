package api

// CapabilityCoverage reports whether one capability is supplied by the
// current selection, and by which items.
type CapabilityCoverage struct {
	Capability    string   `json:"capability"`
	Covered       bool     `json:"covered"`
	CoveringItems []string `json:"covering_items,omitempty"`
}

// CoverageReport is the full coverage derivation for one selection
// snapshot. Optional entries are informational only; they never gate
// AllRequiredCovered.
type CoverageReport struct {
	Required           []CapabilityCoverage `json:"required"`
	AllRequiredCovered bool                 `json:"all_required_covered"`
	Optional           []CapabilityCoverage `json:"optional,omitempty"`
}

// Uncovered returns the required capabilities with no covering item.
func (r *CoverageReport) Uncovered() []string {
	var out []string
	for _, c := range r.Required {
		if !c.Covered {
			out = append(out, c.Capability)
		}
	}
	return out
}
