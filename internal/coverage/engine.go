// Package coverage derives per-capability coverage status from the
// current selection. Pure derivation: identical inputs always produce
// identical reports, so it is safe to recompute on every selection
// change.
package coverage

import "mapstack-cost/pkg/api"

// Compute reports, for each required capability, whether at least one
// selected item supplies it and which items do. AllRequiredCovered is
// true exactly when every required capability has a covering item; an
// empty requirement list is trivially covered (0 of 0).
//
// The optional section collects every capability supplied by selected
// items that is not required — purely informational, it never gates
// completion.
func Compute(selectedItems []api.CatalogItem, requiredCapabilities []string) api.CoverageReport {
	report := api.CoverageReport{AllRequiredCovered: true}

	required := make(map[string]bool, len(requiredCapabilities))
	seen := make(map[string]bool, len(requiredCapabilities))
	for _, capName := range requiredCapabilities {
		if seen[capName] {
			continue
		}
		seen[capName] = true
		required[capName] = true

		cc := api.CapabilityCoverage{Capability: capName}
		for _, item := range selectedItems {
			if provides(item, capName) {
				cc.CoveringItems = append(cc.CoveringItems, item.ID)
			}
		}
		cc.Covered = len(cc.CoveringItems) > 0
		if !cc.Covered {
			report.AllRequiredCovered = false
		}
		report.Required = append(report.Required, cc)
	}

	// Bonus capabilities, first-seen order across selected items.
	optionalIdx := make(map[string]int)
	for _, item := range selectedItems {
		for _, capName := range item.Capabilities {
			if required[capName] {
				continue
			}
			idx, ok := optionalIdx[capName]
			if !ok {
				idx = len(report.Optional)
				optionalIdx[capName] = idx
				report.Optional = append(report.Optional, api.CapabilityCoverage{
					Capability: capName,
					Covered:    true,
				})
			}
			report.Optional[idx].CoveringItems = appendUnique(report.Optional[idx].CoveringItems, item.ID)
		}
	}

	return report
}

func provides(item api.CatalogItem, capability string) bool {
	for _, c := range item.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
