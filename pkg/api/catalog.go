// Package api defines the data contracts shared between the derivation
// core and its external collaborators (catalog service, requirements
// intake, persistence, presentation). Everything here is a plain value
// type; the core never owns long-lived state.
package api

// Target identifies the platform environment an item can run on.
type Target string

const (
	TargetMobile  Target = "mobile"
	TargetBackend Target = "backend"
	TargetBoth    Target = "both"
)

// CatalogItem is a single vendor offering for a capability category.
type CatalogItem struct {
	ID           string   `json:"id"`
	Vendor       string   `json:"vendor"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
	Format       string   `json:"format"` // free-text format descriptor, e.g. "REST API", "iOS/Android SDK"
	Relevance    float64  `json:"relevance"`
}

// Category groups competing catalog items for one capability area.
type Category struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Required bool          `json:"required"`
	Items    []CatalogItem `json:"items"`
}

// Catalog is the read-only reference snapshot supplied once per session
// by the external catalog service.
type Catalog struct {
	Categories []Category `json:"categories"`
}

// Item looks up a catalog item by id across all categories.
func (c *Catalog) Item(id string) (CatalogItem, bool) {
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return CatalogItem{}, false
}

// SelectedItems resolves a canonical selection into the concrete catalog
// items it names. Order follows catalog category order, then first-seen
// selection order within a category. Ids not present in the catalog are
// skipped; an item selected under several categories appears once.
func (c *Catalog) SelectedItems(sel Canonical) []CatalogItem {
	seen := make(map[string]bool)
	var items []CatalogItem
	collect := func(ids []string) {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			if item, ok := c.Item(id); ok {
				seen[id] = true
				items = append(items, item)
			}
		}
	}
	known := make(map[string]bool)
	for _, cat := range c.Categories {
		known[cat.ID] = true
		collect(sel[cat.ID])
	}
	// Selections under category ids the catalog no longer carries still
	// name real items; resolve them in stable key order.
	for _, catID := range sel.CategoryIDs() {
		if !known[catID] {
			collect(sel[catID])
		}
	}
	return items
}
