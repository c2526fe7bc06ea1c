package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapstack-cost/pkg/api"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		item api.CatalogItem
		want api.Target
	}{
		{
			name: "sdk format is mobile",
			item: api.CatalogItem{Name: "Maps for apps", Format: "iOS/Android SDK"},
			want: api.TargetMobile,
		},
		{
			name: "api format is backend",
			item: api.CatalogItem{Name: "Directions", Format: "REST API"},
			want: api.TargetBackend,
		},
		{
			name: "hybrid format is both",
			item: api.CatalogItem{Name: "Maps", Format: "SDK/API hybrid"},
			want: api.TargetBoth,
		},
		{
			name: "token in display name counts",
			item: api.CatalogItem{Name: "Navigation SDK", Format: "binary"},
			want: api.TargetMobile,
		},
		{
			name: "no signal defaults to backend",
			item: api.CatalogItem{Name: "Tile bundle", Format: "archive"},
			want: api.TargetBackend,
		},
		{
			name: "matching is case-insensitive",
			item: api.CatalogItem{Name: "maps", Format: "Mobile Sdk"},
			want: api.TargetMobile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.item))
		})
	}
}

func TestFilterForTargetMobileSortsButKeepsEverything(t *testing.T) {
	c := NewClassifier()

	// Backend-only item has the higher relevance; the hybrid must still
	// sort ahead of it under a mobile target.
	hybrid := api.CatalogItem{ID: "hybrid", Name: "Maps", Format: "SDK/API hybrid", Relevance: 0.3}
	backend := api.CatalogItem{ID: "backend", Name: "Directions", Format: "REST API", Relevance: 0.9}
	sdk := api.CatalogItem{ID: "sdk", Name: "Nav", Format: "Android SDK", Relevance: 0.1}

	categories := []api.Category{{ID: "maps", Items: []api.CatalogItem{backend, hybrid, sdk}}}

	got := c.FilterForTarget(categories, api.TargetMobile)
	require.Len(t, got, 1)
	require.Len(t, got[0].Items, 3, "mobile target keeps backend-only items as secondary choices")

	ids := []string{got[0].Items[0].ID, got[0].Items[1].ID, got[0].Items[2].ID}
	assert.Equal(t, []string{"hybrid", "sdk", "backend"}, ids)

	// Input order untouched.
	assert.Equal(t, "backend", categories[0].Items[0].ID)
}

func TestFilterForTargetMobileTieBreaksByRelevance(t *testing.T) {
	c := NewClassifier()

	low := api.CatalogItem{ID: "low", Format: "SDK", Relevance: 0.2}
	high := api.CatalogItem{ID: "high", Format: "SDK", Relevance: 0.8}

	got := c.FilterForTarget([]api.Category{{ID: "maps", Items: []api.CatalogItem{low, high}}}, api.TargetMobile)
	assert.Equal(t, "high", got[0].Items[0].ID)
}

func TestFilterForTargetBackendDropsMobileOnly(t *testing.T) {
	c := NewClassifier()

	categories := []api.Category{
		{ID: "maps", Items: []api.CatalogItem{
			{ID: "sdk", Format: "iOS SDK"},
			{ID: "hybrid", Format: "SDK/API hybrid"},
			{ID: "api", Format: "REST API"},
		}},
		{ID: "mobile-only", Items: []api.CatalogItem{
			{ID: "sdk2", Format: "Android SDK"},
		}},
	}

	got := c.FilterForTarget(categories, api.TargetBackend)
	require.Len(t, got, 1, "categories left empty are dropped entirely")
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, "hybrid", got[0].Items[0].ID)
	assert.Equal(t, "api", got[0].Items[1].ID)
}

func TestFilterForTargetUnknownTargetPassesThrough(t *testing.T) {
	c := NewClassifier()
	categories := []api.Category{{ID: "maps"}}
	assert.Equal(t, categories, c.FilterForTarget(categories, api.TargetBoth))
}

func TestCustomTokens(t *testing.T) {
	c := NewClassifierWithTokens([]string{"embedded"}, []string{"service"})

	assert.Equal(t, api.TargetMobile, c.Classify(api.CatalogItem{Format: "Embedded runtime"}))
	assert.Equal(t, api.TargetBackend, c.Classify(api.CatalogItem{Format: "Managed service"}))
}
