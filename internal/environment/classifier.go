// Package environment classifies catalog items by the platform they can
// run on and filters category lists per target platform.
package environment

import (
	"sort"
	"strings"

	"mapstack-cost/pkg/api"
)

// Default token lists. SDK-style tokens imply mobile capability,
// API-style tokens imply backend capability. Reference config can
// override both.
var (
	defaultSDKTokens = []string{"sdk", "mobile", "ios", "android"}
	defaultAPITokens = []string{"api", "rest", "http", "server", "backend"}
)

// Classifier tags items as mobile-capable, backend-capable, or both from
// their format descriptor and display name.
type Classifier struct {
	sdkTokens []string
	apiTokens []string
}

// NewClassifier returns a classifier with the built-in token lists.
func NewClassifier() *Classifier {
	return NewClassifierWithTokens(nil, nil)
}

// NewClassifierWithTokens returns a classifier using the given token
// lists; empty lists fall back to the defaults.
func NewClassifierWithTokens(sdkTokens, apiTokens []string) *Classifier {
	c := &Classifier{sdkTokens: sdkTokens, apiTokens: apiTokens}
	if len(c.sdkTokens) == 0 {
		c.sdkTokens = defaultSDKTokens
	}
	if len(c.apiTokens) == 0 {
		c.apiTokens = defaultAPITokens
	}
	return c
}

// Classify returns the platform target for an item. Total function: an
// item matching no token defaults to backend.
func (c *Classifier) Classify(item api.CatalogItem) api.Target {
	hay := strings.ToLower(item.Format + " " + item.Name)

	mobile := containsAny(hay, c.sdkTokens)
	backend := containsAny(hay, c.apiTokens)

	switch {
	case mobile && backend:
		return api.TargetBoth
	case mobile:
		return api.TargetMobile
	default:
		return api.TargetBackend
	}
}

// FilterForTarget adapts category item lists to a platform target.
//
// Mobile keeps every item but sorts mobile/both-capable ones first
// (a mobile buyer may still want backend-only options as secondary
// choices). Backend drops mobile-only items outright and drops
// categories left empty — an item that cannot run there is never
// surfaced. Any other target returns the categories unchanged.
func (c *Classifier) FilterForTarget(categories []api.Category, target api.Target) []api.Category {
	switch target {
	case api.TargetMobile:
		return c.sortForMobile(categories)
	case api.TargetBackend:
		return c.filterForBackend(categories)
	default:
		return categories
	}
}

func (c *Classifier) sortForMobile(categories []api.Category) []api.Category {
	out := make([]api.Category, len(categories))
	for i, cat := range categories {
		items := append([]api.CatalogItem(nil), cat.Items...)
		sort.SliceStable(items, func(a, b int) bool {
			ra, rb := c.mobileRank(items[a]), c.mobileRank(items[b])
			if ra != rb {
				return ra < rb
			}
			return items[a].Relevance > items[b].Relevance
		})
		cat.Items = items
		out[i] = cat
	}
	return out
}

func (c *Classifier) mobileRank(item api.CatalogItem) int {
	if c.Classify(item) == api.TargetBackend {
		return 1
	}
	return 0
}

func (c *Classifier) filterForBackend(categories []api.Category) []api.Category {
	var out []api.Category
	for _, cat := range categories {
		var items []api.CatalogItem
		for _, item := range cat.Items {
			if c.Classify(item) != api.TargetMobile {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		cat.Items = items
		out = append(out, cat)
	}
	return out
}

func containsAny(hay string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(hay, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
