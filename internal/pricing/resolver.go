// Package pricing resolves rate cards for catalog items and computes
// tiered monthly costs.
package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"mapstack-cost/pkg/api"
)

// synonymGroups drive the fuzzy profile fallback. Groups are tried in
// declaration order and the first vendor-compatible hit wins, keeping
// heuristic matches deterministic.
var synonymGroups = []struct {
	name   string
	tokens []string
	all    bool // every token must match instead of any
}{
	{name: "routing", tokens: []string{"route", "direction"}},
	{name: "geocoding", tokens: []string{"geocode", "search"}},
	{name: "maps", tokens: []string{"map", "sdk"}, all: true},
	{name: "navigation", tokens: []string{"navigat"}},
}

// Resolver matches catalog items to pricing profiles. The profile table
// is injected so the resolver stays trivially testable against synthetic
// rate cards; there is no module-level singleton.
type Resolver struct {
	profiles map[string]api.PricingProfile
	ordered  []string // item ids in stable scan order for the heuristic pass
}

// NewResolver creates a resolver over the given profile table.
func NewResolver(profiles []api.PricingProfile) *Resolver {
	r := &Resolver{profiles: make(map[string]api.PricingProfile, len(profiles))}
	for _, p := range profiles {
		if _, dup := r.profiles[p.ItemID]; dup {
			continue
		}
		r.profiles[p.ItemID] = p
		r.ordered = append(r.ordered, p.ItemID)
	}
	sort.Strings(r.ordered)
	return r
}

// Resolve finds the pricing profile for an item. Exact id match first,
// then a heuristic match by vendor plus display-name synonyms, then a
// default two-tier estimate. Never errors: the product requirement is to
// always present some number or a clear contact-sales signal.
func (r *Resolver) Resolve(item api.CatalogItem) api.ResolvedProfile {
	if p, ok := r.profiles[item.ID]; ok {
		return resolved(p, api.OriginExact)
	}

	if group := groupOf(item.Name); group >= 0 {
		for _, id := range r.ordered {
			p := r.profiles[id]
			if p.Vendor == item.Vendor && groupOf(p.Name) == group {
				return resolved(p, api.OriginHeuristic)
			}
		}
	}

	return api.ResolvedProfile{
		Profile: EstimateProfile(item),
		Origin:  api.OriginEstimate,
	}
}

func resolved(p api.PricingProfile, origin api.ProfileOrigin) api.ResolvedProfile {
	if p.ContactSales {
		origin = api.OriginContactSales
	}
	return api.ResolvedProfile{Profile: p, Origin: origin}
}

// EstimateProfile is the default rate card used when no published
// pricing matches: up to 100,000 units/month at $5.00 per 1000, the
// remainder at $4.00 per 1000, no free allowance. An estimate, not
// authoritative pricing.
func EstimateProfile(item api.CatalogItem) api.PricingProfile {
	firstBound := int64(100000)
	return api.PricingProfile{
		ItemID: item.ID,
		Vendor: item.Vendor,
		Name:   item.Name,
		Model:  api.ModelRequest,
		Tiers: []api.PricingTier{
			{UpTo: &firstBound, PricePer1000: decimal.RequireFromString("5.00")},
			{PricePer1000: decimal.RequireFromString("4.00")},
		},
	}
}

func groupOf(name string) int {
	hay := strings.ToLower(name)
	for i, g := range synonymGroups {
		if g.all {
			if containsAll(hay, g.tokens) {
				return i
			}
			continue
		}
		for _, t := range g.tokens {
			if strings.Contains(hay, t) {
				return i
			}
		}
	}
	return -1
}

func containsAll(hay string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}
