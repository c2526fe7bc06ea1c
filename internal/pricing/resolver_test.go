package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapstack-cost/pkg/api"
)

func testProfiles() []api.PricingProfile {
	return []api.PricingProfile{
		{
			ItemID: "acme-directions", Vendor: "AcmeMaps", Name: "Directions API",
			Model: api.ModelRequest,
			Tiers: []api.PricingTier{tier(nil, "4.00")},
		},
		{
			ItemID: "acme-geocode", Vendor: "AcmeMaps", Name: "Geocoding API",
			Model: api.ModelRequest,
			Tiers: []api.PricingTier{tier(nil, "3.00")},
		},
		{
			ItemID: "geo-enterprise", Vendor: "GeoCorp", Name: "Enterprise Search",
			ContactSales: true,
		},
	}
}

func TestResolveExactMatch(t *testing.T) {
	r := NewResolver(testProfiles())

	rp := r.Resolve(api.CatalogItem{ID: "acme-directions", Vendor: "AcmeMaps", Name: "Directions API"})
	assert.Equal(t, api.OriginExact, rp.Origin)
	assert.Equal(t, "acme-directions", rp.Profile.ItemID)
	assert.False(t, rp.IsEstimate())
}

func TestResolveHeuristicByVendorAndSynonym(t *testing.T) {
	r := NewResolver(testProfiles())

	// Unknown id, but "Route Optimizer" and "Directions API" share the
	// routing synonym group and the vendor matches.
	rp := r.Resolve(api.CatalogItem{ID: "acme-routes-v2", Vendor: "AcmeMaps", Name: "Route Optimizer"})
	assert.Equal(t, api.OriginHeuristic, rp.Origin)
	assert.Equal(t, "acme-directions", rp.Profile.ItemID)
}

func TestResolveHeuristicRequiresVendorMatch(t *testing.T) {
	r := NewResolver(testProfiles())

	rp := r.Resolve(api.CatalogItem{ID: "other-routes", Vendor: "OtherCo", Name: "Route Optimizer"})
	assert.Equal(t, api.OriginEstimate, rp.Origin)
}

func TestResolveContactSalesOrigin(t *testing.T) {
	r := NewResolver(testProfiles())

	rp := r.Resolve(api.CatalogItem{ID: "geo-enterprise", Vendor: "GeoCorp", Name: "Enterprise Search"})
	assert.Equal(t, api.OriginContactSales, rp.Origin)
	assert.True(t, rp.Profile.ContactSales)
}

func TestResolveHeuristicCanLandOnContactSales(t *testing.T) {
	r := NewResolver(testProfiles())

	// "Place Search" matches the geocoding group, as does GeoCorp's
	// "Enterprise Search" profile — which is contact sales.
	rp := r.Resolve(api.CatalogItem{ID: "geo-places", Vendor: "GeoCorp", Name: "Place Search"})
	assert.Equal(t, api.OriginContactSales, rp.Origin)
}

func TestResolveFallsBackToEstimate(t *testing.T) {
	r := NewResolver(testProfiles())

	item := api.CatalogItem{ID: "unknown-tiles", Vendor: "NewVendor", Name: "Tile Bundle"}
	rp := r.Resolve(item)

	require.Equal(t, api.OriginEstimate, rp.Origin)
	assert.True(t, rp.IsEstimate())

	p := rp.Profile
	require.Len(t, p.Tiers, 2)
	require.NotNil(t, p.Tiers[0].UpTo)
	assert.Equal(t, int64(100000), *p.Tiers[0].UpTo)
	assert.Equal(t, "5.00", p.Tiers[0].PricePer1000.StringFixed(2))
	assert.Nil(t, p.Tiers[1].UpTo)
	assert.Equal(t, "4.00", p.Tiers[1].PricePer1000.StringFixed(2))
	assert.Equal(t, int64(0), p.FreeAllowance)
	assert.NoError(t, ValidateProfile(p))
}

func TestResolveSynonymGroupPriorityIsStable(t *testing.T) {
	// "Map Search SDK" could match both the geocoding group ("search")
	// and the maps group ("map"+"sdk"); geocoding is declared first and
	// must win every time.
	profiles := []api.PricingProfile{
		{
			ItemID: "v-geocode", Vendor: "V", Name: "Geocode Service",
			Model: api.ModelRequest,
			Tiers: []api.PricingTier{tier(nil, "1.00")},
		},
		{
			ItemID: "v-maps", Vendor: "V", Name: "Map SDK",
			Model: api.ModelRequest,
			Tiers: []api.PricingTier{tier(nil, "2.00")},
		},
	}
	r := NewResolver(profiles)

	for i := 0; i < 10; i++ {
		rp := r.Resolve(api.CatalogItem{ID: "unknown", Vendor: "V", Name: "Map Search SDK"})
		require.Equal(t, api.OriginHeuristic, rp.Origin)
		require.Equal(t, "v-geocode", rp.Profile.ItemID)
	}
}

func TestNewResolverIgnoresDuplicateItemIDs(t *testing.T) {
	profiles := []api.PricingProfile{
		{ItemID: "dup", Vendor: "A", Name: "First", Tiers: []api.PricingTier{tier(nil, "1.00")}},
		{ItemID: "dup", Vendor: "A", Name: "Second", Tiers: []api.PricingTier{tier(nil, "2.00")}},
	}
	r := NewResolver(profiles)

	rp := r.Resolve(api.CatalogItem{ID: "dup", Vendor: "A", Name: "First"})
	assert.Equal(t, "First", rp.Profile.Name)
}
