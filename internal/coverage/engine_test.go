package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapstack-cost/pkg/api"
)

var (
	itemA = api.CatalogItem{ID: "item-a", Capabilities: []string{"routing", "eta"}}
	itemB = api.CatalogItem{ID: "item-b", Capabilities: []string{"routing"}}
)

func TestComputeCoverage(t *testing.T) {
	// Selecting only B: routing covered, eta uncovered.
	report := Compute([]api.CatalogItem{itemB}, []string{"routing", "eta"})

	require.Len(t, report.Required, 2)
	assert.True(t, report.Required[0].Covered)
	assert.Equal(t, []string{"item-b"}, report.Required[0].CoveringItems)
	assert.False(t, report.Required[1].Covered)
	assert.False(t, report.AllRequiredCovered)
	assert.Equal(t, []string{"eta"}, report.Uncovered())
}

func TestComputeAllRequiredCovered(t *testing.T) {
	report := Compute([]api.CatalogItem{itemA}, []string{"routing", "eta"})

	assert.True(t, report.AllRequiredCovered)
	assert.Empty(t, report.Uncovered())
}

func TestComputeEmptyRequirements(t *testing.T) {
	// 0 of 0 is a valid, fully-covered result.
	report := Compute(nil, nil)

	assert.True(t, report.AllRequiredCovered)
	assert.Empty(t, report.Required)
}

func TestComputeNoSelection(t *testing.T) {
	report := Compute(nil, []string{"routing"})

	assert.False(t, report.AllRequiredCovered)
	assert.Equal(t, []string{"routing"}, report.Uncovered())
}

func TestComputeOptionalCoverage(t *testing.T) {
	report := Compute([]api.CatalogItem{itemA, itemB}, []string{"routing"})

	assert.True(t, report.AllRequiredCovered)
	require.Len(t, report.Optional, 1)
	assert.Equal(t, "eta", report.Optional[0].Capability)
	assert.Equal(t, []string{"item-a"}, report.Optional[0].CoveringItems)
	assert.True(t, report.Optional[0].Covered)
}

func TestComputeOptionalNeverGatesCompletion(t *testing.T) {
	withBonus := Compute([]api.CatalogItem{itemA}, []string{"routing"})
	withoutBonus := Compute([]api.CatalogItem{itemB}, []string{"routing"})

	assert.True(t, withBonus.AllRequiredCovered)
	assert.True(t, withoutBonus.AllRequiredCovered)
}

func TestComputeDuplicateRequirements(t *testing.T) {
	report := Compute([]api.CatalogItem{itemB}, []string{"routing", "routing"})
	require.Len(t, report.Required, 1)
}

func TestComputeIsPure(t *testing.T) {
	items := []api.CatalogItem{itemA, itemB}
	required := []string{"routing", "eta", "traffic"}

	first := Compute(items, required)
	second := Compute(items, required)
	assert.Equal(t, first, second)
}

func TestComputeMultipleCoveringItems(t *testing.T) {
	report := Compute([]api.CatalogItem{itemA, itemB}, []string{"routing"})
	assert.Equal(t, []string{"item-a", "item-b"}, report.Required[0].CoveringItems)
}
