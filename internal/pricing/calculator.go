package pricing

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mapstack-cost/pkg/api"
	"mapstack-cost/pkg/errors"
)

var perThousand = decimal.NewFromInt(1000)

// ComputeCost walks a profile's tier table and returns the monthly cost
// for the given volume, rounded to 2 decimal places.
//
// The free allowance is subtracted first, floored at zero. Each tier
// then consumes min(remaining, tier capacity) units at its rate, the
// unbounded final tier absorbing whatever is left. Zero volume is always
// zero cost without walking tiers. Negative volume is a caller contract
// violation and is rejected, never clamped — silently wrong totals from
// upstream bugs are worse than an error.
func ComputeCost(profile api.PricingProfile, monthlyVolume int64) (decimal.Decimal, error) {
	if monthlyVolume < 0 {
		return decimal.Zero, errors.NewNegativeVolumeError(monthlyVolume)
	}
	if profile.ContactSales || len(profile.Tiers) == 0 {
		return decimal.Zero, errors.NewContactSalesError(profile.ItemID)
	}
	if monthlyVolume == 0 {
		return decimal.Zero, nil
	}

	remaining := monthlyVolume - profile.FreeAllowance
	if remaining <= 0 {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	prevBound := int64(0)
	for _, tier := range profile.Tiers {
		if remaining <= 0 {
			break
		}
		units := remaining
		if tier.UpTo != nil {
			if capacity := *tier.UpTo - prevBound; capacity < units {
				units = capacity
			}
			prevBound = *tier.UpTo
		}
		total = total.Add(decimal.NewFromInt(units).Div(perThousand).Mul(tier.PricePer1000))
		remaining -= units
	}

	return total.Round(2), nil
}

// ValidateProfile checks the rate-card invariants: tier bounds strictly
// increase, only the final tier is unbounded, and the free allowance is
// non-negative. Contact-sales profiles carry no tiers and pass as-is.
func ValidateProfile(p api.PricingProfile) error {
	if p.FreeAllowance < 0 {
		return errors.NewInvalidProfileError(p.ItemID, "free allowance must be >= 0")
	}
	if p.ContactSales {
		return nil
	}
	if len(p.Tiers) == 0 {
		return errors.NewInvalidProfileError(p.ItemID, "profile has no tiers")
	}
	prev := int64(0)
	for i, tier := range p.Tiers {
		last := i == len(p.Tiers)-1
		if tier.UpTo == nil {
			if !last {
				return errors.NewInvalidProfileError(p.ItemID, "only the final tier may be unbounded")
			}
			continue
		}
		if last {
			return errors.NewInvalidProfileError(p.ItemID, "final tier must be unbounded")
		}
		if *tier.UpTo <= prev {
			return errors.NewInvalidProfileError(p.ItemID, "tier bounds must strictly increase")
		}
		prev = *tier.UpTo
	}
	return nil
}

// Aggregate prices every selected item at the projected monthly volume
// and rolls the results up per vendor and overall. Contact-sales items
// are excluded from the numeric totals but flip HasContactSales; any
// other pricing failure flips HasPricingUnavailable. Line items are
// sorted by cost, highest first.
func Aggregate(items []api.CatalogItem, monthlyVolume int64, resolver *Resolver) (*api.CostSummary, error) {
	if monthlyVolume < 0 {
		return nil, errors.NewNegativeVolumeError(monthlyVolume)
	}

	summary := &api.CostSummary{
		QuoteID:       uuid.New(),
		GeneratedAt:   time.Now().UTC(),
		MonthlyVolume: monthlyVolume,
		GrandTotal:    decimal.Zero,
	}
	subtotals := make(map[string]decimal.Decimal)

	for _, item := range items {
		rp := resolver.Resolve(item)
		line := api.CostLine{
			ItemID:      item.ID,
			ItemName:    item.Name,
			Vendor:      item.Vendor,
			MonthlyCost: decimal.Zero,
			Origin:      rp.Origin,
		}

		switch {
		case rp.Origin == api.OriginContactSales:
			line.ContactSales = true
			line.Reason = "vendor publishes no rate card for this item"
			summary.HasContactSales = true
		default:
			cost, err := ComputeCost(rp.Profile, monthlyVolume)
			if err != nil {
				line.Unavailable = true
				line.Reason = err.Error()
				summary.HasPricingUnavailable = true
				break
			}
			line.MonthlyCost = cost
			line.Formula = formula(rp.Profile, monthlyVolume, cost)
			summary.GrandTotal = summary.GrandTotal.Add(cost)
			subtotals[item.Vendor] = subtotals[item.Vendor].Add(cost)
			if rp.IsEstimate() {
				summary.HasEstimates = true
			}
		}

		summary.Lines = append(summary.Lines, line)
	}

	for vendor, cost := range subtotals {
		summary.VendorSubtotals = append(summary.VendorSubtotals, api.VendorSubtotal{
			Vendor:      vendor,
			MonthlyCost: cost,
		})
	}
	sort.Slice(summary.VendorSubtotals, func(i, j int) bool {
		a, b := summary.VendorSubtotals[i], summary.VendorSubtotals[j]
		if !a.MonthlyCost.Equal(b.MonthlyCost) {
			return a.MonthlyCost.GreaterThan(b.MonthlyCost)
		}
		return a.Vendor < b.Vendor
	})
	sort.SliceStable(summary.Lines, func(i, j int) bool {
		return summary.Lines[i].MonthlyCost.GreaterThan(summary.Lines[j].MonthlyCost)
	})

	return summary, nil
}

func formula(p api.PricingProfile, volume int64, cost decimal.Decimal) string {
	unit := unitFor(p.Model)
	if p.FreeAllowance > 0 {
		return fmt.Sprintf("%d %s (%d free) × tiered rates = $%s", volume, unit, p.FreeAllowance, cost.StringFixed(2))
	}
	return fmt.Sprintf("%d %s × tiered rates = $%s", volume, unit, cost.StringFixed(2))
}

func unitFor(model api.PricingModel) string {
	switch model {
	case api.ModelSession:
		return "sessions"
	case api.ModelAsset:
		return "assets"
	case api.ModelFlat:
		return "units"
	default:
		return "requests"
	}
}
