package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingModel tags how a vendor meters an item.
type PricingModel string

const (
	ModelRequest PricingModel = "request"
	ModelSession PricingModel = "session"
	ModelAsset   PricingModel = "asset"
	ModelFlat    PricingModel = "flat"
)

// PricingTier is one step of a tiered rate table. UpTo is the upper
// bound on cumulative monthly volume this tier applies to; nil marks the
// final, unbounded tier. PricePer1000 is the rate for units inside the
// tier.
type PricingTier struct {
	UpTo         *int64          `json:"up_to,omitempty"`
	PricePer1000 decimal.Decimal `json:"price_per_1000"`
}

// PricingProfile is the rate card for one catalog item. Tiers are
// ordered ascending by bound with an unbounded final tier. A
// contact-sales profile carries no computable tiers.
type PricingProfile struct {
	ItemID        string        `json:"item_id"`
	Vendor        string        `json:"vendor"`
	Name          string        `json:"name"`
	Model         PricingModel  `json:"model"`
	Tiers         []PricingTier `json:"tiers,omitempty"`
	FreeAllowance int64         `json:"free_allowance"`
	ContactSales  bool          `json:"contact_sales"`
}

// ProfileOrigin records how a profile was resolved for an item.
type ProfileOrigin string

const (
	OriginExact        ProfileOrigin = "exact"
	OriginHeuristic    ProfileOrigin = "heuristic"
	OriginEstimate     ProfileOrigin = "estimate"
	OriginContactSales ProfileOrigin = "contact_sales"
)

// ResolvedProfile pairs a profile with its resolution origin so
// consumers can tell authoritative pricing from estimates.
type ResolvedProfile struct {
	Profile PricingProfile `json:"profile"`
	Origin  ProfileOrigin  `json:"origin"`
}

// IsEstimate reports whether the profile is a fallback guess rather than
// vendor-published pricing.
func (r ResolvedProfile) IsEstimate() bool {
	return r.Origin == OriginEstimate
}

// CostLine explains the monthly cost of a single selected item.
type CostLine struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Vendor       string          `json:"vendor"`
	MonthlyCost  decimal.Decimal `json:"monthly_cost"`
	Formula      string          `json:"formula,omitempty"`
	Origin       ProfileOrigin   `json:"origin"`
	ContactSales bool            `json:"contact_sales"`
	Unavailable  bool            `json:"unavailable"`
	Reason       string          `json:"reason,omitempty"`
}

// VendorSubtotal is the monthly total for one vendor.
type VendorSubtotal struct {
	Vendor      string          `json:"vendor"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// CostSummary is the aggregate pricing derivation for one selection
// snapshot. Contact-sales items are excluded from the numeric totals but
// surfaced through HasContactSales; anything else that could not be
// priced sets HasPricingUnavailable.
type CostSummary struct {
	QuoteID               uuid.UUID        `json:"quote_id"`
	GeneratedAt           time.Time        `json:"generated_at"`
	MonthlyVolume         int64            `json:"monthly_volume"`
	Lines                 []CostLine       `json:"lines"`
	VendorSubtotals       []VendorSubtotal `json:"vendor_subtotals"`
	GrandTotal            decimal.Decimal  `json:"grand_total"`
	HasContactSales       bool             `json:"has_contact_sales"`
	HasPricingUnavailable bool             `json:"has_pricing_unavailable"`
	HasEstimates          bool             `json:"has_estimates"`
}
