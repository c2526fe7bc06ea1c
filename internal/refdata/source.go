// Package refdata loads the static reference data the derivation core
// runs against: pricing profiles and environment-classification tokens.
// The core itself never performs I/O; these sources are the external
// configuration collaborators feeding it at startup.
package refdata

import (
	"context"

	"mapstack-cost/pkg/api"
)

// TokenSet holds the environment-classification token lists.
type TokenSet struct {
	SDK []string `mapstructure:"sdk_tokens"`
	API []string `mapstructure:"api_tokens"`
}

// RefData is one loaded reference snapshot.
type RefData struct {
	Profiles []api.PricingProfile
	Tokens   TokenSet
}

// ProfileStore supplies pricing profiles from some backing source.
type ProfileStore interface {
	LoadProfiles(ctx context.Context) ([]api.PricingProfile, error)
}
