package refdata

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"mapstack-cost/internal/pricing"
	"mapstack-cost/pkg/api"
)

// fileConfig mirrors the YAML reference-data layout.
type fileConfig struct {
	Classifier TokenSet      `mapstructure:"classifier"`
	Profiles   []fileProfile `mapstructure:"profiles"`
}

type fileProfile struct {
	ItemID        string     `mapstructure:"item_id"`
	Vendor        string     `mapstructure:"vendor"`
	Name          string     `mapstructure:"name"`
	Model         string     `mapstructure:"model"`
	FreeAllowance int64      `mapstructure:"free_allowance"`
	ContactSales  bool       `mapstructure:"contact_sales"`
	Tiers         []fileTier `mapstructure:"tiers"`
}

type fileTier struct {
	// UpTo omitted marks the unbounded final tier.
	UpTo         *int64 `mapstructure:"up_to"`
	PricePer1000 string `mapstructure:"price_per_1000"`
}

// FileSource loads reference data from a YAML file via viper, with
// environment-variable overrides (MAPSTACK_ prefix).
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed reference source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and validates the full reference snapshot. Profiles that
// violate tier invariants are dropped with a warning rather than
// failing the load; the resolver falls back to estimate pricing for
// their items.
func (s *FileSource) Load() (*RefData, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetEnvPrefix("MAPSTACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading reference data file: %w", err)
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode reference data: %w", err)
	}

	data := &RefData{Tokens: cfg.Classifier}
	for _, fp := range cfg.Profiles {
		profile, err := fp.toProfile()
		if err == nil {
			err = pricing.ValidateProfile(profile)
		}
		if err != nil {
			log.WithField("item_id", fp.ItemID).Warnf("Dropping pricing profile: %v", err)
			continue
		}
		data.Profiles = append(data.Profiles, profile)
	}
	return data, nil
}

// LoadProfiles implements ProfileStore.
func (s *FileSource) LoadProfiles(ctx context.Context) ([]api.PricingProfile, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	return data.Profiles, nil
}

func (fp fileProfile) toProfile() (api.PricingProfile, error) {
	p := api.PricingProfile{
		ItemID:        fp.ItemID,
		Vendor:        fp.Vendor,
		Name:          fp.Name,
		Model:         api.PricingModel(fp.Model),
		FreeAllowance: fp.FreeAllowance,
		ContactSales:  fp.ContactSales,
	}
	for _, ft := range fp.Tiers {
		rate, err := decimal.NewFromString(ft.PricePer1000)
		if err != nil {
			return p, fmt.Errorf("bad tier rate %q: %w", ft.PricePer1000, err)
		}
		p.Tiers = append(p.Tiers, api.PricingTier{UpTo: ft.UpTo, PricePer1000: rate})
	}
	return p, nil
}
