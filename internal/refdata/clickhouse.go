package refdata

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"mapstack-cost/internal/pricing"
	"mapstack-cost/pkg/api"
)

// ClickHouseConfig holds connection configuration for the pricing
// reference store.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Debug    bool
}

// DefaultClickHouseConfig returns default development configuration.
func DefaultClickHouseConfig() *ClickHouseConfig {
	return &ClickHouseConfig{
		Host:     "localhost",
		Port:     9000,
		Database: "mapstack",
		Username: "default",
	}
}

// ClickHouseStore loads pricing profiles from a ClickHouse reference
// database maintained by the pricing ingestion pipeline.
type ClickHouseStore struct {
	conn clickhouse.Conn
	cfg  *ClickHouseConfig
}

// NewClickHouseStore opens a connection to the reference database.
func NewClickHouseStore(cfg *ClickHouseConfig) (*ClickHouseStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: cfg.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	return &ClickHouseStore{conn: conn, cfg: cfg}, nil
}

// Ping checks database connectivity.
func (s *ClickHouseStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close closes the database connection.
func (s *ClickHouseStore) Close() error {
	return s.conn.Close()
}

// LoadProfiles implements ProfileStore. Profiles violating tier
// invariants are dropped with a warning, matching the file source.
func (s *ClickHouseStore) LoadProfiles(ctx context.Context) ([]api.PricingProfile, error) {
	profiles, order, err := s.loadProfileRows(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.loadTierRows(ctx, profiles); err != nil {
		return nil, err
	}

	out := make([]api.PricingProfile, 0, len(order))
	for _, itemID := range order {
		p := *profiles[itemID]
		if err := pricing.ValidateProfile(p); err != nil {
			log.WithField("item_id", itemID).Warnf("Dropping pricing profile: %v", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ClickHouseStore) loadProfileRows(ctx context.Context) (map[string]*api.PricingProfile, []string, error) {
	query := `
		SELECT item_id, vendor, name, model, free_allowance, contact_sales
		FROM pricing_profiles FINAL
		ORDER BY item_id
	`
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load pricing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[string]*api.PricingProfile)
	var order []string
	for rows.Next() {
		var (
			p            api.PricingProfile
			model        string
			contactSales uint8
		)
		if err := rows.Scan(&p.ItemID, &p.Vendor, &p.Name, &model, &p.FreeAllowance, &contactSales); err != nil {
			return nil, nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.Model = api.PricingModel(model)
		p.ContactSales = contactSales == 1
		profiles[p.ItemID] = &p
		order = append(order, p.ItemID)
	}
	return profiles, order, rows.Err()
}

func (s *ClickHouseStore) loadTierRows(ctx context.Context, profiles map[string]*api.PricingProfile) error {
	query := `
		SELECT item_id, up_to, price_per_1000
		FROM pricing_tiers FINAL
		ORDER BY item_id, tier_index
	`
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load pricing tiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID string
			upTo   *int64
			rate   decimal.Decimal
		)
		if err := rows.Scan(&itemID, &upTo, &rate); err != nil {
			return fmt.Errorf("failed to scan tier: %w", err)
		}
		p, ok := profiles[itemID]
		if !ok {
			continue
		}
		p.Tiers = append(p.Tiers, api.PricingTier{UpTo: upTo, PricePer1000: rate})
	}
	return rows.Err()
}
