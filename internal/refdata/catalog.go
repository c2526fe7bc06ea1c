package refdata

import (
	"encoding/json"
	"fmt"
	"os"

	"mapstack-cost/pkg/api"
)

// LoadCatalog reads a catalog snapshot as handed over by the external
// catalog service.
func LoadCatalog(path string) (*api.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var catalog api.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &catalog, nil
}

// LoadSelections reads a persisted selection record verbatim. The raw
// map goes through the normalizer before anything consumes it.
func LoadSelections(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selections: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse selections: %w", err)
	}
	return raw, nil
}
