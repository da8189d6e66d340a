package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// parseJSON loads a [StructuredConfig] from the JSON file at path.
func parseJSON(path string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json config %q: %w", path, err)
	}

	cfg := &StructuredConfig{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse json config %q: %w", path, err)
	}

	return cfg, nil
}
