package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Model is the default generation model requested for chat turns.
	Model string
	// ClearPolicy selects the key clearing behavior on decrypt failure.
	ClearPolicy string
}

// ClientAdapter holds network settings for the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend base URL.
	HTTPAddress string
	// AuthToken is the bearer token for authenticated requests.
	AuthToken string
	// RequestTimeout is the default timeout for non-streaming requests.
	RequestTimeout time.Duration
}

// ClientStorage holds the client's local persistence settings.
type ClientStorage struct {
	// KVPath is the bitcask directory carrying the key slot, or
	// ":memory:" for the non-persistent store.
	KVPath string
}

// ClientConfig is the client view of the merged configuration.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
}

// GetClientConfig builds and validates the client-specific view of the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Model:       cfg.App.Model,
			ClearPolicy: cfg.App.ClearPolicy,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			AuthToken:      cfg.Adapter.AuthToken,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			KVPath: cfg.Storage.KV.Path,
		},
	}

	return clientCfg, clientCfg.validate()
}
