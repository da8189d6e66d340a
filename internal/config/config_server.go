package config

import (
	"fmt"
	"time"
)

// ServerApp holds application settings for the development server.
type ServerApp struct {
	// KeyHash is the server-side encryption secret; empty disables
	// encryption (plaintext development mode).
	KeyHash string
	// Model is the model label echoed in generated responses.
	Model string
	// Version is the build version exposed for diagnostics.
	Version string
}

// ServerHTTP holds listener settings for the development server.
type ServerHTTP struct {
	// HTTPAddress is the TCP listen address.
	HTTPAddress string
	// RequestTimeout bounds a single non-streaming request.
	RequestTimeout time.Duration
}

// ServerConfig is the development-server view of the merged configuration.
type ServerConfig struct {
	App    ServerApp
	Server ServerHTTP
}

// GetServerConfig builds and validates the server-specific view of the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App: ServerApp{
			KeyHash: cfg.App.KeyHash,
			Model:   cfg.App.Model,
			Version: cfg.App.Version,
		},
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}

	return serverCfg, serverCfg.validate()
}
