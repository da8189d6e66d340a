// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

// Package config loads and merges cipherchat configuration from
// environment variables, command-line flags, an optional JSON file, and
// built-in defaults, in that order of precedence.
package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the development server.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
//   - json: key in the optional JSON configuration file.
type StructuredConfig struct {
	// App holds application-level settings: encryption policy, model
	// selection, and the server-side encryption secret.
	App App `envPrefix:"APP_" json:"app"`

	// Adapter holds outbound transport settings used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_" json:"adapter"`

	// Server holds inbound transport settings for the development server.
	Server Server `envPrefix:"SERVER_" json:"server"`

	// Storage holds persistence settings for the local key-value store.
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`

	// JSONFilePath optionally points at a JSON configuration file merged
	// underneath environment variables and flags.
	// Env: CONFIG. Flag: -c / -config.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// App holds application-level configuration.
type App struct {
	// KeyHash is the server-side encryption secret consumed by the
	// development server; its first 32 characters feed the key
	// derivation, mirroring the production backend's AES_KEY_HASH.
	// Env: APP_AES_KEY_HASH
	KeyHash string `env:"AES_KEY_HASH" json:"aes_key_hash"`

	// Model is the default generation model requested for chat turns.
	// Env: APP_MODEL
	Model string `env:"MODEL" json:"model"`

	// ClearPolicy selects what a client-side decryption failure does to
	// the stored key: "strict" clears it, "report-only" leaves it.
	// Env: APP_CLEAR_POLICY
	ClearPolicy string `env:"CLEAR_POLICY" json:"clear_policy"`

	// Version is the semantic version of the running build.
	// Env: APP_VERSION
	Version string `env:"VERSION" json:"version"`
}

// Adapter holds settings for the client's outbound HTTP transport.
type Adapter struct {
	// HTTPAddress is the backend base URL (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"address"`

	// AuthToken is the bearer token presented on authenticated requests.
	// Token issuance and refresh live outside this client.
	// Env: ADAPTER_TOKEN
	AuthToken string `env:"TOKEN" json:"token"`

	// RequestTimeout bounds non-streaming outbound requests. Streaming
	// chat requests are bounded by their context instead.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
}

// Server holds settings for the development server's HTTP listener.
type Server struct {
	// HTTPAddress is the TCP listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"address"`

	// RequestTimeout bounds a single inbound non-streaming request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
}

// Storage holds persistence settings.
type Storage struct {
	// KV holds local key-value store settings.
	KV KV `envPrefix:"KV_" json:"kv"`
}

// KV holds settings for the local bitcask store carrying the key slot.
type KV struct {
	// Path is the bitcask database directory. The value ":memory:"
	// selects the non-persistent in-process store.
	// Env: STORAGE_KV_PATH
	Path string `env:"PATH" json:"path"`
}

// GetStructuredConfig builds the merged configuration: environment
// variables win over flags, flags over the JSON file, and the JSON file
// over built-in defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Model:       "gemini-2.5-flash",
			ClearPolicy: "strict",
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 60 * time.Second,
		},
		Storage: Storage{
			KV: KV{Path: "cipherchat-keys"},
		},
	}
}
