package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses the command-line configuration flags.
//
// Flags:
//
//	-a backend/listen address
//	-c/-config json file path with configs
//	-kv-path local key-value store directory
//	-model default chat model
//	-token bearer token for authenticated requests
//	-key-hash server-side encryption secret (dev server)
//	-clear-policy key clearing policy: strict | report-only
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	return parseFlagsFrom(os.Args[1:])
}

func parseFlagsFrom(args []string) *StructuredConfig {
	fs := flag.NewFlagSet("cipherchat", flag.ContinueOnError)

	var address string
	var jsonConfigPath string
	var kvPath string
	var model string
	var token string
	var keyHash string
	var clearPolicy string
	var requestTimeout time.Duration

	fs.StringVar(&address, "a", "", "Backend/listen address")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&kvPath, "kv-path", "", "Local key-value store directory")
	fs.StringVar(&model, "model", "", "Default chat model")
	fs.StringVar(&token, "token", "", "Bearer token for authenticated requests")
	fs.StringVar(&keyHash, "key-hash", "", "Server-side encryption secret")
	fs.StringVar(&clearPolicy, "clear-policy", "", "Key clearing policy: strict | report-only")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	// Ignore unknown-flag errors here; the zero config falls through to
	// the other sources.
	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{
			KeyHash:     keyHash,
			Model:       model,
			ClearPolicy: clearPolicy,
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			AuthToken:      token,
			RequestTimeout: requestTimeout,
		},
		Server: Server{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			KV: KV{Path: kvPath},
		},
		JSONFilePath: jsonConfigPath,
	}
}
