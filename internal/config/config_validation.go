package config

func (c *StructuredConfig) validate() error {
	if c.Adapter.RequestTimeout < 0 || c.Server.RequestTimeout < 0 {
		return ErrNegativeTimeout
	}

	switch c.App.ClearPolicy {
	case "", "strict", "report-only":
	default:
		return ErrUnknownClearPolicy
	}

	return nil
}

func (c *ClientConfig) validate() error {
	if c.Adapter.HTTPAddress == "" {
		return ErrNoAdapterAddress
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if c.Server.HTTPAddress == "" {
		return ErrNoServerAddress
	}
	// An empty key hash is allowed: the server then speaks plaintext,
	// matching the client's development fallback.
	if c.App.KeyHash != "" && len(c.App.KeyHash) < 32 {
		return ErrKeyHashTooShort
	}
	return nil
}
