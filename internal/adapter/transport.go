// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/models"
)

// Transport applies the envelope scheme to outbound request bodies and
// inbound response bodies.
//
// Whether to encrypt is decided once per operation, before any
// cryptographic attempt: with no key configured, requests and responses
// travel as raw JSON (a development-mode escape hatch, not a security
// feature). Once a key is configured, a cryptographic failure fails the
// operation loudly; there is no silent mid-flight fallback to plaintext.
type Transport struct {
	keys  *crypto.Keyring
	codec *crypto.Codec
}

// NewTransport constructs a Transport over the given keyring and codec.
func NewTransport(keys *crypto.Keyring, codec *crypto.Codec) *Transport {
	return &Transport{keys: keys, codec: codec}
}

// WrapRequest prepares v for sending: an Envelope when a key is
// configured, v unchanged otherwise.
func (t *Transport) WrapRequest(v any) (any, error) {
	if !t.keys.Available() {
		return v, nil
	}

	envelope, err := t.codec.Encrypt(v)
	if err != nil {
		return nil, fmt.Errorf("encrypt request: %w", err)
	}
	return models.Envelope{EncryptedData: envelope}, nil
}

// UnwrapResponse decodes a response body into target. When a key is
// configured the body must carry the envelope shape; ErrMalformedResponse
// flags a missing encrypted_data field without touching key state.
func (t *Transport) UnwrapResponse(body []byte, target any) error {
	if !t.keys.Available() {
		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if envelope.EncryptedData == "" {
		return ErrMalformedResponse
	}

	if err := t.codec.Decrypt(envelope.EncryptedData, target); err != nil {
		return fmt.Errorf("decrypt response: %w", err)
	}
	return nil
}
