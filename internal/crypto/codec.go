// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package crypto

import (
	"errors"
	"fmt"

	"github.com/cipherchat/cipherchat/internal/logger"
)

// ClearPolicy selects what a decrypt failure does to the keyring.
type ClearPolicy int

const (
	// ClearOnAuthFailure wipes the fingerprint when the AEAD tag fails
	// to verify. A tag failure is presumptive evidence of a wrong or
	// stale key, and the user is better served by a re-prompt than by
	// silent repeated failures. Malformed envelopes (bad base64, short
	// payload, invalid plaintext JSON) do not clear the key: they
	// indicate corruption or a protocol mismatch, not a wrong key.
	ClearOnAuthFailure ClearPolicy = iota

	// ReportOnly never touches the keyring; failures are only surfaced.
	ReportOnly
)

// ParseClearPolicy maps the configuration string to a ClearPolicy.
// Unknown values fall back to ClearOnAuthFailure.
func ParseClearPolicy(s string) ClearPolicy {
	if s == "report-only" {
		return ReportOnly
	}
	return ClearOnAuthFailure
}

// Codec performs authenticated encryption and decryption of structured
// payloads using key material derived from the keyring fingerprint.
type Codec struct {
	keys   *Keyring
	policy ClearPolicy
	log    *logger.Logger
}

// NewCodec constructs a Codec bound to keys with the given clear policy.
func NewCodec(keys *Keyring, policy ClearPolicy, log *logger.Logger) *Codec {
	return &Codec{keys: keys, policy: policy, log: log}
}

// Encrypt serializes v and seals it into an envelope string. Returns
// ErrKeyNotConfigured when no key is available; serialization and
// primitive failures are wrapped in ErrEncryptFailed.
func (c *Codec) Encrypt(v any) (string, error) {
	key, err := c.keys.EncryptionKey()
	if err != nil {
		return "", err
	}

	envelope, err := Seal(key, v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryptFailed, err)
	}
	return envelope, nil
}

// Decrypt opens an envelope string into target, applying the configured
// clear policy on failure.
func (c *Codec) Decrypt(envelope string, target any) error {
	return c.decrypt(envelope, target, true)
}

// DecryptKeep opens an envelope without ever touching the key slot,
// regardless of policy. Callers probing an envelope transactionally
// (e.g. a key self-test) use this to avoid wiping a key on a failure
// they expect to handle themselves.
func (c *Codec) DecryptKeep(envelope string, target any) error {
	return c.decrypt(envelope, target, false)
}

func (c *Codec) decrypt(envelope string, target any, allowClear bool) error {
	key, err := c.keys.EncryptionKey()
	if err != nil {
		return err
	}

	err = Open(key, envelope, target)
	if err == nil {
		return nil
	}

	if allowClear && c.policy == ClearOnAuthFailure && errors.Is(err, ErrAuthentication) {
		if rmErr := c.keys.Remove(); rmErr != nil {
			c.log.Error().Err(rmErr).Msg("failed to clear rejected encryption key")
		} else {
			c.log.Warn().Msg("decryption failed authentication, encryption key cleared")
		}
	}
	return err
}
