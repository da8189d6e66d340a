// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

// Package crypto implements the end-to-end payload encryption core: the
// envelope codec shared with the backend and the keyring holding the
// persisted key fingerprint.
//
// Wire contract (must match the backend bit for bit):
//
//	fingerprint = hex(SHA-256(passphrase))            persisted
//	key         = SHA-256(fingerprint[:32])           never persisted
//	envelope    = base64(nonce(12) || AES-256-GCM(json(payload)))
//
// The double hash is an inherited protocol constraint, not a KDF
// recommendation: both ends of the wire derive identically, so changing
// either stage breaks compatibility.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes. The nonce is
	// prepended to the ciphertext so the decrypting side can split it
	// back out.
	NonceSize = 12

	// FingerprintPrefixLen is the number of fingerprint characters fed
	// into the second derivation stage.
	FingerprintPrefixLen = 32
)

// Fingerprint hashes a passphrase into its persisted hex digest. The
// literal passphrase is never stored; the fingerprint stands in for it.
func Fingerprint(passphrase string) string {
	sum := sha256.Sum256([]byte(passphrase))
	return hex.EncodeToString(sum[:])
}

// DeriveKey runs the second derivation stage: SHA-256 over the first 32
// characters of the fingerprint, used directly as the AES-256 key.
func DeriveKey(fingerprint string) ([]byte, error) {
	if len(fingerprint) < FingerprintPrefixLen {
		return nil, ErrFingerprintTooShort
	}
	sum := sha256.Sum256([]byte(fingerprint[:FingerprintPrefixLen]))
	return sum[:], nil
}

// Seal serializes v to JSON and encrypts it under key with AES-256-GCM.
// The result is base64(nonce || ciphertext+tag). A fresh random nonce is
// drawn for every call, so output is non-reproducible even for identical
// input.
func Seal(key []byte, v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open decodes envelope, verifies and decrypts it under key, and
// unmarshals the plaintext JSON into target. Every failure is wrapped in
// [ErrDecryptFailed]; authentication-tag failures additionally match
// [ErrAuthentication] so callers can distinguish a wrong key from a
// corrupted or malformed envelope.
//
// The nonce-size floor is checked before the AEAD is built: a truncated
// envelope never reaches the primitive.
func Open(key []byte, envelope string, target any) error {
	blob, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return fmt.Errorf("%w: decode base64: %v", ErrDecryptFailed, err)
	}
	if len(blob) < NonceSize {
		return fmt.Errorf("%w: %w", ErrDecryptFailed, ErrEnvelopeTooShort)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("%w: create cipher: %v", ErrDecryptFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("%w: create gcm: %v", ErrDecryptFailed, err)
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecryptFailed, ErrAuthentication)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("%w: unmarshal plaintext: %v", ErrDecryptFailed, err)
	}
	return nil
}
