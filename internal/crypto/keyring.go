// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package crypto

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/store"
)

// slotKey names the single key-value entry holding the fingerprint.
const slotKey = "encryption:key-fingerprint"

// Keyring owns the persisted key fingerprint. It is constructed once at
// process start and passed to every component that needs key material;
// there is no ambient global lookup.
//
// The fingerprint is read-mostly: encrypt/decrypt operations only read
// it, and it is mutated solely by Setup, Remove, and the codec's
// clear-on-failure policy. Concurrent Setup/Remove calls are
// last-write-wins; they are rare, user-initiated operations.
type Keyring struct {
	kv  store.KeyValue
	log *logger.Logger

	mu      sync.Mutex
	waiters []chan struct{}
}

// NewKeyring constructs a Keyring over the given key-value slot store.
func NewKeyring(kv store.KeyValue, log *logger.Logger) *Keyring {
	return &Keyring{kv: kv, log: log}
}

// Setup hashes the passphrase and persists the resulting fingerprint,
// enabling encryption. Any goroutine blocked in AwaitSetup is released.
// The passphrase itself is never persisted.
func (k *Keyring) Setup(passphrase string) error {
	if strings.TrimSpace(passphrase) == "" {
		return ErrPassphraseEmpty
	}

	fingerprint := Fingerprint(passphrase)
	if err := k.kv.Put(slotKey, []byte(fingerprint)); err != nil {
		return fmt.Errorf("persist fingerprint: %w", err)
	}

	k.log.Info().Msg("encryption key configured")
	k.notify()
	return nil
}

// Available reports whether a well-formed fingerprint is persisted. A
// fingerprint shorter than the derivation prefix counts as absent.
func (k *Keyring) Available() bool {
	fingerprint, err := k.fingerprint()
	return err == nil && len(fingerprint) >= FingerprintPrefixLen
}

// Remove deletes the persisted fingerprint, disabling encryption.
// Removing an empty slot is not an error.
func (k *Keyring) Remove() error {
	if err := k.kv.Delete(slotKey); err != nil {
		return fmt.Errorf("remove fingerprint: %w", err)
	}
	return nil
}

// EncryptionKey derives the AES-256 key from the persisted fingerprint.
// Returns ErrKeyNotConfigured when the slot is empty.
func (k *Keyring) EncryptionKey() ([]byte, error) {
	fingerprint, err := k.fingerprint()
	if err != nil {
		return nil, err
	}
	return DeriveKey(fingerprint)
}

// AwaitSetup blocks until a key becomes available or ctx is cancelled.
// It returns immediately when a key is already configured. This replaces
// the availability-polling loop of earlier designs with an explicit
// one-shot signal fulfilled by Setup.
func (k *Keyring) AwaitSetup(ctx context.Context) error {
	k.mu.Lock()
	if k.Available() {
		k.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	k.waiters = append(k.waiters, ch)
	k.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *Keyring) fingerprint() (string, error) {
	raw, err := k.kv.Get(slotKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return "", ErrKeyNotConfigured
		}
		return "", fmt.Errorf("read fingerprint: %w", err)
	}
	return string(raw), nil
}

func (k *Keyring) notify() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, ch := range k.waiters {
		close(ch)
	}
	k.waiters = nil
}
