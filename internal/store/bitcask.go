// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package store

import (
	"errors"
	"fmt"

	"git.mills.io/prologic/bitcask"
)

// bitcaskStore implements [KeyValue] on top of a local bitcask database.
// It is the durable backend for the keyring slot: one directory on disk,
// no server process, append-only writes.
type bitcaskStore struct {
	db *bitcask.Bitcask
}

// NewBitcaskStore opens (or creates) the bitcask database at path.
func NewBitcaskStore(path string) (KeyValue, error) {
	db, err := bitcask.Open(path, bitcask.WithMaxKeySize(256))
	if err != nil {
		return nil, fmt.Errorf("open key-value store: %w", err)
	}
	return &bitcaskStore{db: db}, nil
}

func (s *bitcaskStore) Get(key string) ([]byte, error) {
	value, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, bitcask.ErrKeyNotFound) || errors.Is(err, bitcask.ErrEmptyKey) || errors.Is(err, bitcask.ErrKeyExpired) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *bitcaskStore) Put(key string, value []byte) error {
	if err := s.db.Put([]byte(key), value); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	if err := s.db.Sync(); err != nil {
		return fmt.Errorf("sync after put %q: %w", key, err)
	}
	return nil
}

func (s *bitcaskStore) Delete(key string) error {
	if !s.db.Has([]byte(key)) {
		return nil
	}
	if err := s.db.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if err := s.db.Sync(); err != nil {
		return fmt.Errorf("sync after delete %q: %w", key, err)
	}
	return nil
}

func (s *bitcaskStore) Has(key string) bool {
	return s.db.Has([]byte(key))
}

func (s *bitcaskStore) Close() error {
	return s.db.Close()
}
