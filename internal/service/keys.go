package service

import (
	"context"
	"fmt"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
)

type keyService struct {
	keys  *crypto.Keyring
	codec *crypto.Codec
	log   *logger.Logger
}

// NewKeyService constructs a [KeyService] over the shared keyring.
func NewKeyService(keys *crypto.Keyring, codec *crypto.Codec, log *logger.Logger) KeyService {
	return &keyService{keys: keys, codec: codec, log: log}
}

func (s *keyService) Setup(passphrase string) error {
	return s.keys.Setup(passphrase)
}

func (s *keyService) Remove() error {
	return s.keys.Remove()
}

func (s *keyService) Available() bool {
	return s.keys.Available()
}

func (s *keyService) AwaitSetup(ctx context.Context) error {
	return s.keys.AwaitSetup(ctx)
}

// SelfTest seals a probe value and opens it again with the configured
// key. DecryptKeep keeps the probe transactional: a failure reports the
// problem without wiping the key slot.
func (s *keyService) SelfTest() error {
	probe := map[string]string{"probe": "self-test"}

	envelope, err := s.codec.Encrypt(probe)
	if err != nil {
		return fmt.Errorf("self-test encrypt: %w", err)
	}

	var echo map[string]string
	if err := s.codec.DecryptKeep(envelope, &echo); err != nil {
		return fmt.Errorf("self-test decrypt: %w", err)
	}
	if echo["probe"] != probe["probe"] {
		return fmt.Errorf("self-test mismatch")
	}
	return nil
}
