package crypto_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/mock"
	"github.com/cipherchat/cipherchat/internal/store"
)

const slotKey = "encryption:key-fingerprint"

func newTestKeyring(t *testing.T) *crypto.Keyring {
	t.Helper()
	return crypto.NewKeyring(store.NewMemoryStore(), logger.Nop())
}

func TestKeyring_SetupMakesKeyAvailable(t *testing.T) {
	keys := newTestKeyring(t)

	assert.False(t, keys.Available())

	require.NoError(t, keys.Setup("correct horse battery staple"))
	assert.True(t, keys.Available())

	key, err := keys.EncryptionKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestKeyring_SetupRejectsBlankPassphrase(t *testing.T) {
	keys := newTestKeyring(t)

	assert.ErrorIs(t, keys.Setup(""), crypto.ErrPassphraseEmpty)
	assert.ErrorIs(t, keys.Setup("   \t"), crypto.ErrPassphraseEmpty)
	assert.False(t, keys.Available())
}

func TestKeyring_SetupPersistsFingerprintNotPassphrase(t *testing.T) {
	kv := store.NewMemoryStore()
	keys := crypto.NewKeyring(kv, logger.Nop())

	passphrase := "correct horse battery staple"
	require.NoError(t, keys.Setup(passphrase))

	raw, err := kv.Get(slotKey)
	require.NoError(t, err)
	assert.Equal(t, crypto.Fingerprint(passphrase), string(raw))
	assert.NotContains(t, string(raw), passphrase)
}

func TestKeyring_RemoveIsIdempotent(t *testing.T) {
	keys := newTestKeyring(t)

	require.NoError(t, keys.Setup("some passphrase"))
	require.NoError(t, keys.Remove())
	assert.False(t, keys.Available())

	// Removing again must not fail.
	require.NoError(t, keys.Remove())
}

func TestKeyring_EncryptionKeyWithoutSetup(t *testing.T) {
	keys := newTestKeyring(t)

	_, err := keys.EncryptionKey()
	assert.ErrorIs(t, err, crypto.ErrKeyNotConfigured)
}

func TestKeyring_SameSecretYieldsSameKey(t *testing.T) {
	k1 := newTestKeyring(t)
	k2 := newTestKeyring(t)

	require.NoError(t, k1.Setup("shared secret"))
	require.NoError(t, k2.Setup("shared secret"))

	key1, err := k1.EncryptionKey()
	require.NoError(t, err)
	key2, err := k2.EncryptionKey()
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}

func TestKeyring_AwaitSetupReturnsImmediatelyWhenConfigured(t *testing.T) {
	keys := newTestKeyring(t)
	require.NoError(t, keys.Setup("already here"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, keys.AwaitSetup(ctx))
}

func TestKeyring_AwaitSetupReleasedBySetup(t *testing.T) {
	keys := newTestKeyring(t)

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done <- keys.AwaitSetup(ctx)
	}()

	// Give the waiter a moment to register before releasing it.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, keys.Setup("released"))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("AwaitSetup was not released by Setup")
	}
}

func TestKeyring_AwaitSetupHonorsCancellation(t *testing.T) {
	keys := newTestKeyring(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := keys.AwaitSetup(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKeyring_StoreFailuresAreWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := mock.NewMockKeyValue(ctrl)
	keys := crypto.NewKeyring(kv, logger.Nop())

	storeErr := errors.New("disk unavailable")

	kv.EXPECT().Put(slotKey, gomock.Any()).Return(storeErr)
	assert.ErrorIs(t, keys.Setup("passphrase"), storeErr)

	kv.EXPECT().Get(slotKey).Return(nil, storeErr)
	_, err := keys.EncryptionKey()
	assert.ErrorIs(t, err, storeErr)

	kv.EXPECT().Delete(slotKey).Return(storeErr)
	assert.ErrorIs(t, keys.Remove(), storeErr)
}
