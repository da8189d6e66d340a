package adapter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/store"
	"github.com/cipherchat/cipherchat/models"
)

func newTestTransport(t *testing.T, passphrase string) (*Transport, *crypto.Keyring) {
	t.Helper()
	keys := crypto.NewKeyring(store.NewMemoryStore(), logger.Nop())
	if passphrase != "" {
		require.NoError(t, keys.Setup(passphrase))
	}
	codec := crypto.NewCodec(keys, crypto.ClearOnAuthFailure, logger.Nop())
	return NewTransport(keys, codec), keys
}

func TestTransport_PlaintextFallbackWithoutKey(t *testing.T) {
	transport, _ := newTestTransport(t, "")

	req := models.ChatRequest{Message: "hi"}
	wrapped, err := transport.WrapRequest(req)
	require.NoError(t, err)
	assert.Equal(t, req, wrapped, "without a key the request passes through unchanged")

	var got models.ChatRequest
	require.NoError(t, transport.UnwrapResponse([]byte(`{"message":"hi"}`), &got))
	assert.Equal(t, "hi", got.Message)
}

func TestTransport_EnvelopeRoundTrip(t *testing.T) {
	transport, keys := newTestTransport(t, "correct horse battery staple")

	wrapped, err := transport.WrapRequest(models.ChatRequest{Message: "secret question"})
	require.NoError(t, err)

	envelope, ok := wrapped.(models.Envelope)
	require.True(t, ok, "with a key the request must be wrapped in an envelope")
	require.NotEmpty(t, envelope.EncryptedData)

	// The server decrypts with the same derived key.
	key, err := keys.EncryptionKey()
	require.NoError(t, err)
	var req models.ChatRequest
	require.NoError(t, crypto.Open(key, envelope.EncryptedData, &req))
	assert.Equal(t, "secret question", req.Message)

	// And the response travels back the same way.
	sealed, err := crypto.Seal(key, models.APIResponse{Success: true})
	require.NoError(t, err)
	body, err := json.Marshal(models.Envelope{EncryptedData: sealed})
	require.NoError(t, err)

	var resp models.APIResponse
	require.NoError(t, transport.UnwrapResponse(body, &resp))
	assert.True(t, resp.Success)
}

func TestTransport_MissingEnvelopeField(t *testing.T) {
	transport, keys := newTestTransport(t, "correct horse battery staple")

	var resp models.APIResponse
	err := transport.UnwrapResponse([]byte(`{"success":true}`), &resp)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.True(t, keys.Available(), "a malformed response must not clear the key")
}

func TestTransport_TamperedResponseClearsKey(t *testing.T) {
	transport, keys := newTestTransport(t, "correct horse battery staple")

	// Sealed under a different key: tag verification fails.
	foreignKey, err := crypto.DeriveKey(crypto.Fingerprint("another passphrase"))
	require.NoError(t, err)
	sealed, err := crypto.Seal(foreignKey, models.APIResponse{Success: true})
	require.NoError(t, err)
	body, err := json.Marshal(models.Envelope{EncryptedData: sealed})
	require.NoError(t, err)

	var resp models.APIResponse
	err = transport.UnwrapResponse(body, &resp)
	assert.ErrorIs(t, err, crypto.ErrAuthentication)
	assert.False(t, keys.Available(), "an authentication failure clears the key")
}
