package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/store"
	"github.com/cipherchat/cipherchat/models"
)

// streamBuilder assembles a wire-format event stream for tests.
type streamBuilder struct {
	b strings.Builder
}

func (s *streamBuilder) frame(t *testing.T, event models.StreamEvent) *streamBuilder {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	fmt.Fprintf(&s.b, "data: %s\n\n", data)
	return s
}

func (s *streamBuilder) body() *closeTracker {
	return &closeTracker{Reader: strings.NewReader(s.b.String())}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func newTestCodec(t *testing.T, passphrase string) (*crypto.Codec, *crypto.Keyring) {
	t.Helper()
	keys := crypto.NewKeyring(store.NewMemoryStore(), logger.Nop())
	require.NoError(t, keys.Setup(passphrase))
	return crypto.NewCodec(keys, crypto.ClearOnAuthFailure, logger.Nop()), keys
}

func seal(t *testing.T, keys *crypto.Keyring, v any) string {
	t.Helper()
	key, err := keys.EncryptionKey()
	require.NoError(t, err)
	envelope, err := crypto.Seal(key, v)
	require.NoError(t, err)
	return envelope
}

func TestCoordinator_PlaintextStream(t *testing.T) {
	codec, _ := newTestCodec(t, "passphrase")

	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventConversationStart, ConversationID: "c1"}).
		frame(t, models.StreamEvent{Type: models.EventChunk, Content: "Hel"}).
		frame(t, models.StreamEvent{Type: models.EventChunk, Content: "lo"}).
		frame(t, models.StreamEvent{Type: models.EventDone, ConversationID: "c1"})
	body := sb.body()

	var started string
	var deltas []string
	coordinator := NewCoordinator(codec, logger.Nop())
	result, err := coordinator.Run(context.Background(), body, Callbacks{
		OnStart: func(id string) { started = id },
		OnDelta: func(text string) { deltas = append(deltas, text) },
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello", result.Text)
	assert.Equal(t, "c1", started)
	assert.Equal(t, []string{"Hel", "lo"}, deltas)
	assert.Equal(t, StateDone, coordinator.State())
	assert.True(t, body.closed, "transport must be released on success")
}

func TestCoordinator_EncryptedStreamNormalized(t *testing.T) {
	codec, keys := newTestCodec(t, "passphrase")

	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventEncryptedChunk, EncryptedData: seal(t, keys, models.ChunkPayload{Content: "Hel"})}).
		frame(t, models.StreamEvent{Type: models.EventEncryptedChunk, EncryptedData: seal(t, keys, models.ChunkPayload{Content: "lo"})}).
		frame(t, models.StreamEvent{Type: models.EventEncryptedDone, EncryptedData: seal(t, keys, models.StreamEvent{
			Type:           models.EventDone,
			ConversationID: "c2",
			Grounded:       true,
			References:     []models.Reference{{ID: 1, Title: "Example", URL: "https://example.com", Domain: "example.com"}},
		})})
	body := sb.body()

	var deltas []string
	var final models.StreamEvent
	coordinator := NewCoordinator(codec, logger.Nop())
	result, err := coordinator.Run(context.Background(), body, Callbacks{
		OnDelta: func(text string) { deltas = append(deltas, text) },
		OnDone:  func(f models.StreamEvent) { final = f },
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello", result.Text)
	assert.Equal(t, []string{"Hel", "lo"}, deltas)

	// The terminal aggregate is normalized to the plaintext done shape.
	assert.Equal(t, models.EventDone, final.Type)
	assert.Empty(t, final.EncryptedData)
	assert.Equal(t, "c2", final.ConversationID)
	assert.True(t, final.Grounded)
	require.Len(t, final.References, 1)
	assert.Equal(t, "Example", final.References[0].Title)
	assert.True(t, body.closed)
}

func TestCoordinator_MixedPlaintextChunksEncryptedTerminal(t *testing.T) {
	codec, keys := newTestCodec(t, "passphrase")

	// Plaintext deltas with an encrypted terminal aggregate: both forms
	// may appear within one stream.
	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventChunk, Content: "Hel"}).
		frame(t, models.StreamEvent{Type: models.EventChunk, Content: "lo"}).
		frame(t, models.StreamEvent{Type: models.EventEncryptedDone, EncryptedData: seal(t, keys, models.StreamEvent{
			Type:           models.EventDone,
			ConversationID: "c3",
		})})
	body := sb.body()

	coordinator := NewCoordinator(codec, logger.Nop())
	result, err := coordinator.Run(context.Background(), body, Callbacks{})
	require.NoError(t, err)

	assert.Equal(t, "Hello", result.Text)
	assert.Equal(t, models.EventDone, result.Final.Type)
	assert.Equal(t, "c3", result.Final.ConversationID)
	assert.Equal(t, StateDone, coordinator.State())
}

func TestCoordinator_KeyRejectedOnForeignFrame(t *testing.T) {
	codec, _ := newTestCodec(t, "the right passphrase")
	_, foreignKeys := newTestCodec(t, "a wrong passphrase")

	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventChunk, Content: "partial "}).
		frame(t, models.StreamEvent{Type: models.EventEncryptedChunk, EncryptedData: seal(t, foreignKeys, models.ChunkPayload{Content: "text"})})
	body := sb.body()

	coordinator := NewCoordinator(codec, logger.Nop())
	result, err := coordinator.Run(context.Background(), body, Callbacks{})

	assert.ErrorIs(t, err, ErrKeyRejected)
	assert.Equal(t, StateKeyRejected, coordinator.State())
	// The partial turn is discarded, never surfaced.
	assert.Empty(t, result.Text)
	assert.True(t, body.closed, "transport must be released on key rejection")
}

func TestCoordinator_ServerErrorFrame(t *testing.T) {
	codec, _ := newTestCodec(t, "passphrase")

	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventChunk, Content: "some"}).
		frame(t, models.StreamEvent{Type: models.EventError, Error: "model overloaded"})
	body := sb.body()

	coordinator := NewCoordinator(codec, logger.Nop())
	_, err := coordinator.Run(context.Background(), body, Callbacks{})

	assert.ErrorIs(t, err, ErrStreamAborted)
	assert.Contains(t, err.Error(), "model overloaded")
	assert.Equal(t, StateErrored, coordinator.State())
	assert.True(t, body.closed)
}

func TestCoordinator_TruncatedStream(t *testing.T) {
	codec, _ := newTestCodec(t, "passphrase")

	// Stream ends without a terminal frame.
	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventChunk, Content: "cut off"})
	body := sb.body()

	coordinator := NewCoordinator(codec, logger.Nop())
	_, err := coordinator.Run(context.Background(), body, Callbacks{})

	assert.ErrorIs(t, err, ErrStreamAborted)
	assert.Equal(t, StateErrored, coordinator.State())
	assert.True(t, body.closed)
}

func TestCoordinator_Cancellation(t *testing.T) {
	codec, _ := newTestCodec(t, "passphrase")

	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventChunk, Content: "x"}).
		frame(t, models.StreamEvent{Type: models.EventDone})
	body := sb.body()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	coordinator := NewCoordinator(codec, logger.Nop())
	_, err := coordinator.Run(ctx, body, Callbacks{})

	assert.ErrorIs(t, err, ErrStreamAborted)
	assert.True(t, body.closed, "transport must be released on cancellation")
}

func TestCoordinator_SkipsUnknownFrameTypes(t *testing.T) {
	codec, _ := newTestCodec(t, "passphrase")

	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: "heartbeat"}).
		frame(t, models.StreamEvent{Type: models.EventChunk, Content: "ok"}).
		frame(t, models.StreamEvent{Type: models.EventDone})
	body := sb.body()

	coordinator := NewCoordinator(codec, logger.Nop())
	result, err := coordinator.Run(context.Background(), body, Callbacks{})
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Text)
}

func TestCoordinator_KeyClearedAfterRejection(t *testing.T) {
	codec, keys := newTestCodec(t, "the right passphrase")
	_, foreignKeys := newTestCodec(t, "a wrong passphrase")

	var sb streamBuilder
	sb.frame(t, models.StreamEvent{Type: models.EventEncryptedDone, EncryptedData: seal(t, foreignKeys, models.StreamEvent{Type: models.EventDone})})
	body := sb.body()

	coordinator := NewCoordinator(codec, logger.Nop())
	_, err := coordinator.Run(context.Background(), body, Callbacks{})

	assert.ErrorIs(t, err, ErrKeyRejected)
	assert.False(t, keys.Available(), "key must be cleared so the user is re-prompted")
}
