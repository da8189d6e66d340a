package stream

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherchat/cipherchat/models"
)

func TestFrameReader_ReadsFramesInOrder(t *testing.T) {
	raw := "data: {\"type\":\"conversation_start\",\"conversation_id\":\"c1\"}\n\n" +
		"data: {\"type\":\"chunk\",\"content\":\"Hel\"}\n\n" +
		"data: {\"type\":\"chunk\",\"content\":\"lo\"}\n\n" +
		"data: {\"type\":\"done\",\"conversation_id\":\"c1\"}\n\n"

	reader := NewFrameReader(strings.NewReader(raw))

	event, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, models.EventConversationStart, event.Type)
	assert.Equal(t, "c1", event.ConversationID)

	event, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, models.EventChunk, event.Type)
	assert.Equal(t, "Hel", event.Content)

	event, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "lo", event.Content)

	event, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, models.EventDone, event.Type)

	_, err = reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameReader_SkipsBlankLines(t *testing.T) {
	raw := "\n\n\ndata: {\"type\":\"chunk\",\"content\":\"x\"}\n\n\n"

	reader := NewFrameReader(strings.NewReader(raw))
	event, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "x", event.Content)
}

func TestFrameReader_MalformedPrefix(t *testing.T) {
	reader := NewFrameReader(strings.NewReader("event: ping\n\n"))

	_, err := reader.Next()
	assert.ErrorIs(t, err, ErrStreamAborted)
}

func TestFrameReader_InvalidJSON(t *testing.T) {
	reader := NewFrameReader(strings.NewReader("data: {not json}\n\n"))

	_, err := reader.Next()
	assert.ErrorIs(t, err, ErrStreamAborted)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestFrameReader_TransportFailure(t *testing.T) {
	reader := NewFrameReader(failingReader{})

	_, err := reader.Next()
	assert.ErrorIs(t, err, ErrStreamAborted)
	assert.NotErrorIs(t, err, io.EOF)
}
