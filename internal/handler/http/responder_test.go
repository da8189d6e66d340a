package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherchat/cipherchat/models"
)

func TestEchoResponder_EchoesMessage(t *testing.T) {
	deltas, meta := NewEchoResponder().Respond(models.ChatRequest{Message: "ping"})

	assert.Equal(t, "You said: ping", strings.Join(deltas, ""))
	assert.False(t, meta.Grounded)
	assert.Empty(t, meta.References)
}

func TestEchoResponder_GroundedWhenSearchEnabled(t *testing.T) {
	deltas, meta := NewEchoResponder().Respond(models.ChatRequest{
		Message:      "what is AES",
		EnableSearch: true,
		URLContext:   []string{"https://example.com/aes"},
	})

	require.NotEmpty(t, deltas)
	assert.True(t, meta.Grounded)
	assert.Equal(t, []string{"what is AES"}, meta.SearchQueries)
	require.Len(t, meta.References, 1)
	require.Len(t, meta.GroundingSupports, 1)
	assert.Equal(t, []string{"https://example.com/aes"}, meta.URLContextURLs)
}

func TestSplitDeltas_NeverSplitsRunes(t *testing.T) {
	text := strings.Repeat("ключ", 20)
	deltas := splitDeltas(text, 16)

	var rebuilt strings.Builder
	for _, delta := range deltas {
		assert.True(t, len(delta) <= 16+3, "chunk exceeds size plus one rune: %q", delta)
		rebuilt.WriteString(delta)
	}
	assert.Equal(t, text, rebuilt.String())
}
