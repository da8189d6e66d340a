package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherchat/cipherchat/internal/config"
	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/models"
)

func newTestClient(t *testing.T, serverURL, passphrase string) (BackendClient, *crypto.Keyring) {
	t.Helper()
	transport, keys := newTestTransport(t, passphrase)
	client, err := NewHTTPBackendClient(config.ClientAdapter{
		HTTPAddress:    serverURL,
		RequestTimeout: 5 * time.Second,
	}, transport, logger.Nop())
	require.NoError(t, err)
	return client, keys
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestHTTPBackendClient_RequiresAddress(t *testing.T) {
	transport, _ := newTestTransport(t, "")
	_, err := NewHTTPBackendClient(config.ClientAdapter{}, transport, logger.Nop())
	assert.ErrorIs(t, err, config.ErrNoAdapterAddress)
}

func TestHTTPBackendClient_TokenValid(t *testing.T) {
	client, _ := newTestClient(t, "http://localhost:0", "")

	assert.False(t, client.TokenValid(), "no token installed")

	client.SetToken("not-a-jwt")
	assert.False(t, client.TokenValid())

	client.SetToken(signedToken(t, -time.Hour))
	assert.False(t, client.TokenValid(), "expired token")

	client.SetToken(signedToken(t, time.Hour))
	assert.True(t, client.TokenValid())
}

func TestHTTPBackendClient_ListConversationsEncrypted(t *testing.T) {
	passphrase := "correct horse battery staple"
	serverKey, err := crypto.DeriveKey(crypto.Fingerprint(passphrase))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/conversations/", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "true", r.URL.Query().Get("starred"))
		assert.Equal(t, "Bearer some-token", r.Header.Get("Authorization"))

		sealed, err := crypto.Seal(serverKey, models.ConversationList{
			Conversations: []models.ConversationSummary{{ConversationID: "c1", Title: "first"}},
			Total:         1,
		})
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Envelope{EncryptedData: sealed})
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, passphrase)
	client.SetToken("some-token")

	starred := true
	list, err := client.ListConversations(context.Background(), ConversationQuery{Limit: 5, Starred: &starred})
	require.NoError(t, err)
	require.Len(t, list.Conversations, 1)
	assert.Equal(t, "first", list.Conversations[0].Title)
}

func TestHTTPBackendClient_ErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/conversations/missing":
			http.Error(w, "conversation not found", http.StatusNotFound)
		case "/api/conversations/forbidden":
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, "")
	ctx := context.Background()

	_, err := client.GetConversation(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetConversation(ctx, "forbidden")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = client.GetConversation(ctx, "other")
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestHTTPBackendClient_RenameSendsEnvelope(t *testing.T) {
	passphrase := "correct horse battery staple"
	serverKey, err := crypto.DeriveKey(crypto.Fingerprint(passphrase))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/conversations/c1/title", r.URL.Path)

		var envelope models.Envelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		require.NotEmpty(t, envelope.EncryptedData)

		var req models.RenameRequest
		require.NoError(t, crypto.Open(serverKey, envelope.EncryptedData, &req))
		assert.Equal(t, "new title", req.Title)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, passphrase)
	require.NoError(t, client.RenameConversation(context.Background(), "c1", "new title"))
}

func TestHTTPBackendClient_DeleteNonStarredConversations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/conversations/nonstarred", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.APIResponse{Success: true, DeletedCount: 3})
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, "")

	deleted, err := client.DeleteNonStarredConversations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
}

func TestHTTPBackendClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.ModelInfo{
			{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"},
			{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro"},
		})
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, "")

	catalog, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "gemini-2.5-pro", catalog[1].ID)
}

func TestHTTPBackendClient_OpenChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/", r.URL.Path)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: {\"type\":\"done\"}\n\n")
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, "")

	body, err := client.OpenChatStream(context.Background(), models.ChatRequest{Message: "hello"}, "")
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\"done\"")
}

func TestHTTPBackendClient_OpenChatStreamNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "message is too long", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, "")

	_, err := client.OpenChatStream(context.Background(), models.ChatRequest{Message: "x"}, "")
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "message is too long")
}
