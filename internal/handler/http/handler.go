// Package http serves the development counterpart of the chat backend:
// the same wire contract as production (envelope encryption, SSE chat
// streaming, conversation endpoints) over an in-memory store and a
// canned responder. It exists for local development and integration
// tests of the client's encryption core.
package http

import (
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/store"
)

// Handler carries the dependencies of the development server endpoints.
type Handler struct {
	conversations store.ConversationStore
	responder     Responder

	// key is the AES-256 key derived from the configured key hash; nil
	// selects plaintext development mode.
	key []byte

	logger *logger.Logger
}

// NewHandler constructs the endpoint handler. key may be nil to disable
// encryption.
func NewHandler(conversations store.ConversationStore, responder Responder, key []byte, logger *logger.Logger) *Handler {
	logger.Info().Bool("encryption", key != nil).Msg("http handler created")
	return &Handler{
		conversations: conversations,
		responder:     responder,
		key:           key,
		logger:        logger,
	}
}
