package service

import (
	"context"

	"github.com/cipherchat/cipherchat/internal/stream"
	"github.com/cipherchat/cipherchat/models"
)

// KeyService manages the user's encryption key material.
type KeyService interface {
	// Setup hashes the passphrase and persists the resulting
	// fingerprint, enabling encryption for all subsequent operations.
	Setup(passphrase string) error

	// Remove deletes the persisted fingerprint; idempotent.
	Remove() error

	// Available reports whether encryption is currently configured.
	Available() bool

	// AwaitSetup blocks until a key becomes available or ctx is
	// cancelled.
	AwaitSetup(ctx context.Context) error

	// SelfTest round-trips a probe payload through the codec to verify
	// the configured key operates. A failed probe never clears the key.
	SelfTest() error
}

// ChatOptions tunes a single chat turn.
type ChatOptions struct {
	// EnableSearch requests search grounding for this turn.
	EnableSearch bool
	// Model overrides the default generation model when non-empty.
	Model string
}

// ChatService runs chat turns against the backend.
type ChatService interface {
	// Send posts message to the backend, consumes the response stream
	// through the decrypt coordinator, and returns the accumulated
	// result. conversationID is empty for a new conversation. Deltas
	// and the terminal event are delivered through cb as they arrive.
	// A stream.ErrKeyRejected return means the user must re-enter key
	// material before retrying.
	Send(ctx context.Context, conversationID, message string, opts ChatOptions, cb stream.Callbacks) (stream.Result, error)

	// Models returns the generation models offered by the backend.
	Models(ctx context.Context) ([]models.ModelInfo, error)
}

// ConversationService manages the user's conversation history.
type ConversationService interface {
	// List returns a page of conversation summaries.
	List(ctx context.Context, limit, offset int, starred *bool) (models.ConversationList, error)

	// Get returns a full conversation with all messages.
	Get(ctx context.Context, id string) (models.Conversation, error)

	// Rename sets a conversation title after validating it.
	Rename(ctx context.Context, id, title string) error

	// Star sets the star flag of a conversation.
	Star(ctx context.Context, id string, starred bool) error

	// Delete removes a conversation.
	Delete(ctx context.Context, id string) error

	// DeleteNonStarred removes every conversation that is not starred
	// and returns the number removed.
	DeleteNonStarred(ctx context.Context) (int, error)
}
