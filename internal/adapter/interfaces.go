package adapter

import (
	"context"
	"io"

	"github.com/cipherchat/cipherchat/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_client_mock.go -package=mock

// ConversationQuery holds the paging and filter parameters of the
// conversation listing endpoint.
type ConversationQuery struct {
	// Limit is the page size, 1..100. Zero means the server default.
	Limit int
	// Offset is the number of conversations to skip.
	Offset int
	// Starred filters by star state when non-nil.
	Starred *bool
}

// BackendClient is the client-side gateway to the chat backend. All
// request bodies and response bodies pass through the envelope transport:
// encrypted when a key is configured, raw JSON otherwise.
type BackendClient interface {
	// SetToken installs the bearer token used on subsequent requests.
	SetToken(token string)

	// Token returns the currently installed bearer token.
	Token() string

	// TokenValid reports whether the installed token parses as a JWT
	// whose expiry has not passed. The token is not verified
	// cryptographically; issuance and refresh live outside this client.
	TokenValid() bool

	// ListConversations returns a page of conversation summaries.
	ListConversations(ctx context.Context, q ConversationQuery) (models.ConversationList, error)

	// GetConversation returns a full conversation with its messages.
	GetConversation(ctx context.Context, id string) (models.Conversation, error)

	// RenameConversation sets a conversation title.
	RenameConversation(ctx context.Context, id, title string) error

	// StarConversation sets the star flag of a conversation.
	StarConversation(ctx context.Context, id string, starred bool) error

	// DeleteConversation removes a conversation.
	DeleteConversation(ctx context.Context, id string) error

	// DeleteNonStarredConversations removes every conversation that is
	// not starred and returns the number removed.
	DeleteNonStarredConversations(ctx context.Context) (int, error)

	// ListModels returns the generation models offered by the backend.
	ListModels(ctx context.Context) ([]models.ModelInfo, error)

	// OpenChatStream posts a chat turn and returns the raw event-stream
	// body. conversationID is empty for a new conversation. The caller
	// owns the returned reader and must close it on every path.
	OpenChatStream(ctx context.Context, req models.ChatRequest, conversationID string) (io.ReadCloser, error)
}
