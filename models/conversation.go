package models

import "time"

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleAI   MessageRole = "ai"
)

// Message is a single turn within a conversation.
type Message struct {
	MessageID string      `json:"message_id,omitempty"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`

	// Grounding metadata recorded for AI messages when search was enabled.
	References        []Reference        `json:"references,omitempty"`
	SearchQueries     []string           `json:"search_queries,omitempty"`
	GroundingSupports []GroundingSupport `json:"grounding_supports,omitempty"`
	URLContextURLs    []string           `json:"url_context_urls,omitempty"`
	Grounded          bool               `json:"grounded,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Conversation is a full chat history with metadata.
type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title,omitempty"`
	Messages       []Message `json:"messages"`
	CreatedAt      time.Time `json:"created_at"`
	LastUpdated    time.Time `json:"last_updated"`
	Starred        bool      `json:"starred"`
}

// ConversationSummary is the lightweight listing view of a conversation.
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	LastUpdated    time.Time `json:"last_updated"`
	Starred        bool      `json:"starred"`
	MessageCount   int       `json:"message_count"`
	Preview        string    `json:"preview,omitempty"`
}

// ConversationList is the paginated response of the listing endpoint.
type ConversationList struct {
	Conversations []ConversationSummary `json:"conversations"`
	Total         int                   `json:"total"`
	HasMore       bool                  `json:"has_more"`
}

// RenameRequest is the payload of the rename-title endpoint.
type RenameRequest struct {
	Title string `json:"title"`
}

// StarRequest is the payload of the star/unstar endpoint.
type StarRequest struct {
	Starred bool `json:"starred"`
}

// APIResponse is the generic acknowledgement shape returned by mutating
// conversation endpoints.
type APIResponse struct {
	Success        bool   `json:"success"`
	ConversationID string `json:"conversation_id,omitempty"`
	DeletedCount   int    `json:"deleted_count,omitempty"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
}
