package models

// EventType discriminates the frames of a chat response stream.
type EventType string

// Stream frame types emitted by the backend. Encrypted variants carry an
// Envelope payload instead of plaintext fields and are normalized to their
// plaintext counterpart before reaching the application layer.
const (
	EventConversationStart EventType = "conversation_start"
	EventChunk             EventType = "chunk"
	EventEncryptedChunk    EventType = "encrypted_chunk"
	EventDone              EventType = "done"
	EventEncryptedDone     EventType = "encrypted_done"
	EventError             EventType = "error"
)

// StreamEvent is one demultiplexed frame of a chat response stream.
//
// It is a tagged union over Type: only the fields relevant to the frame
// type are populated. A decrypted encrypted_done payload unmarshals
// directly into this struct because the backend embeds the plaintext
// "done" shape (including the type tag) inside the envelope.
type StreamEvent struct {
	Type EventType `json:"type"`

	// Content is the incremental text delta of a chunk frame.
	Content string `json:"content,omitempty"`

	// EncryptedData is the envelope payload of an encrypted_chunk or
	// encrypted_done frame.
	EncryptedData string `json:"encrypted_data,omitempty"`

	// Terminal aggregate fields, present on done frames. The grounding
	// metadata is opaque to the encryption core and passed through to the
	// application after decryption.
	ConversationID    string             `json:"conversation_id,omitempty"`
	References        []Reference        `json:"references,omitempty"`
	SearchQueries     []string           `json:"search_queries,omitempty"`
	GroundingSupports []GroundingSupport `json:"grounding_supports,omitempty"`
	URLContextURLs    []string           `json:"url_context_urls,omitempty"`
	Grounded          bool               `json:"grounded,omitempty"`

	// Error is the server-side failure message of an error frame.
	Error string `json:"error,omitempty"`
}

// ChunkPayload is the decrypted content of an encrypted_chunk frame.
type ChunkPayload struct {
	Content string `json:"content"`
}
