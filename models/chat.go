package models

// ChatRequest is the payload of a chat turn sent to the backend. On the
// wire it travels inside an Envelope whenever an encryption key is
// configured.
type ChatRequest struct {
	// Message is the user's prompt. 1 to 4000 characters.
	Message string `json:"message"`

	// EnableSearch requests search grounding for this turn. Grounded
	// responses carry references and supports on the terminal frame.
	EnableSearch bool `json:"enable_search"`

	// URLContext optionally supplies URLs whose content should inform the
	// response.
	URLContext []string `json:"url_context,omitempty"`

	// Model selects the generation model for this turn.
	Model string `json:"model,omitempty"`
}

// ModelInfo describes one generation model offered by the backend.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Reference is one grounding source attached to a grounded response.
type Reference struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Domain  string `json:"domain"`
	Snippet string `json:"snippet,omitempty"`
}

// GroundingSupport ties a span of the response text to the references that
// support it.
type GroundingSupport struct {
	StartIndex       int    `json:"start_index"`
	EndIndex         int    `json:"end_index"`
	Text             string `json:"text"`
	ReferenceIndices []int  `json:"reference_indices"`
}
