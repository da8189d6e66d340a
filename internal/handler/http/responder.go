package http

import (
	"fmt"
	"strings"

	"github.com/cipherchat/cipherchat/models"
)

// Responder produces the assistant reply for a chat turn. The development
// server has no model behind it, so the default implementation echoes the
// prompt in small pieces to exercise the streaming path.
type Responder interface {
	// Respond returns the reply broken into stream deltas plus the grounding
	// metadata for the terminal frame.
	Respond(req models.ChatRequest) (deltas []string, meta ResponseMeta)
}

// ResponseMeta is the grounding metadata attached to a terminal frame.
type ResponseMeta struct {
	References        []models.Reference
	SearchQueries     []string
	GroundingSupports []models.GroundingSupport
	URLContextURLs    []string
	Grounded          bool
}

type echoResponder struct{}

// NewEchoResponder returns a [Responder] that repeats the user's message.
// When search is requested it fabricates a reference so clients can render
// the grounding path.
func NewEchoResponder() Responder {
	return echoResponder{}
}

func (echoResponder) Respond(req models.ChatRequest) ([]string, ResponseMeta) {
	text := fmt.Sprintf("You said: %s", req.Message)

	var meta ResponseMeta
	if req.EnableSearch {
		meta.Grounded = true
		meta.SearchQueries = []string{req.Message}
		meta.References = []models.Reference{{
			ID:     1,
			Title:  "Example source",
			URL:    "https://example.com/source",
			Domain: "example.com",
		}}
		meta.GroundingSupports = []models.GroundingSupport{{
			StartIndex:       0,
			EndIndex:         len(text),
			Text:             text,
			ReferenceIndices: []int{0},
		}}
	}
	meta.URLContextURLs = req.URLContext

	return splitDeltas(text, 16), meta
}

// splitDeltas cuts text into chunks of at most size bytes, never splitting
// inside a rune.
func splitDeltas(text string, size int) []string {
	var deltas []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if b.Len() >= size {
			deltas = append(deltas, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		deltas = append(deltas, b.String())
	}
	return deltas
}
