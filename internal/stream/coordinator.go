// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/models"
)

// State is the coordinator's position in the stream lifecycle.
type State int

const (
	StateOpen State = iota
	StateStreaming
	StateDone
	StateErrored
	StateKeyRejected
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	case StateKeyRejected:
		return "key_rejected"
	default:
		return "unknown"
	}
}

// Callbacks receives the normalized events of one stream as they arrive.
// Any field may be nil. Callbacks run synchronously on the coordinator's
// goroutine, in frame arrival order.
type Callbacks struct {
	// OnStart fires on the conversation_start frame of a new chat with
	// the freshly assigned conversation ID.
	OnStart func(conversationID string)
	// OnDelta fires for every text delta, decrypted where necessary.
	OnDelta func(text string)
	// OnDone fires once with the terminal aggregate, always tagged
	// "done" regardless of how it arrived on the wire.
	OnDone func(final models.StreamEvent)
}

// Result is the outcome of a completed stream.
type Result struct {
	// Text is the accumulated assistant text of the turn.
	Text string
	// Final is the terminal aggregate event, normalized to the done
	// shape.
	Final models.StreamEvent
}

// Coordinator consumes one chat response stream, decrypting encrypted
// frames in place so the application layer only ever sees plaintext
// event shapes.
//
// Exactly one terminal transition occurs per stream: DONE on a terminal
// frame, KEY_REJECTED when an encrypted frame fails to decrypt, ERRORED
// on transport failure, server error frame, or cancellation. The
// transport is released on every exit path.
type Coordinator struct {
	codec *crypto.Codec
	log   *logger.Logger
	state State
}

// NewCoordinator constructs a Coordinator using codec for encrypted
// frames.
func NewCoordinator(codec *crypto.Codec, log *logger.Logger) *Coordinator {
	return &Coordinator{codec: codec, log: log, state: StateOpen}
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State {
	return c.state
}

// Run consumes body until a terminal transition and returns the
// accumulated result. body is closed before Run returns, on success and
// failure alike. Frames are processed strictly in arrival order; no
// decrypt is attempted after cancellation is observed.
func (c *Coordinator) Run(ctx context.Context, body io.ReadCloser, cb Callbacks) (Result, error) {
	defer func() {
		if err := body.Close(); err != nil {
			c.log.Debug().Err(err).Msg("close stream body")
		}
	}()

	reader := NewFrameReader(body)
	var buf strings.Builder

	for {
		if err := ctx.Err(); err != nil {
			c.state = StateErrored
			return Result{}, fmt.Errorf("%w: %v", ErrStreamAborted, err)
		}

		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			c.state = StateErrored
			return Result{}, fmt.Errorf("%w: stream ended without terminal frame", ErrStreamAborted)
		}
		if err != nil {
			c.state = StateErrored
			return Result{}, err
		}

		switch event.Type {
		case models.EventConversationStart:
			c.state = StateStreaming
			if cb.OnStart != nil {
				cb.OnStart(event.ConversationID)
			}

		case models.EventChunk:
			c.state = StateStreaming
			buf.WriteString(event.Content)
			if cb.OnDelta != nil {
				cb.OnDelta(event.Content)
			}

		case models.EventEncryptedChunk:
			c.state = StateStreaming
			var delta models.ChunkPayload
			if err := c.codec.Decrypt(event.EncryptedData, &delta); err != nil {
				return Result{}, c.rejectKey(&buf, err)
			}
			buf.WriteString(delta.Content)
			if cb.OnDelta != nil {
				cb.OnDelta(delta.Content)
			}

		case models.EventDone:
			c.state = StateDone
			if cb.OnDone != nil {
				cb.OnDone(event)
			}
			return Result{Text: buf.String(), Final: event}, nil

		case models.EventEncryptedDone:
			var final models.StreamEvent
			if err := c.codec.Decrypt(event.EncryptedData, &final); err != nil {
				return Result{}, c.rejectKey(&buf, err)
			}
			// Normalize to the plaintext terminal shape; the
			// encrypted_done tag must not reach the application layer.
			final.Type = models.EventDone
			final.EncryptedData = ""

			c.state = StateDone
			if cb.OnDone != nil {
				cb.OnDone(final)
			}
			return Result{Text: buf.String(), Final: final}, nil

		case models.EventError:
			c.state = StateErrored
			return Result{}, fmt.Errorf("%w: server error: %s", ErrStreamAborted, event.Error)

		default:
			c.log.Warn().Str("type", string(event.Type)).Msg("skipping frame of unknown type")
		}
	}
}

// rejectKey performs the key-rejected transition: the partial turn is
// discarded and the caller must obtain new key material. This is a hard
// stop, not a retry; a wrong key fails identically without new input.
func (c *Coordinator) rejectKey(buf *strings.Builder, cause error) error {
	c.state = StateKeyRejected
	buf.Reset()
	c.log.Warn().Err(cause).Msg("stream frame failed to decrypt, key rejected")
	return fmt.Errorf("%w: %v", ErrKeyRejected, cause)
}
