// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/validators"
	"github.com/cipherchat/cipherchat/models"
)

// startChat handles POST /api/chat/: it creates a conversation, announces
// its ID in a conversation_start frame and streams the reply.
func (h *Handler) startChat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	conversationID := uuid.NewString()
	now := time.Now().UTC()
	h.conversations.Create(models.Conversation{
		ConversationID: conversationID,
		Title:          validators.TitleFromMessage(req.Message),
		CreatedAt:      now,
		LastUpdated:    now,
	})

	h.streamReply(w, r, conversationID, req, true)
}

// continueChat handles POST /api/chat/{conversationID}: it appends a turn
// to an existing conversation and streams the reply.
func (h *Handler) continueChat(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if _, ok := h.conversations.Get(conversationID); !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	h.streamReply(w, r, conversationID, req, false)
}

func (h *Handler) decodeChatRequest(w http.ResponseWriter, r *http.Request) (models.ChatRequest, bool) {
	payload, ok := requestPayload(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing request payload")
		return models.ChatRequest{}, false
	}

	var req models.ChatRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat request")
		return models.ChatRequest{}, false
	}
	if err := validators.ValidateChatMessage(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return models.ChatRequest{}, false
	}
	return req, true
}

// streamReply runs one chat turn over SSE. With a key configured the
// content frames go out as encrypted_chunk and the terminal aggregate as
// encrypted_done with the plaintext done shape sealed inside the envelope;
// without a key the plaintext chunk/done frames are used. The
// conversation_start announcement is always plaintext: it exists so the
// client learns the conversation ID before any decryption happens.
func (h *Handler) streamReply(w http.ResponseWriter, r *http.Request, conversationID string, req models.ChatRequest, announce bool) {
	log := logger.FromRequest(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if announce {
		h.writeFrame(w, log, models.StreamEvent{
			Type:           models.EventConversationStart,
			ConversationID: conversationID,
		})
	}

	deltas, meta := h.responder.Respond(req)

	var text string
	for _, delta := range deltas {
		text += delta
		if err := h.writeDelta(w, log, delta); err != nil {
			log.Warn().Err(err).Msg("client disconnected mid-stream")
			return
		}
	}

	done := models.StreamEvent{
		Type:              models.EventDone,
		ConversationID:    conversationID,
		References:        meta.References,
		SearchQueries:     meta.SearchQueries,
		GroundingSupports: meta.GroundingSupports,
		URLContextURLs:    meta.URLContextURLs,
		Grounded:          meta.Grounded,
	}
	h.writeTerminal(w, log, done)

	now := time.Now().UTC()
	h.conversations.AppendMessages(conversationID,
		models.Message{
			MessageID: uuid.NewString(),
			Role:      models.RoleUser,
			Content:   req.Message,
			CreatedAt: now,
		},
		models.Message{
			MessageID:         uuid.NewString(),
			Role:              models.RoleAI,
			Content:           text,
			References:        meta.References,
			SearchQueries:     meta.SearchQueries,
			GroundingSupports: meta.GroundingSupports,
			URLContextURLs:    meta.URLContextURLs,
			Grounded:          meta.Grounded,
			CreatedAt:         now,
		},
	)
}

func (h *Handler) writeDelta(w http.ResponseWriter, log *logger.Logger, delta string) error {
	if h.key == nil {
		return h.writeFrame(w, log, models.StreamEvent{Type: models.EventChunk, Content: delta})
	}

	envelope, err := crypto.Seal(h.key, models.ChunkPayload{Content: delta})
	if err != nil {
		return err
	}
	return h.writeFrame(w, log, models.StreamEvent{Type: models.EventEncryptedChunk, EncryptedData: envelope})
}

func (h *Handler) writeTerminal(w http.ResponseWriter, log *logger.Logger, done models.StreamEvent) {
	if h.key == nil {
		_ = h.writeFrame(w, log, done)
		return
	}

	envelope, err := crypto.Seal(h.key, done)
	if err != nil {
		log.Error().Err(err).Msg("terminal frame encryption failed")
		_ = h.writeFrame(w, log, models.StreamEvent{Type: models.EventError, Error: "encryption failed"})
		return
	}
	_ = h.writeFrame(w, log, models.StreamEvent{Type: models.EventEncryptedDone, EncryptedData: envelope})
}

func (h *Handler) writeFrame(w http.ResponseWriter, log *logger.Logger, event models.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	log.Debug().Str("frame", string(event.Type)).Msg("frame sent")
	return nil
}
