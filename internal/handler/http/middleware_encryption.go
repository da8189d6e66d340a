// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/models"
)

type ctxKey int

const payloadKey ctxKey = iota

// withEncryption enforces the envelope scheme on protected endpoints:
// mutating requests must arrive as {"encrypted_data": ...} and are
// decrypted before dispatch; successful non-streaming responses are
// encrypted on the way out. With no key configured the middleware passes
// plaintext JSON through unchanged, mirroring the client's development
// fallback.
func (h *Handler) withEncryption(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		switch r.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut:
			payload, ok := h.readRequestPayload(w, r, log)
			if !ok {
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), payloadKey, payload))
		}

		if h.key == nil {
			next.ServeHTTP(w, r)
			return
		}

		ew := &encryptingResponseWriter{ResponseWriter: w, key: h.key, log: log}
		next.ServeHTTP(ew, r)
		ew.finish()
	})
}

// readRequestPayload returns the plaintext request body: decrypted when
// a key is configured, raw otherwise. On failure it writes the error
// response itself and returns ok=false.
func (h *Handler) readRequestPayload(w http.ResponseWriter, r *http.Request, log *logger.Logger) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "request body required")
		return nil, false
	}

	if h.key == nil {
		return body, true
	}

	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON in request body")
		return nil, false
	}
	if envelope.EncryptedData == "" {
		writeError(w, http.StatusBadRequest, "payload must contain 'encrypted_data' field")
		return nil, false
	}

	var payload json.RawMessage
	if err := crypto.Open(h.key, envelope.EncryptedData, &payload); err != nil {
		log.Warn().Err(err).Msg("request decryption failed")
		writeError(w, http.StatusBadRequest, "decryption failed")
		return nil, false
	}
	return payload, true
}

// requestPayload pulls the plaintext body stored by withEncryption.
func requestPayload(r *http.Request) ([]byte, bool) {
	payload, ok := r.Context().Value(payloadKey).([]byte)
	return payload, ok
}

// encryptingResponseWriter buffers a JSON response so it can be
// re-emitted as an envelope once the handler returns. Streaming
// responses (text/event-stream) bypass buffering: chat frames carry
// their own per-frame encryption.
type encryptingResponseWriter struct {
	http.ResponseWriter
	key []byte
	log *logger.Logger

	status      int
	passthrough bool
	decided     bool
	buf         bytes.Buffer
}

func (w *encryptingResponseWriter) WriteHeader(status int) {
	w.decide()
	w.status = status
	if w.passthrough {
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *encryptingResponseWriter) Write(b []byte) (int, error) {
	w.decide()
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.passthrough {
		return w.ResponseWriter.Write(b)
	}
	return w.buf.Write(b)
}

func (w *encryptingResponseWriter) Flush() {
	if w.passthrough {
		if f, ok := w.ResponseWriter.(http.Flusher); ok {
			f.Flush()
		}
	}
}

// decide fixes the passthrough mode from the Content-Type the handler
// set before its first write.
func (w *encryptingResponseWriter) decide() {
	if w.decided {
		return
	}
	w.decided = true
	w.passthrough = strings.Contains(w.Header().Get("Content-Type"), "text/event-stream")
}

// finish flushes the buffered response: successful JSON bodies are
// encrypted into the envelope shape, everything else is written as-is.
func (w *encryptingResponseWriter) finish() {
	if w.passthrough || w.status == 0 {
		return
	}

	if w.status != http.StatusOK && w.status != http.StatusCreated {
		w.ResponseWriter.WriteHeader(w.status)
		_, _ = w.ResponseWriter.Write(w.buf.Bytes())
		return
	}

	var payload json.RawMessage
	if err := json.Unmarshal(w.buf.Bytes(), &payload); err != nil {
		w.log.Error().Err(err).Msg("response is not valid JSON, cannot encrypt")
		writeError(w.ResponseWriter, http.StatusInternalServerError, "failed to encrypt response")
		return
	}

	envelope, err := crypto.Seal(w.key, payload)
	if err != nil {
		w.log.Error().Err(err).Msg("response encryption failed")
		writeError(w.ResponseWriter, http.StatusInternalServerError, "failed to encrypt response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.ResponseWriter.WriteHeader(w.status)
	_ = json.NewEncoder(w.ResponseWriter).Encode(models.Envelope{EncryptedData: envelope})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIResponse{Success: false, Error: message})
}
