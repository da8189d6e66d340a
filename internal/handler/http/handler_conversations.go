package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cipherchat/cipherchat/internal/validators"
	"github.com/cipherchat/cipherchat/models"
)

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listConversations handles GET /api/conversations/ with limit, offset and
// starred query parameters.
func (h *Handler) listConversations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 20
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}

	var starred *bool
	if raw := query.Get("starred"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid starred filter")
			return
		}
		starred = &v
	}

	items, hasMore := h.conversations.List(limit, offset, starred)
	if items == nil {
		items = []models.ConversationSummary{}
	}
	writeJSON(w, http.StatusOK, models.ConversationList{
		Conversations: items,
		Total:         len(items),
		HasMore:       hasMore,
	})
}

func (h *Handler) getConversation(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.conversations.Get(chi.URLParam(r, "conversationID"))
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (h *Handler) renameConversation(w http.ResponseWriter, r *http.Request) {
	payload, ok := requestPayload(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing request payload")
		return
	}

	var req models.RenameRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid rename request")
		return
	}
	if err := validators.ValidateConversationTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "conversationID")
	if !h.conversations.Rename(id, req.Title) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, models.APIResponse{Success: true, ConversationID: id, Message: "title updated"})
}

func (h *Handler) starConversation(w http.ResponseWriter, r *http.Request) {
	payload, ok := requestPayload(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing request payload")
		return
	}

	var req models.StarRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid star request")
		return
	}

	id := chi.URLParam(r, "conversationID")
	if !h.conversations.SetStarred(id, req.Starred) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, models.APIResponse{Success: true, ConversationID: id, Message: "star updated"})
}

func (h *Handler) deleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationID")
	if !h.conversations.Delete(id) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, models.APIResponse{Success: true, ConversationID: id, Message: "conversation deleted"})
}

// bulkDeleteNonStarred handles DELETE /api/conversations/nonstarred,
// removing every conversation that is not starred.
func (h *Handler) bulkDeleteNonStarred(w http.ResponseWriter, _ *http.Request) {
	deleted := h.conversations.DeleteNonStarred()
	writeJSON(w, http.StatusOK, models.APIResponse{
		Success:      true,
		DeletedCount: deleted,
		Message:      fmt.Sprintf("deleted %d non-starred conversations", deleted),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
