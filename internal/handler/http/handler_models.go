package http

import (
	"net/http"

	"github.com/cipherchat/cipherchat/models"
)

// availableModels is the static catalog served by the development
// server. The production backend derives its list from the provider API;
// this mirrors its fallback set.
var availableModels = []models.ModelInfo{
	{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Description: "Fast and versatile model for most tasks"},
	{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro", Description: "The most powerful model for demanding tasks"},
	{ID: "gemini-2.5-flash-lite", Name: "Gemini 2.5 Flash Lite", Description: "Best performance for complex reasoning tasks"},
}

// listModels handles GET /api/models.
func (h *Handler) listModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, availableModels)
}
