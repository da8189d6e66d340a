package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. The encryption middleware wraps only the
// protected API groups; health stays outside so probes work without a
// key.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/health", h.health)

	router.Route("/api", func(r chi.Router) {
		r.Use(h.withEncryption)

		r.Post("/chat/", h.startChat)
		r.Post("/chat/{conversationID}", h.continueChat)

		r.Get("/models", h.listModels)

		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", h.listConversations)
			r.Delete("/nonstarred", h.bulkDeleteNonStarred)
			r.Get("/{conversationID}", h.getConversation)
			r.Patch("/{conversationID}/title", h.renameConversation)
			r.Post("/{conversationID}/star", h.starConversation)
			r.Delete("/{conversationID}", h.deleteConversation)
		})
	})

	return router
}
