package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Rrens/docchat/internal/api/handler"
	customMiddleware "github.com/Rrens/docchat/internal/api/middleware"
	"github.com/Rrens/docchat/internal/config"
	"github.com/Rrens/docchat/internal/llm"
	"github.com/Rrens/docchat/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, chat *service.ChatService, llmRouter *llm.Router, storage handler.Pinger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(storage, chat, llmRouter)
	sessionHandler := handler.NewSessionHandler(chat)
	chatHandler := handler.NewChatHandler(chat, cfg.Upload.MaxBytes)
	settingsHandler := handler.NewSettingsHandler(chat)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Health)
		r.Get("/ready", healthHandler.Ready)

		r.Get("/providers", healthHandler.Providers)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Post("/", sessionHandler.Create)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.Delete)
				r.Post("/select", sessionHandler.Select)
				r.Post("/messages", chatHandler.Send)
			})
		})

		r.Route("/composer", func(r chi.Router) {
			r.Get("/", chatHandler.GetComposer)
			r.Put("/draft", chatHandler.SetDraft)
			r.Post("/attachment", chatHandler.UploadAttachment)
			r.Delete("/attachment", chatHandler.ClearAttachment)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Update)
			r.Post("/provider", settingsHandler.SwitchProvider)
		})
	})

	return r
}
