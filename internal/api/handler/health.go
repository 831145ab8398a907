package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/api/response"
	"github.com/Rrens/docchat/internal/llm"
	"github.com/Rrens/docchat/internal/service"
)

// Pinger reports whether local storage is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness, readiness and the provider catalogue
type HealthHandler struct {
	storage Pinger
	chat    *service.ChatService
	llm     *llm.Router
}

func NewHealthHandler(storage Pinger, chat *service.ChatService, router *llm.Router) *HealthHandler {
	return &HealthHandler{storage: storage, chat: chat, llm: router}
}

// Health reports liveness and whether a send is in flight
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"status":  "ok",
		"sending": h.chat.IsLoading(),
	})
}

// Ready checks that local storage answers
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Storage ping failed")
		response.Fail(w, http.StatusServiceUnavailable, response.CodeNotReady, "storage not ready")
		return
	}
	response.OK(w, map[string]string{"status": "ready"})
}

// Providers lists the supported providers with their defaults and marks
// the one currently configured
func (h *HealthHandler) Providers(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"providers": h.llm.ProvidersInfo(),
		"active":    h.chat.Settings().Provider,
	})
}
