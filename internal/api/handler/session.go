package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/docchat/internal/api/response"
	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/service"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	chat *service.ChatService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(chat *service.ChatService) *SessionHandler {
	return &SessionHandler{chat: chat}
}

type sessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	UpdatedAt    time.Time `json:"updatedAt"`
	MessageCount int       `json:"messageCount"`
	Active       bool      `json:"active"`
}

type sessionDetail struct {
	domain.ChatSession
	Active bool `json:"active"`
}

// List returns all sessions, most recently updated first
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	activeID := h.chat.ActiveSessionID()
	sessions := h.chat.Sessions()

	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionSummary{
			ID:           s.ID,
			Title:        s.Title,
			UpdatedAt:    s.UpdatedAt,
			MessageCount: len(s.Messages),
			Active:       s.ID == activeID,
		})
	}

	response.OK(w, map[string]any{
		"sessions":  out,
		"active_id": activeID,
		"loading":   h.chat.IsLoading(),
	})
}

// Create starts a new session and selects it
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := h.chat.CreateSession(r.Context())
	response.Created(w, sessionDetail{ChatSession: session, Active: true})
}

// Get returns one session with its messages
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	session, err := h.chat.Session(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, sessionDetail{ChatSession: session, Active: id == h.chat.ActiveSessionID()})
}

// Delete removes a session
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, map[string]string{
		"active_id": h.chat.ActiveSessionID(),
	})
}

// Select makes a session active
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := h.chat.SelectSession(id); err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, map[string]string{
		"active_id": id,
	})
}
