package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rrens/docchat/internal/api/response"
	"github.com/Rrens/docchat/internal/document"
	"github.com/Rrens/docchat/internal/service"
)

// ChatHandler handles message and composer endpoints
type ChatHandler struct {
	chat           *service.ChatService
	maxUploadBytes int64
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService, maxUploadBytes int64) *ChatHandler {
	return &ChatHandler{chat: chat, maxUploadBytes: maxUploadBytes}
}

type sendInput struct {
	Text string `json:"text"`
}

// Send sends a message with the pending attachment. A failed completion is
// still a 200: the reply is an error turn.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input sendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, response.CodeInvalidBody, "invalid request body")
		return
	}

	id := chi.URLParam(r, "sessionID")
	reply, err := h.chat.SendComposer(r.Context(), id, input.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.chat.Session(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"reply":   reply,
		"session": session,
	})
}

// GetComposer returns the unsent draft and pending attachment
func (h *ChatHandler) GetComposer(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.chat.Composer())
}

type draftInput struct {
	Text string `json:"text"`
}

// SetDraft stores the unsent text
func (h *ChatHandler) SetDraft(w http.ResponseWriter, r *http.Request) {
	var input draftInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, response.CodeInvalidBody, "invalid request body")
		return
	}

	h.chat.SetDraft(input.Text)
	response.OK(w, h.chat.Composer())
}

// UploadAttachment extracts an uploaded Word document into the composer
func (h *ChatHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(w, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge, "file is too large")
			return
		}
		response.BadRequest(w, response.CodeInvalidBody, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, response.CodeInvalidBody, "no file uploaded")
		return
	}
	defer file.Close()

	// reject before reading the content
	if err := document.CheckExtension(header.Filename); err != nil {
		writeError(w, r, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w)
		return
	}

	attachment, err := h.chat.Attach(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"name":  attachment.Name,
		"type":  attachment.Kind,
		"chars": len([]rune(attachment.Content)),
		"size":  header.Size,
	})
}

// ClearAttachment drops the pending attachment
func (h *ChatHandler) ClearAttachment(w http.ResponseWriter, r *http.Request) {
	h.chat.ClearAttachment()
	response.NoContent(w)
}
