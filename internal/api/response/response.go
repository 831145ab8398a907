package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Error codes returned to the view layer
const (
	CodeInvalidBody       = "invalid_body"
	CodeValidation        = "validation_failed"
	CodeSessionNotFound   = "session_not_found"
	CodeNothingToSend     = "nothing_to_send"
	CodeSendInFlight      = "send_in_flight"
	CodeUnsupportedFormat = "unsupported_format"
	CodeParseFailure      = "parse_failure"
	CodeFileTooLarge      = "file_too_large"
	CodeCanceled          = "canceled"
	CodeNotReady          = "not_ready"
	CodeInternal          = "internal"
)

// Response is the envelope of every API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request. Message is either a string or a
// field to message map for validation failures.
type ErrorBody struct {
	Code    string `json:"code"`
	Message any    `json:"message"`
}

// JSON sends a successful response carrying data
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{Success: true, Data: data})
}

// Fail sends an error response
func Fail(w http.ResponseWriter, status int, code string, message any) {
	write(w, status, Response{Error: &ErrorBody{Code: code, Message: message}})
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warn().Err(err).Int("status", status).Msg("Failed to write response")
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest sends a 400 with the given code
func BadRequest(w http.ResponseWriter, code string, message any) {
	Fail(w, http.StatusBadRequest, code, message)
}

// InternalError sends a 500. Details stay in the log.
func InternalError(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
