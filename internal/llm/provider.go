package llm

import (
	"context"

	"github.com/Rrens/docchat/internal/domain"
)

// Chat roles understood by every transport
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// NoResponse is returned as the reply when the endpoint produced no content
const NoResponse = "No response generated."

// Request contains everything needed for one completion call. History is
// the session before the new turn; Text and Document describe the new turn.
type Request struct {
	History  []domain.Message
	Text     string
	Document string
	Settings domain.AppSettings
}

// Message is one entry of the payload sent to a transport
type Message struct {
	Role    string
	Content string
}

// Transport performs a single chat completion against a remote endpoint
type Transport interface {
	// Name returns the transport identifier
	Name() string

	// Complete sends messages and returns the first reply, or "" when the
	// endpoint returned no choices.
	Complete(ctx context.Context, endpoint string, settings domain.AppSettings, messages []Message) (string, error)
}

// StatusError carries the HTTP status of a failed completion call
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
