package llm

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rrens/docchat/internal/domain"
)

// DescribeError converts a transport failure into a CompletionError. The
// HTTP status decides the kind when known; otherwise the message is
// searched for the status code.
func DescribeError(err error) *domain.CompletionError {
	msg := err.Error()
	if msg == "" {
		msg = "Unknown error"
	}

	code := 0
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		code = statusErr.Code
	}

	switch {
	case code == http.StatusUnauthorized || (code == 0 && strings.Contains(msg, "401")):
		return &domain.CompletionError{Kind: domain.ErrAuthenticationFailed, Message: domain.ErrAuthenticationFailed.Error()}
	case code == http.StatusNotFound || (code == 0 && strings.Contains(msg, "404")):
		return &domain.CompletionError{Kind: domain.ErrEndpointNotFound, Message: domain.ErrEndpointNotFound.Error()}
	default:
		return &domain.CompletionError{Kind: domain.ErrTransport, Message: msg}
	}
}
