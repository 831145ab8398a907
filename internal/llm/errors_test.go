package llm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/llm"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind error
		wantText string
	}{
		{
			name:     "status 401",
			err:      &llm.StatusError{Code: 401, Err: errors.New("invalid key")},
			wantKind: domain.ErrAuthenticationFailed,
			wantText: "request failed: Authentication failed (401). Please check your API Key.",
		},
		{
			name:     "status 404",
			err:      fmt.Errorf("call: %w", &llm.StatusError{Code: 404, Err: errors.New("no such model")}),
			wantKind: domain.ErrEndpointNotFound,
			wantText: "request failed: Model or Endpoint not found (404). Check your Model Name and Base URL.",
		},
		{
			name:     "401 in message only",
			err:      errors.New("server said 401 Unauthorized"),
			wantKind: domain.ErrAuthenticationFailed,
			wantText: "request failed: Authentication failed (401). Please check your API Key.",
		},
		{
			name:     "404 in message only",
			err:      errors.New("got 404"),
			wantKind: domain.ErrEndpointNotFound,
			wantText: "request failed: Model or Endpoint not found (404). Check your Model Name and Base URL.",
		},
		{
			name:     "other status keeps message",
			err:      &llm.StatusError{Code: 500, Err: errors.New("internal error")},
			wantKind: domain.ErrTransport,
			wantText: "request failed: internal error",
		},
		{
			name:     "network failure",
			err:      errors.New("dial tcp: connection refused"),
			wantKind: domain.ErrTransport,
			wantText: "request failed: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := llm.DescribeError(tt.err)
			assert.ErrorIs(t, got, tt.wantKind)
			assert.Equal(t, tt.wantText, got.Error())
		})
	}
}
