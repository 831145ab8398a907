package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/llm"
	"github.com/Rrens/docchat/internal/llm/openai"
)

// mockTransport mocks llm.Transport
type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Name() string { return "mock" }

func (m *mockTransport) Complete(ctx context.Context, endpoint string, settings domain.AppSettings, messages []llm.Message) (string, error) {
	args := m.Called(ctx, endpoint, settings, messages)
	return args.String(0), args.Error(1)
}

func TestChatService_DocumentSummaryUnauthorized(t *testing.T) {
	ctx := context.Background()

	var lastUserTurn string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Messages) > 0 {
			lastUserTurn = body.Messages[len(body.Messages)-1].Content
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	f := newFixture(t, llm.NewRouter(openai.NewClient(5*time.Second, 0.7)))
	require.NoError(t, f.settings.Save(ctx, domain.AppSettings{
		Provider:  domain.ProviderOpenAI,
		APIKey:    "sk-wrong",
		ModelName: "gpt-4o",
		BaseURL:   srv.URL + "/v1",
	}))

	f.extractor.On("Extract", ctx, "paper.docx", mock.Anything).Return("Lorem ipsum...", nil)
	_, err := f.svc.Attach(ctx, "paper.docx", []byte("docx bytes"))
	require.NoError(t, err)

	msg, err := f.svc.SendComposer(ctx, f.sessions.ActiveID(), "Summarize this")
	require.NoError(t, err)

	assert.Equal(t, "[Document Content Follows]\nLorem ipsum...\n\n[User Query]\nSummarize this", lastUserTurn)
	assert.True(t, msg.IsError)
	assert.Contains(t, msg.Text, "Authentication failed (401)")

	sess := f.active(t)
	last := sess.Messages[len(sess.Messages)-1]
	assert.True(t, last.IsError)
	assert.Equal(t, msg.ID, last.ID)
}
