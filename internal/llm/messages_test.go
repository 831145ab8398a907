package llm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/llm"
)

func TestBuildMessages_Greeting(t *testing.T) {
	greeting := domain.NewMessage(domain.RoleAssistant, domain.GreetingText, time.Now())

	got := llm.BuildMessages(llm.Request{
		History: []domain.Message{greeting},
		Text:    "Hello",
	})

	assert.Equal(t, []llm.Message{
		{Role: llm.RoleSystem, Content: llm.SystemPrompt},
		{Role: llm.RoleAssistant, Content: domain.GreetingText},
		{Role: llm.RoleUser, Content: "Hello"},
	}, got)
}

func TestBuildMessages_Document(t *testing.T) {
	got := llm.BuildMessages(llm.Request{
		Text:     "Summarize this",
		Document: "Lorem ipsum...",
	})

	require.Len(t, got, 2)
	assert.Equal(t, "[Document Content Follows]\nLorem ipsum...\n\n[User Query]\nSummarize this", got[1].Content)
}

func TestBuildMessages_DocumentWithoutText(t *testing.T) {
	got := llm.BuildMessages(llm.Request{Document: "body"})

	assert.Equal(t, "[Document Content Follows]\nbody\n\n[User Query]\n", got[len(got)-1].Content)
}

func TestBuildMessages_History(t *testing.T) {
	now := time.Now()

	withDoc := domain.NewMessage(domain.RoleUser, "what is this?", now)
	withDoc.Attachments = []domain.Attachment{domain.NewFileAttachment("report.docx", "quarterly numbers")}

	failed := domain.NewMessage(domain.RoleAssistant, "request failed: boom", now)
	failed.IsError = true

	reply := domain.NewMessage(domain.RoleAssistant, "A report.", now)

	got := llm.BuildMessages(llm.Request{
		History: []domain.Message{withDoc, failed, reply},
		Text:    "and then?",
	})

	assert.Equal(t, []llm.Message{
		{Role: llm.RoleSystem, Content: llm.SystemPrompt},
		{Role: llm.RoleUser, Content: "[Context from file: report.docx]\nquarterly numbers\n\nwhat is this?"},
		{Role: llm.RoleAssistant, Content: "A report."},
		{Role: llm.RoleUser, Content: "and then?"},
	}, got)
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.AppSettings
		want     string
	}{
		{
			name:     "gemini default",
			settings: domain.AppSettings{Provider: domain.ProviderGemini},
			want:     "https://generativelanguage.googleapis.com/v1beta/openai",
		},
		{
			name:     "openai default",
			settings: domain.AppSettings{Provider: domain.ProviderOpenAI},
			want:     "https://api.openai.com/v1",
		},
		{
			name:     "explicit base url trimmed",
			settings: domain.AppSettings{Provider: domain.ProviderOpenAI, BaseURL: "http://localhost:11434/v1/"},
			want:     "http://localhost:11434/v1",
		},
		{
			name:     "explicit base url wins over provider",
			settings: domain.AppSettings{Provider: domain.ProviderGemini, BaseURL: "https://proxy.example.com"},
			want:     "https://proxy.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.ResolveEndpoint(tt.settings))
		})
	}
}
