package llm

import (
	"fmt"
	"strings"

	"github.com/Rrens/docchat/internal/domain"
)

// SystemPrompt is the fixed instruction that opens every payload
const SystemPrompt = "You are a helpful AI assistant capable of analyzing documents. Answer in Chinese unless requested otherwise."

// BuildMessages assembles the payload for a request: the system
// instruction, the usable history, then the new user turn. Error turns
// are skipped. Earlier turns that carried a document get its text inlined.
func BuildMessages(req Request) []Message {
	messages := make([]Message, 0, len(req.History)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: SystemPrompt})

	for _, m := range req.History {
		if m.IsError {
			continue
		}

		content := m.Text
		if att, ok := m.Attachment(); ok {
			content = fmt.Sprintf("[Context from file: %s]\n%s\n\n%s", att.Name, att.Content, m.Text)
		}

		messages = append(messages, Message{Role: roleOf(m.Role), Content: content})
	}

	content := req.Text
	if req.Document != "" {
		content = fmt.Sprintf("[Document Content Follows]\n%s\n\n[User Query]\n%s", req.Document, req.Text)
	}
	messages = append(messages, Message{Role: RoleUser, Content: content})

	return messages
}

// ResolveEndpoint returns the explicit base URL with one trailing slash
// removed, or the provider's built-in endpoint when none is set.
func ResolveEndpoint(settings domain.AppSettings) string {
	endpoint := settings.BaseURL
	if endpoint == "" {
		endpoint = settings.Provider.Endpoint()
	}
	return strings.TrimSuffix(endpoint, "/")
}

func roleOf(r domain.MessageRole) string {
	if r == domain.RoleAssistant {
		return RoleAssistant
	}
	return RoleUser
}
