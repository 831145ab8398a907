package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultSessionTitle is the placeholder title of a fresh session
	DefaultSessionTitle = "New Chat"

	// DocumentSessionTitle is used when the first turn only carries an attachment
	DocumentSessionTitle = "Document Analysis"

	// GreetingText is the assistant message every session starts with
	GreetingText = "Hello! I'm your AI assistant. I can analyze documents or answer questions. Upload a Word document or just ask me something."

	titleMaxRunes = 20
)

// ChatSession represents a conversation thread
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewChatSession creates a session holding only the greeting
func NewChatSession(now time.Time) ChatSession {
	return ChatSession{
		ID:        uuid.NewString(),
		Title:     DefaultSessionTitle,
		Messages:  []Message{NewMessage(RoleAssistant, GreetingText, now)},
		UpdatedAt: now,
	}
}

// HasUserTurn reports whether any user message was sent in the session
func (s ChatSession) HasUserTurn() bool {
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// Clone returns a copy whose message slice can be appended to freely
func (s ChatSession) Clone() ChatSession {
	msgs := make([]Message, len(s.Messages))
	copy(msgs, s.Messages)
	s.Messages = msgs
	return s
}

// DeriveTitle computes a session title from the first user turn. Text is
// trimmed and cut to 20 characters; an empty text with an attachment
// yields DocumentSessionTitle.
func DeriveTitle(text string, hasAttachment bool) string {
	text = strings.TrimSpace(text)
	if text != "" {
		runes := []rune(text)
		if len(runes) > titleMaxRunes {
			runes = runes[:titleMaxRunes]
		}
		return string(runes)
	}
	if hasAttachment {
		return DocumentSessionTitle
	}
	return DefaultSessionTitle
}
