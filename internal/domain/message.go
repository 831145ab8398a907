package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// AttachmentKindFile is the only attachment kind
const AttachmentKindFile = "file"

// Attachment holds text extracted from an uploaded document
type Attachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Kind    string `json:"type"`
}

// NewFileAttachment builds a file attachment
func NewFileAttachment(name, content string) Attachment {
	return Attachment{Name: name, Content: content, Kind: AttachmentKindFile}
}

// Message represents one turn of a chat session. Messages are never
// modified after they are appended to a session.
type Message struct {
	ID          string       `json:"id"`
	Role        MessageRole  `json:"role"`
	Text        string       `json:"text"`
	CreatedAt   time.Time    `json:"timestamp"`
	Attachments []Attachment `json:"attachments,omitempty"`
	IsError     bool         `json:"isError,omitempty"`
}

// NewMessage creates a message with a fresh id
func NewMessage(role MessageRole, text string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: at,
	}
}

// Attachment returns the first attachment of the message, if any
func (m Message) Attachment() (Attachment, bool) {
	if len(m.Attachments) == 0 {
		return Attachment{}, false
	}
	return m.Attachments[0], true
}
