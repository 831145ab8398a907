package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/llm"
)

// Client implements llm.Transport on the native Gemini API
type Client struct {
	temperature float32
	opts        []option.ClientOption
}

// NewClient creates a native Gemini transport. opts are appended to the
// API key option on every call.
func NewClient(temperature float32, opts ...option.ClientOption) *Client {
	return &Client{
		temperature: temperature,
		opts:        opts,
	}
}

func (c *Client) Name() string {
	return "gemini-native"
}

// Complete runs the conversation as a chat session. The endpoint is fixed
// by the SDK and ignored.
func (c *Client) Complete(ctx context.Context, _ string, settings domain.AppSettings, messages []llm.Message) (string, error) {
	system, history, last, err := splitMessages(messages)
	if err != nil {
		return "", err
	}

	opts := append([]option.ClientOption{option.WithAPIKey(settings.APIKey)}, c.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(settings.ModelName)
	model.SetTemperature(c.temperature)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", wrapError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return out.String(), nil
}

// splitMessages separates the system instruction and the final user turn
// from the chat history. Gemini calls the assistant role "model".
func splitMessages(messages []llm.Message) (string, []*genai.Content, string, error) {
	if len(messages) == 0 || messages[len(messages)-1].Role != llm.RoleUser {
		return "", nil, "", errors.New("conversation must end with a user turn")
	}

	var system string
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages[:len(messages)-1] {
		switch m.Role {
		case llm.RoleSystem:
			system = m.Content
		case llm.RoleAssistant:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}

	return system, history, messages[len(messages)-1].Content, nil
}

func wrapError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &llm.StatusError{Code: gErr.Code, Err: err}
	}
	return err
}
