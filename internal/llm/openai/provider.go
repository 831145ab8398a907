package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/llm"
)

// Client implements llm.Transport for any OpenAI-compatible endpoint,
// including Gemini's compatibility layer.
type Client struct {
	httpClient  *http.Client
	temperature float32
}

// NewClient creates an OpenAI-compatible transport
func NewClient(timeout time.Duration, temperature float32) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		temperature: temperature,
	}
}

// Name returns the transport identifier
func (c *Client) Name() string {
	return "openai-compatible"
}

// Complete sends a chat completion request to endpoint
func (c *Client) Complete(ctx context.Context, endpoint string, settings domain.AppSettings, messages []llm.Message) (string, error) {
	cfg := openai.DefaultConfig(settings.APIKey)
	cfg.BaseURL = endpoint
	cfg.HTTPClient = c.httpClient

	client := openai.NewClientWithConfig(cfg)

	req := openai.ChatCompletionRequest{
		Model:       settings.ModelName,
		Messages:    toChatMessages(messages),
		Temperature: c.temperature,
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(messages []llm.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

func wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &llm.StatusError{Code: apiErr.HTTPStatusCode, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &llm.StatusError{Code: reqErr.HTTPStatusCode, Err: err}
	}

	return err
}
