package domain

import (
	"fmt"
	"strings"
)

// Provider identifies a remote language-model backend family
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/openai/"
	openAIEndpoint = "https://api.openai.com/v1"

	geminiDefaultModel = "gemini-3-pro-preview"
	openAIDefaultModel = "gpt-4o"

	geminiModelMarker = "gemini"
)

// Providers lists every supported provider
func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderOpenAI}
}

// ParseProvider validates a provider tag
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case ProviderGemini, ProviderOpenAI:
		return p, nil
	default:
		return "", fmt.Errorf("unknown provider: %q", s)
	}
}

// Endpoint returns the completion endpoint used when no base URL is set
func (p Provider) Endpoint() string {
	switch p {
	case ProviderGemini:
		return geminiEndpoint
	case ProviderOpenAI:
		return openAIEndpoint
	default:
		panic(fmt.Sprintf("unknown provider: %q", string(p)))
	}
}

// DefaultBaseURL returns the base URL pre-filled in settings for the provider.
// Gemini leaves it empty so the built-in endpoint is used.
func (p Provider) DefaultBaseURL() string {
	switch p {
	case ProviderGemini:
		return ""
	case ProviderOpenAI:
		return openAIEndpoint
	default:
		panic(fmt.Sprintf("unknown provider: %q", string(p)))
	}
}

// DefaultModel returns the model name used for a fresh configuration
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderGemini:
		return geminiDefaultModel
	case ProviderOpenAI:
		return openAIDefaultModel
	default:
		panic(fmt.Sprintf("unknown provider: %q", string(p)))
	}
}

// OwnsModel reports whether a model name belongs to the provider's family
func (p Provider) OwnsModel(model string) bool {
	isGemini := strings.Contains(strings.ToLower(model), geminiModelMarker)
	switch p {
	case ProviderGemini:
		return isGemini
	case ProviderOpenAI:
		return model != "" && !isGemini
	default:
		panic(fmt.Sprintf("unknown provider: %q", string(p)))
	}
}

// AppSettings is the process-wide provider configuration
type AppSettings struct {
	Provider  Provider `json:"provider" validate:"required,oneof=gemini openai"`
	APIKey    string   `json:"apiKey"`
	ModelName string   `json:"modelName" validate:"required"`
	BaseURL   string   `json:"baseUrl" validate:"omitempty,url"`
}

// DefaultSettings returns the settings used when nothing is persisted
func DefaultSettings() AppSettings {
	return AppSettings{
		Provider:  ProviderGemini,
		ModelName: ProviderGemini.DefaultModel(),
	}
}

// SwitchProvider changes the provider and re-defaults the base URL and
// model when they are empty or still hold the other provider's default.
func SwitchProvider(s AppSettings, to Provider) AppSettings {
	switch to {
	case ProviderOpenAI:
		if s.BaseURL == "" {
			s.BaseURL = ProviderOpenAI.DefaultBaseURL()
		}
	case ProviderGemini:
		if s.BaseURL == ProviderOpenAI.DefaultBaseURL() {
			s.BaseURL = ProviderGemini.DefaultBaseURL()
		}
	default:
		panic(fmt.Sprintf("unknown provider: %q", string(to)))
	}

	if !to.OwnsModel(s.ModelName) {
		s.ModelName = to.DefaultModel()
	}
	s.Provider = to
	return s
}

// MaskedAPIKey returns the key with everything but the last 4 characters hidden
func (s AppSettings) MaskedAPIKey() string {
	if len(s.APIKey) <= 4 {
		return strings.Repeat("*", len(s.APIKey))
	}
	return strings.Repeat("*", len(s.APIKey)-4) + s.APIKey[len(s.APIKey)-4:]
}
