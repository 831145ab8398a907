package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/docchat/internal/domain"
)

func TestParseProvider(t *testing.T) {
	p, err := domain.ParseProvider("openai")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOpenAI, p)

	p, err = domain.ParseProvider("gemini")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, p)

	_, err = domain.ParseProvider("anthropic")
	assert.Error(t, err)
	_, err = domain.ParseProvider("")
	assert.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings()
	assert.Equal(t, domain.ProviderGemini, s.Provider)
	assert.Equal(t, "gemini-3-pro-preview", s.ModelName)
	assert.Empty(t, s.BaseURL)
	assert.Empty(t, s.APIKey)
}

func TestSwitchProvider(t *testing.T) {
	t.Run("defaults round trip", func(t *testing.T) {
		start := domain.DefaultSettings()
		start.APIKey = "key"

		openai := domain.SwitchProvider(start, domain.ProviderOpenAI)
		assert.Equal(t, domain.ProviderOpenAI, openai.Provider)
		assert.Equal(t, "https://api.openai.com/v1", openai.BaseURL)
		assert.Equal(t, "gpt-4o", openai.ModelName)
		assert.Equal(t, "key", openai.APIKey)

		back := domain.SwitchProvider(openai, domain.ProviderGemini)
		assert.Equal(t, start, back)
	})

	t.Run("custom values kept", func(t *testing.T) {
		s := domain.AppSettings{
			Provider:  domain.ProviderOpenAI,
			ModelName: "deepseek-chat",
			BaseURL:   "https://api.deepseek.com/v1",
		}

		gemini := domain.SwitchProvider(s, domain.ProviderGemini)
		assert.Equal(t, "https://api.deepseek.com/v1", gemini.BaseURL)
		assert.Equal(t, "gemini-3-pro-preview", gemini.ModelName)

		openai := domain.SwitchProvider(gemini, domain.ProviderOpenAI)
		assert.Equal(t, "https://api.deepseek.com/v1", openai.BaseURL)
		assert.Equal(t, "gpt-4o", openai.ModelName)
	})

	t.Run("family model kept", func(t *testing.T) {
		s := domain.AppSettings{Provider: domain.ProviderOpenAI, ModelName: "gemini-1.5-flash"}
		gemini := domain.SwitchProvider(s, domain.ProviderGemini)
		assert.Equal(t, "gemini-1.5-flash", gemini.ModelName)
	})

	t.Run("same provider is idempotent", func(t *testing.T) {
		s := domain.DefaultSettings()
		assert.Equal(t, s, domain.SwitchProvider(s, domain.ProviderGemini))
	})
}

func TestProvider_OwnsModel(t *testing.T) {
	assert.True(t, domain.ProviderGemini.OwnsModel("Gemini-Pro"))
	assert.False(t, domain.ProviderGemini.OwnsModel("gpt-4o"))
	assert.True(t, domain.ProviderOpenAI.OwnsModel("gpt-4o"))
	assert.False(t, domain.ProviderOpenAI.OwnsModel("gemini-pro"))
	assert.False(t, domain.ProviderOpenAI.OwnsModel(""))
}

func TestProvider_Endpoint(t *testing.T) {
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai/", domain.ProviderGemini.Endpoint())
	assert.Equal(t, "https://api.openai.com/v1", domain.ProviderOpenAI.Endpoint())
	assert.Panics(t, func() { domain.Provider("bogus").Endpoint() })
}

func TestAppSettings_MaskedAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcd", "****"},
		{"sk-1234567890", "*********7890"},
	}

	for _, tt := range tests {
		s := domain.AppSettings{APIKey: tt.key}
		assert.Equal(t, tt.want, s.MaskedAPIKey(), tt.key)
	}
}

func TestCompletionError(t *testing.T) {
	err := &domain.CompletionError{
		Kind:    domain.ErrAuthenticationFailed,
		Message: domain.ErrAuthenticationFailed.Error(),
	}

	assert.Equal(t, "request failed: Authentication failed (401). Please check your API Key.", err.Error())
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	assert.NotErrorIs(t, err, domain.ErrEndpointNotFound)

	var ce *domain.CompletionError
	assert.True(t, errors.As(error(err), &ce))
}
