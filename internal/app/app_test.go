package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/docchat/internal/config"
	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/security"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Storage: config.StorageConfig{
			Driver:  "sqlite",
			SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "docchat.db")},
			Keys:    config.StorageKeys{Sessions: "docchat-chat-history-v1", Settings: "docchat-app-settings-v2"},
			Timeout: 5 * time.Second,
		},
		LLM: config.LLMConfig{Timeout: time.Second, Temperature: 0.7},
	}
}

func TestNew_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	key, err := security.GenerateKey()
	require.NoError(t, err)
	cfg.Security.SettingsKey = security.EncodeKey(key)

	a, err := New(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSettings(), a.Settings.Current())
	require.Len(t, a.Sessions.Sessions(), 1)

	created := a.Chat.CreateSession(ctx)
	settings := domain.AppSettings{Provider: domain.ProviderOpenAI, APIKey: "sk-1", ModelName: "gpt-4o", BaseURL: "https://api.openai.com/v1"}
	require.NoError(t, a.Chat.SaveSettings(ctx, settings))
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, settings, b.Settings.Current())
	sessions := b.Sessions.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, created.ID, sessions[0].ID)
	assert.Equal(t, created.ID, b.Sessions.ActiveID())
}

func TestNew_InvalidSettingsKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.SettingsKey = "not base64!"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "cassandra"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewLLMRouter(t *testing.T) {
	native := NewLLMRouter(config.LLMConfig{Timeout: time.Second, Temperature: 0.7, GeminiNative: true})
	assert.Equal(t, "gemini-native", native.ProvidersInfo()[0].Transport)

	compatible := NewLLMRouter(config.LLMConfig{Timeout: time.Second, Temperature: 0.7})
	assert.Equal(t, "openai-compatible", compatible.ProvidersInfo()[0].Transport)
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("close failed") }

func TestClose_CollectsErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "memory"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	err = a.Close(failingCloser{}, failingCloser{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
}
