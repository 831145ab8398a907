package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/config"
	"github.com/Rrens/docchat/internal/document"
	"github.com/Rrens/docchat/internal/llm"
	"github.com/Rrens/docchat/internal/llm/gemini"
	"github.com/Rrens/docchat/internal/llm/openai"
	"github.com/Rrens/docchat/internal/repository"
	"github.com/Rrens/docchat/internal/security"
	"github.com/Rrens/docchat/internal/service"
	"github.com/Rrens/docchat/internal/store"
)

// App holds the wired components shared by the server and the CLI
type App struct {
	Config   *config.Config
	Storage  repository.Storage
	Sessions *store.SessionStore
	Settings *store.SettingsStore
	LLM      *llm.Router
	Chat     *service.ChatService
}

// New opens storage, loads persisted state and wires the chat service.
// Unreadable persisted state falls back to defaults.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	sealer, err := newSealer(cfg.Security)
	if err != nil {
		return nil, err
	}

	openCtx := ctx
	if cfg.Storage.Timeout > 0 {
		var cancel context.CancelFunc
		openCtx, cancel = context.WithTimeout(ctx, cfg.Storage.Timeout)
		defer cancel()
	}

	storage, err := repository.Open(openCtx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	settings := store.NewSettingsStore(storage, cfg.Storage.Keys.Settings, sealer)
	current := settings.LoadOrDefault(ctx)

	sessions := store.NewSessionStore(ctx, storage, cfg.Storage.Keys.Sessions)

	router := NewLLMRouter(cfg.LLM)
	chat := service.NewChatService(sessions, settings, router, document.NewExtractor())

	log.Info().
		Str("provider", string(current.Provider)).
		Str("model", current.ModelName).
		Bool("api_key_set", current.APIKey != "").
		Int("sessions", len(sessions.Sessions())).
		Msg("State loaded")

	return &App{
		Config:   cfg,
		Storage:  storage,
		Sessions: sessions,
		Settings: settings,
		LLM:      router,
		Chat:     chat,
	}, nil
}

// NewLLMRouter builds the completion router for cfg
func NewLLMRouter(cfg config.LLMConfig) *llm.Router {
	var opts []llm.RouterOption
	if cfg.GeminiNative {
		log.Info().Msg("Routing Gemini requests through the native API")
		opts = append(opts, llm.WithNativeGemini(gemini.NewClient(cfg.Temperature)))
	}
	return llm.NewRouter(openai.NewClient(cfg.Timeout, cfg.Temperature), opts...)
}

func newSealer(cfg config.SecurityConfig) (store.SecretSealer, error) {
	if cfg.SettingsKey == "" {
		return nil, nil
	}
	enc, err := security.NewSecretBoxFromBase64(cfg.SettingsKey)
	if err != nil {
		return nil, fmt.Errorf("invalid settings encryption key: %w", err)
	}
	return enc, nil
}

// Close releases storage and any extra closers, collecting every error
func (a *App) Close(extra ...interface{ Close() error }) error {
	var result error
	if err := a.Storage.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("storage: %w", err))
	}
	for _, c := range extra {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}
