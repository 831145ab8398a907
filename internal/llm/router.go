package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/domain"
)

// Router picks the transport for the configured provider and runs the call
type Router struct {
	compatible Transport
	native     Transport
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithNativeGemini routes Gemini requests without a custom base URL
// through t instead of the OpenAI-compatible endpoint.
func WithNativeGemini(t Transport) RouterOption {
	return func(r *Router) {
		r.native = t
	}
}

// NewRouter creates a router that sends everything through compatible
// unless an option says otherwise.
func NewRouter(compatible Transport, opts ...RouterOption) *Router {
	r := &Router{compatible: compatible}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Complete sends the request and returns the assistant reply. A missing
// API key fails with domain.ErrMissingCredential before any network call;
// transport failures are returned as *domain.CompletionError. Context
// errors are returned as is.
func (r *Router) Complete(ctx context.Context, req Request) (string, error) {
	if req.Settings.APIKey == "" {
		return "", domain.ErrMissingCredential
	}

	transport := r.transportFor(req.Settings)
	endpoint := ResolveEndpoint(req.Settings)
	messages := BuildMessages(req)

	start := time.Now()
	reply, err := transport.Complete(ctx, endpoint, req.Settings, messages)
	latency := time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		log.Warn().
			Err(err).
			Str("transport", transport.Name()).
			Str("provider", string(req.Settings.Provider)).
			Str("model", req.Settings.ModelName).
			Dur("latency", latency).
			Msg("Completion request failed")
		return "", DescribeError(err)
	}

	log.Debug().
		Str("transport", transport.Name()).
		Str("model", req.Settings.ModelName).
		Int("messages", len(messages)).
		Dur("latency", latency).
		Msg("Completion finished")

	if reply == "" {
		return NoResponse, nil
	}
	return reply, nil
}

func (r *Router) transportFor(s domain.AppSettings) Transport {
	if r.native != nil && s.Provider == domain.ProviderGemini && s.BaseURL == "" {
		return r.native
	}
	return r.compatible
}

// ProviderInfo describes a provider and how requests to it are routed
type ProviderInfo struct {
	Name           domain.Provider `json:"name"`
	Endpoint       string          `json:"endpoint"`
	DefaultBaseURL string          `json:"defaultBaseUrl"`
	DefaultModel   string          `json:"defaultModel"`
	Transport      string          `json:"transport"`
}

// ProvidersInfo lists every provider with its defaults
func (r *Router) ProvidersInfo() []ProviderInfo {
	providers := domain.Providers()
	infos := make([]ProviderInfo, 0, len(providers))
	for _, p := range providers {
		s := domain.AppSettings{Provider: p}
		infos = append(infos, ProviderInfo{
			Name:           p,
			Endpoint:       p.Endpoint(),
			DefaultBaseURL: p.DefaultBaseURL(),
			DefaultModel:   p.DefaultModel(),
			Transport:      r.transportFor(s).Name(),
		})
	}
	return infos
}
