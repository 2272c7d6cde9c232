package genai

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/provider"
)

const (
	defaultTimeout = 120 * time.Second
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
	Name:    "model_request_duration_seconds",
	Help:    "Duration of generative model calls, by provider and outcome.",
	Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
}, []string{"provider", "outcome"})

type engine struct {
	mu      sync.RWMutex
	gen     Generator
	openErr error
	timeout time.Duration
}

// Engine is the generator used by the web handlers and the CLI.
var Engine engine //nolint:gochecknoglobals

// Name returns the active provider name, empty when none is open.
func (e *engine) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.gen == nil {
		return ""
	}

	return e.gen.Name()
}

// Generate implements Generator using the opened provider and the configured timeout.
func (e *engine) Generate(ctx context.Context, req Request) (string, error) {
	e.mu.RLock()
	gen, openErr, timeout := e.gen, e.openErr, e.timeout
	e.mu.RUnlock()

	if gen == nil {
		if openErr != nil {
			return "", openErr
		}

		return "", ErrClientNotInitialized
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := gen.Generate(ctx, req)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	requestDuration.WithLabelValues(gen.Name(), outcome).Observe(time.Since(start).Seconds())

	return text, err
}

// Set replaces the active generator.
func (e *engine) Set(gen Generator, timeout time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen = gen
	e.openErr = nil
	e.timeout = timeout
}

// Test sends a tiny prompt to check the provider answers.
func (e *engine) Test(ctx context.Context) error {
	text, err := e.Generate(ctx, Request{Parts: []Part{TextPart("Reply with the single word OK.")}})
	if err != nil {
		return err
	}

	if text == "" {
		return ErrEmptyResponse
	}

	log.Info().Str("provider", e.Name()).Msg("model provider connection test successful")

	return nil
}

// New creates the generator described by the provider settings.
func New(ctx context.Context, s *provider.Settings) (Generator, error) {
	switch s.Provider {
	case ProviderGemini, "":
		g, err := NewGemini(ctx, s.APIKey, s.Model, s.BaseURL)
		if err != nil {
			return nil, err
		}

		return g, nil
	case ProviderOpenAI:
		o, err := NewOpenAI(s.APIKey, s.Model, s.BaseURL)
		if err != nil {
			return nil, err
		}

		return o, nil
	default:
		return nil, errors.Wrap(config.ErrUnknownModelProvider, s.Provider)
	}
}

// Open initializes the engine from the provider settings stored in the database,
// falling back to the configuration file.
// A missing api key is not fatal, every call reports it until the settings are fixed.
func Open(ctx context.Context, db *gorm.DB, cfg *config.Model) error {
	settings := &provider.Settings{}
	if err := settings.LoadOrDefault(db, cfg); err != nil {
		return err
	}

	gen, err := New(ctx, settings)

	Engine.mu.Lock()
	defer Engine.mu.Unlock()

	Engine.timeout = cfg.Timeout
	Engine.gen = gen
	Engine.openErr = err

	if errors.Is(err, ErrMissingAPIKey) {
		log.Warn().Str("provider", settings.Provider).Msg("no api key configured, analyses will fail until one is set")
		return nil
	}

	if err != nil {
		return err
	}

	log.Info().Str("provider", gen.Name()).Str("model", settings.Model).Msg("model provider ready")

	return nil
}
