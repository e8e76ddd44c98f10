package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/wordsmithery/internal/config"
	"github.com/jonathan/wordsmithery/internal/generation"
	"github.com/jonathan/wordsmithery/internal/llm"
	"github.com/jonathan/wordsmithery/internal/storage"
	"github.com/jonathan/wordsmithery/internal/tones"
	"github.com/jonathan/wordsmithery/internal/webhook"
)

// loadConfig resolves the effective configuration; --verbose wins over the file
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// openTones opens the configured store and a tone repository over it.
// The caller closes the returned store.
func openTones(ctx context.Context, cfg *config.Config) (*tones.Repository, storage.Store, error) {
	store, err := storage.Open(ctx, cfg.DatabaseURL, cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open tone store: %w", err)
	}
	return tones.NewRepository(store), store, nil
}

// newBackend builds the generation backend selected by cfg.Backend.
// The returned close function releases model clients.
func newBackend(ctx context.Context, cfg *config.Config) (generation.Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", config.BackendWebhook:
		client, err := webhook.New(webhook.Options{
			Endpoint: cfg.Endpoint,
			Source:   cfg.Source,
			Timeout:  time.Duration(cfg.Timeout),
		})
		if err != nil {
			return nil, nil, err
		}
		return client, noop, nil

	case config.BackendGemini, config.BackendOpenAI:
		llmConfig := llm.ConfigFor(llm.Provider(cfg.Backend))
		if cfg.Model != "" {
			llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
		}
		if cfg.BaseURL != "" {
			llmConfig.BaseURL = cfg.BaseURL
		}
		client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create %s client: %w", cfg.Backend, err)
		}
		return generation.NewLLMBackend(client), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newRunner wires the backend and tone repository into a Runner
func newRunner(ctx context.Context, cfg *config.Config, repo *tones.Repository) (*generation.Runner, func() error, error) {
	backend, closeBackend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	runner := generation.NewRunner(backend, repo, generation.Options{
		StripHeaders: cfg.ShouldStripHeaders(),
	})
	return runner, closeBackend, nil
}
