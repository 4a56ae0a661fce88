package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	catalogrepo "github.com/bnema/sparky/internal/adapters/catalog"
	hfemotion "github.com/bnema/sparky/internal/adapters/emotion/huggingface"
	"github.com/bnema/sparky/internal/adapters/emotion/keyword"
	openaiemotion "github.com/bnema/sparky/internal/adapters/emotion/openai"
	summaryrender "github.com/bnema/sparky/internal/adapters/render/summary"
	"github.com/bnema/sparky/internal/adapters/secrets"
	chainstore "github.com/bnema/sparky/internal/adapters/secrets/chain"
	envstore "github.com/bnema/sparky/internal/adapters/secrets/env"
	"github.com/bnema/sparky/internal/adapters/textgen"
	geminigen "github.com/bnema/sparky/internal/adapters/textgen/gemini"
	ollamagen "github.com/bnema/sparky/internal/adapters/textgen/ollama"
	openaigen "github.com/bnema/sparky/internal/adapters/textgen/openai"
	"github.com/bnema/sparky/internal/adapters/textgen/scripted"
	"github.com/bnema/sparky/internal/application"
	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	settings       settings
	logger         *zap.Logger
	secretStore    ports.SecretStore
	summaryRender  func(domain.Summary) (string, error)
	replayRender   func(application.ReplayReport) (string, error)
	wordsRender    func([]domain.CatalogWord, domain.KnowledgeSnapshot) (string, error)
	newClassifier  func(context.Context) (ports.EmotionClassifier, error)
	newGenerator   func(context.Context) (ports.TextGenerator, error)
	clock          ports.Clock
	interactiveTTY func() bool
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := loadSettings(viper.New(), homeDir)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	a := &app{
		settings:       cfg,
		logger:         logger,
		secretStore:    newSecretStore(cfg.Secrets),
		summaryRender:  summaryrender.RenderSummary,
		replayRender:   summaryrender.RenderReplay,
		wordsRender:    summaryrender.RenderWords,
		clock:          ports.SystemClock{},
		interactiveTTY: stdinIsTerminal,
	}
	a.newClassifier = a.buildClassifier
	a.newGenerator = a.buildGenerator

	return a, nil
}

func newLogger(cfg logSettings) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	if cfg.File != "stderr" && cfg.File != "stdout" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zcfg.Build()
}

func newSecretStore(cfg secretSettings) ports.SecretStore {
	return chainstore.NewDefault(cfg.Dir, cfg.Pass)
}

func (a *app) loadCatalog(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := catalogrepo.Load(ctx, a.settings.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary catalog: %w", err)
	}
	return catalog, nil
}

// apiKey resolves a provider key. Missing keys yield "" when optional.
func (a *app) apiKey(ctx context.Context, provider string, optional bool) (string, error) {
	key, err := secrets.APIKey(provider)
	if err != nil {
		return "", err
	}

	value, err := a.secretStore.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if optional && errors.Is(err, domain.ErrSecretNotFound) {
		return "", nil
	}
	return "", fmt.Errorf("no API key for %s (run `sparky key set --provider %s` or set %s): %w",
		provider, provider, envstore.Variables(provider)[0], err)
}

func (a *app) buildClassifier(ctx context.Context) (ports.EmotionClassifier, error) {
	cfg := a.settings.Emotion

	switch cfg.Backend {
	case "keyword":
		return keyword.NewClassifier(keyword.DefaultTable), nil
	case "huggingface":
		token, err := a.apiKey(ctx, "huggingface", true)
		if err != nil {
			return nil, err
		}
		return hfemotion.NewClassifier(hfemotion.Options{Token: token, Model: cfg.Model, BaseURL: cfg.BaseURL}), nil
	case "openai":
		key, err := a.apiKey(ctx, "openai", false)
		if err != nil {
			return nil, err
		}
		return openaiemotion.NewClassifier(openaiemotion.Options{APIKey: key, Model: cfg.Model, BaseURL: cfg.BaseURL})
	default:
		return nil, fmt.Errorf("unsupported emotion backend %q", cfg.Backend)
	}
}

func (a *app) buildGenerator(ctx context.Context) (ports.TextGenerator, error) {
	cfg := a.settings.Generator

	var (
		generator ports.TextGenerator
		err       error
	)
	switch cfg.Backend {
	case "scripted":
		generator = scripted.NewGenerator()
	case "openai":
		key, keyErr := a.apiKey(ctx, "openai", false)
		if keyErr != nil {
			return nil, keyErr
		}
		generator, err = openaigen.NewGenerator(openaigen.Options{
			APIKey:      key,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: float32(cfg.Temperature),
			MaxTokens:   cfg.MaxTokens,
		})
	case "gemini":
		key, keyErr := a.apiKey(ctx, "gemini", false)
		if keyErr != nil {
			return nil, keyErr
		}
		generator, err = geminigen.NewGenerator(ctx, geminigen.Options{
			APIKey:      key,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: float32(cfg.Temperature),
		})
	case "ollama":
		generator, err = ollamagen.NewGenerator(ollamagen.Options{
			Model:       cfg.Model,
			ServerURL:   cfg.BaseURL,
			Temperature: cfg.Temperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("wire %s generator: %w", cfg.Backend, err)
	}

	if cfg.MinInterval > 0 {
		generator = textgen.NewPaced(generator, cfg.MinInterval, cfg.Burst)
	}
	return generator, nil
}
