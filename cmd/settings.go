package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/sparky/internal/adapters/telemetry"
	"github.com/bnema/sparky/internal/application"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".sparky"
	envPrefix  = "SPARKY"
)

// settings is the whole of ~/.sparky/config.toml. The tutoring tunables sit
// at the top level next to the backend sections.
type settings struct {
	application.Config `mapstructure:",squash"`

	Log         logSettings        `mapstructure:"log"`
	Emotion     emotionSettings    `mapstructure:"emotion"`
	Generator   generatorSettings  `mapstructure:"generator"`
	Catalog     catalogSettings    `mapstructure:"catalog"`
	Transcripts transcriptSettings `mapstructure:"transcripts"`
	Secrets     secretSettings     `mapstructure:"secrets"`
	Metrics     metricsSettings    `mapstructure:"metrics"`
	Tracing     telemetry.Config   `mapstructure:"tracing"`
}

type logSettings struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file" validate:"required"`
}

type emotionSettings struct {
	Backend string `mapstructure:"backend" validate:"oneof=keyword huggingface openai"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type generatorSettings struct {
	Backend     string        `mapstructure:"backend" validate:"oneof=scripted openai gemini ollama"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url" validate:"omitempty,url"`
	Temperature float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int           `mapstructure:"max_tokens" validate:"gte=0"`
	MinInterval time.Duration `mapstructure:"min_interval" validate:"gte=0"`
	Burst       int           `mapstructure:"burst" validate:"gte=1"`
}

type catalogSettings struct {
	Path string `mapstructure:"path"`
}

type transcriptSettings struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

type secretSettings struct {
	Dir  string `mapstructure:"dir" validate:"required"`
	Pass bool   `mapstructure:"pass"`
}

type metricsSettings struct {
	Textfile string `mapstructure:"textfile"`
}

var settingsValidate = validator.New()

func setDefaults(v *viper.Viper, home string) {
	base := filepath.Join(home, configDir)
	defaults := application.DefaultConfig()

	v.SetDefault("session.max_turns", defaults.Session.MaxTurns)
	v.SetDefault("session.time_budget", defaults.Session.TimeBudget)
	v.SetDefault("session.classify_timeout", defaults.Session.ClassifyTimeout)
	v.SetDefault("session.generate_timeout", defaults.Session.GenerateTimeout)
	v.SetDefault("session.excerpt_turns", defaults.Session.ExcerptTurns)
	v.SetDefault("level.initial_stage", defaults.Level.InitialStage)
	v.SetDefault("level.ema_weight", defaults.Level.EMAWeight)
	v.SetDefault("level.hysteresis_margin", defaults.Level.HysteresisMargin)
	v.SetDefault("level.required_streak", defaults.Level.RequiredStreak)
	v.SetDefault("level.distress_damping", defaults.Level.DistressDamping)
	v.SetDefault("words.mastery_threshold", defaults.Words.MasteryThreshold)
	v.SetDefault("words.review_after_turns", defaults.Words.ReviewAfterTurns)
	v.SetDefault("words.category", defaults.Words.Category)
	v.SetDefault("policy.distress_confidence", defaults.Policy.DistressConfidence)
	v.SetDefault("policy.positive_streak", defaults.Policy.PositiveStreak)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(base, "sparky.log"))
	v.SetDefault("emotion.backend", "keyword")
	v.SetDefault("emotion.model", "")
	v.SetDefault("emotion.base_url", "")
	v.SetDefault("generator.backend", "scripted")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.temperature", 0.8)
	v.SetDefault("generator.max_tokens", 300)
	v.SetDefault("generator.min_interval", time.Duration(0))
	v.SetDefault("generator.burst", 1)
	v.SetDefault("catalog.path", "")
	v.SetDefault("transcripts.dir", filepath.Join(base, "transcripts"))
	v.SetDefault("secrets.dir", filepath.Join(base, "secrets"))
	v.SetDefault("secrets.pass", true)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("tracing.exporter", telemetry.ExporterNone)
	v.SetDefault("tracing.path", filepath.Join(base, "traces.jsonl"))
}

// loadSettings reads ~/.sparky/config.toml when present; SPARKY_* variables
// override it, e.g. SPARKY_GENERATOR_BACKEND=ollama.
func loadSettings(v *viper.Viper, home string) (settings, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(home, configDir))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, home)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	s.Log.Level = strings.ToLower(s.Log.Level)

	if err := s.Config.Validate(); err != nil {
		return settings{}, err
	}
	for _, section := range []any{s.Log, s.Emotion, s.Generator, s.Transcripts, s.Secrets, s.Tracing} {
		if err := settingsValidate.Struct(section); err != nil {
			return settings{}, fmt.Errorf("invalid config: %w", err)
		}
	}

	return s, nil
}
