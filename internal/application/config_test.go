package application

import (
	"testing"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.StageL1, cfg.InitialStage())
}

func TestConfigValidateReportsFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "unknown stage", mutate: func(c *Config) { c.Level.InitialStage = "L9" }, field: "InitialStage"},
		{name: "ema weight", mutate: func(c *Config) { c.Level.EMAWeight = 0 }, field: "EMAWeight"},
		{name: "streak", mutate: func(c *Config) { c.Level.RequiredStreak = 0 }, field: "RequiredStreak"},
		{name: "classify timeout", mutate: func(c *Config) { c.Session.ClassifyTimeout = 0 }, field: "ClassifyTimeout"},
		{name: "negative budget", mutate: func(c *Config) { c.Session.TimeBudget = -time.Second }, field: "TimeBudget"},
		{name: "mastery threshold", mutate: func(c *Config) { c.Words.MasteryThreshold = 0 }, field: "MasteryThreshold"},
		{name: "confidence", mutate: func(c *Config) { c.Policy.DistressConfidence = 1.5 }, field: "DistressConfidence"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfigInitialStageAcceptsNames(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Level.InitialStage = "intermediate"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.StageL3, cfg.InitialStage())
}
