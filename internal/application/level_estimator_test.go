package application

import (
	"math/rand"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEstimator() *LevelEstimator {
	cfg := DefaultConfig()
	return NewLevelEstimator(cfg.Level, cfg.Policy.DistressConfidence, ComplexityScorerFunc(func(string) float64 { return 0 }))
}

func neutral() LevelSignals {
	return LevelSignals{Emotion: domain.EmotionReading{Label: domain.EmotionNeutral, Confidence: 0.9}}
}

func TestLevelEstimatorBlendsWithMovingAverage(t *testing.T) {
	t.Parallel()

	estimator := newTestEstimator()
	prev := domain.LanguageLevel{Stage: domain.StageL1, Score: 0.1}

	next := estimator.Apply(prev, 1, neutral())

	assert.InDelta(t, 0.37, next.Score, 1e-9)
	assert.Equal(t, domain.StageL1, next.Stage)
	assert.Equal(t, domain.DirectionUp, next.Pending)
	assert.Equal(t, 1, next.Streak)
}

func TestLevelEstimatorDampsDistressedSamples(t *testing.T) {
	t.Parallel()

	estimator := newTestEstimator()
	prev := domain.LanguageLevel{Stage: domain.StageL1, Score: 0.1}

	next := estimator.Apply(prev, 1, LevelSignals{Emotion: domain.EmotionReading{Label: domain.EmotionFrustrated, Confidence: 0.9}})
	assert.InDelta(t, 0.235, next.Score, 1e-9)

	lowConfidence := estimator.Apply(prev, 1, LevelSignals{Emotion: domain.EmotionReading{Label: domain.EmotionFrustrated, Confidence: 0.2}})
	assert.InDelta(t, 0.37, lowConfidence.Score, 1e-9)
}

func TestLevelEstimatorRequiresTwoConsecutiveTurnsToPromote(t *testing.T) {
	t.Parallel()

	estimator := newTestEstimator()
	level := domain.LanguageLevel{Stage: domain.StageL1, Score: 0.1}

	level = estimator.Apply(level, 1, neutral())
	require.Equal(t, domain.StageL1, level.Stage)

	level = estimator.Apply(level, 1, neutral())
	assert.Equal(t, domain.StageL2, level.Stage)
	assert.Equal(t, domain.DirectionNone, level.Pending)
	assert.Zero(t, level.Streak)
}

func TestLevelEstimatorResetsStreakInsideBand(t *testing.T) {
	t.Parallel()

	estimator := newTestEstimator()
	level := domain.LanguageLevel{Stage: domain.StageL1, Score: 0.1}

	level = estimator.Apply(level, 0.7, neutral())
	require.Equal(t, 1, level.Streak)

	level = estimator.Apply(level, 0, neutral())
	require.Zero(t, level.Streak)

	level = estimator.Apply(level, 0.7, neutral())
	assert.Equal(t, domain.StageL1, level.Stage)
	assert.Equal(t, 1, level.Streak)
}

func TestLevelEstimatorDemotes(t *testing.T) {
	t.Parallel()

	estimator := newTestEstimator()
	level := domain.LanguageLevel{Stage: domain.StageL2, Score: 0.3}

	level = estimator.Apply(level, 0, neutral())
	require.Equal(t, domain.DirectionNone, level.Pending, "0.21 is inside the margin")

	level = estimator.Apply(level, 0, neutral())
	require.Equal(t, domain.DirectionDown, level.Pending)

	level = estimator.Apply(level, 0, neutral())
	assert.Equal(t, domain.StageL1, level.Stage)
}

func TestLevelEstimatorNeverSkipsStages(t *testing.T) {
	t.Parallel()

	estimator := newTestEstimator()
	rng := rand.New(rand.NewSource(7))
	level := domain.NewLanguageLevel(domain.StageL1)

	for i := 0; i < 500; i++ {
		sample := 0.0
		if rng.Intn(2) == 0 {
			sample = 1
		}
		next := estimator.Apply(level, sample, neutral())
		require.LessOrEqual(t, domain.StageDistance(level.Stage, next.Stage), 1, "turn %d", i)
		require.True(t, next.Stage.Valid())
		level = next
	}
}

func TestLevelEstimatorNominateCountsOneTurn(t *testing.T) {
	t.Parallel()

	estimator := newTestEstimator()
	level := domain.LanguageLevel{Stage: domain.StageL1, Score: 0.1}

	level = estimator.Nominate(level)
	assert.Equal(t, domain.StageL1, level.Stage)
	assert.Equal(t, domain.DirectionUp, level.Pending)
	assert.Equal(t, 1, level.Streak)

	again := estimator.Nominate(level)
	assert.Equal(t, 1, again.Streak)

	promoted := estimator.Apply(level, 1, neutral())
	assert.Equal(t, domain.StageL2, promoted.Stage)

	top := domain.LanguageLevel{Stage: domain.StageL5, Score: 0.9}
	assert.Equal(t, top, estimator.Nominate(top))
}

func TestLevelEstimatorUpdateUsesScorer(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	estimator := NewLevelEstimator(cfg.Level, cfg.Policy.DistressConfidence, ComplexityScorerFunc(func(u string) float64 {
		if u == "long" {
			return 2
		}
		return 0
	}))

	next := estimator.Update(domain.LanguageLevel{Stage: domain.StageL1, Score: 0}, "long", neutral())
	assert.InDelta(t, 0.3, next.Score, 1e-9)
}
