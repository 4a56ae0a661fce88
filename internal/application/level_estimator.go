package application

import (
	"github.com/bnema/sparky/internal/domain"
)

type LevelSignals struct {
	Emotion domain.EmotionReading
}

// LevelEstimator smooths per-utterance complexity into a proficiency estimate.
// It holds configuration only; all state lives in the LanguageLevel values it
// is handed.
type LevelEstimator struct {
	cfg                LevelConfig
	distressConfidence float64
	scorer             ComplexityScorer
}

func NewLevelEstimator(cfg LevelConfig, distressConfidence float64, scorer ComplexityScorer) *LevelEstimator {
	if scorer == nil {
		scorer = NewDefaultScorer(nil)
	}
	return &LevelEstimator{cfg: cfg, distressConfidence: distressConfidence, scorer: scorer}
}

// Score rates one utterance. It may run concurrently with classification.
func (e *LevelEstimator) Score(utterance string) float64 {
	return clamp01(e.scorer.Score(utterance))
}

func (e *LevelEstimator) Update(prev domain.LanguageLevel, utterance string, signals LevelSignals) domain.LanguageLevel {
	return e.Apply(prev, e.Score(utterance), signals)
}

// Apply blends sample into prev and moves the stage at most one step once the
// smoothed score has sat beyond a boundary (plus margin) for RequiredStreak
// consecutive turns.
func (e *LevelEstimator) Apply(prev domain.LanguageLevel, sample float64, signals LevelSignals) domain.LanguageLevel {
	if !prev.Stage.Valid() {
		prev = domain.NewLanguageLevel(domain.MinStage)
	}

	weight := e.cfg.EMAWeight
	if signals.Emotion.Label.IsDistressed() && signals.Emotion.Confidence >= e.distressConfidence {
		weight *= e.cfg.DistressDamping
	}

	next := prev
	next.Score = clamp01(weight*clamp01(sample) + (1-weight)*prev.Score)

	direction := domain.DirectionNone
	switch {
	case prev.Stage < domain.MaxStage && next.Score > domain.StageCeiling(prev.Stage)+e.cfg.HysteresisMargin:
		direction = domain.DirectionUp
	case prev.Stage > domain.MinStage && next.Score < domain.StageFloor(prev.Stage)-e.cfg.HysteresisMargin:
		direction = domain.DirectionDown
	}

	if direction == domain.DirectionNone {
		next.Pending = domain.DirectionNone
		next.Streak = 0
		return next
	}

	if prev.Pending == direction {
		next.Streak = prev.Streak + 1
	} else {
		next.Streak = 1
	}
	next.Pending = direction

	if next.Streak >= e.requiredStreak() {
		if direction == domain.DirectionUp {
			next.Stage = prev.Stage.Next()
		} else {
			next.Stage = prev.Stage.Prev()
		}
		next.Pending = domain.DirectionNone
		next.Streak = 0
	}

	return next
}

// Nominate records one turn of upward evidence without moving the stage. The
// next qualifying turn can then complete the streak on its own.
func (e *LevelEstimator) Nominate(level domain.LanguageLevel) domain.LanguageLevel {
	if level.Stage >= domain.MaxStage {
		return level
	}
	if level.Pending != domain.DirectionUp {
		level.Pending = domain.DirectionUp
		level.Streak = 0
	}
	if level.Streak < e.requiredStreak()-1 {
		level.Streak++
	}
	return level
}

func (e *LevelEstimator) requiredStreak() int {
	if e.cfg.RequiredStreak < 1 {
		return 1
	}
	return e.cfg.RequiredStreak
}
