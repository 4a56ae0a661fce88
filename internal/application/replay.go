package application

import (
	"fmt"

	"github.com/bnema/sparky/internal/domain"
)

// Divergence is a recorded decision that the policy no longer reproduces.
type Divergence struct {
	Turn     int             `json:"turn"`
	Recorded domain.Decision `json:"recorded"`
	Derived  domain.Decision `json:"derived"`
}

type ReplayReport struct {
	Steps       int                    `json:"steps"`
	Divergences []Divergence           `json:"divergences,omitempty"`
	Violations  []string               `json:"violations,omitempty"`
	Stats       domain.TrajectoryStats `json:"stats"`
}

func (r ReplayReport) Consistent() bool {
	return len(r.Divergences) == 0 && len(r.Violations) == 0
}

// Replay re-derives every decision of a recorded trajectory from the state the
// steps carry. Turns must run 0..N-1; anything else is a corrupt transcript.
// Only actions and target words are compared.
func Replay(steps []domain.TrajectoryStep, cfg Config, catalog *domain.Catalog) (ReplayReport, error) {
	for i, step := range steps {
		if step.Turn != i {
			return ReplayReport{}, fmt.Errorf("%w: step %d has turn %d", domain.ErrTranscriptCorrupt, i, step.Turn)
		}
	}

	report := ReplayReport{Steps: len(steps), Stats: domain.StatsOf(steps)}
	policy := NewPolicyGenerator(cfg.Words, cfg.Policy, catalog)
	words := NewWordStore(cfg.Words.MasteryThreshold)

	var (
		recent []domain.EmotionReading
		prev   *domain.TrajectoryStep
	)
	for i := range steps {
		step := steps[i]

		if prev != nil {
			words.restore(prev.Knowledge)
			report.Violations = append(report.Violations, checkTransition(*prev, step)...)
		}

		var mentions []domain.CatalogWord
		if catalog != nil {
			mentions = catalog.Mentions(step.LearnerText)
		}
		if prev != nil && prev.Decision.Action.TargetsWord() &&
			step.Emotion.Label.IsDistressed() && step.Emotion.Confidence >= cfg.Policy.DistressConfidence &&
			!mentioned(mentions, prev.Decision.TargetWord) {
			words.RecordMiss(prev.Decision.TargetWord)
		}
		for _, word := range mentions {
			words.RecordExposure(word.Word, step.Turn)
		}

		derived := policy.Decide(PolicyInput{
			Emotion:   step.Emotion,
			Level:     step.Level,
			Knowledge: words.Snapshot(),
			Turn:      step.Turn,
			Recent:    recent,
		})
		if derived.Action != step.Decision.Action || derived.TargetWord != step.Decision.TargetWord {
			report.Divergences = append(report.Divergences, Divergence{
				Turn:     step.Turn,
				Recorded: step.Decision,
				Derived:  derived,
			})
		}

		recent = append(recent, step.Emotion)
		prev = &steps[i]
	}

	return report, nil
}

func checkTransition(prev, next domain.TrajectoryStep) []string {
	var violations []string
	if domain.StageDistance(prev.Level.Stage, next.Level.Stage) > 1 {
		violations = append(violations, fmt.Sprintf("turn %d: stage jumped from %s to %s",
			next.Turn, prev.Level.Stage, next.Level.Stage))
	}

	after := domain.SnapshotFromEntries(next.Knowledge)
	for _, before := range prev.Knowledge {
		entry, ok := after[before.Word]
		switch {
		case !ok:
			violations = append(violations, fmt.Sprintf("turn %d: word %q disappeared", next.Turn, before.Word))
		case entry.Exposures < before.Exposures:
			violations = append(violations, fmt.Sprintf("turn %d: exposures of %q fell from %d to %d",
				next.Turn, before.Word, before.Exposures, entry.Exposures))
		case before.Mastered && !entry.Mastered:
			violations = append(violations, fmt.Sprintf("turn %d: %q lost mastery", next.Turn, before.Word))
		}
	}
	return violations
}
