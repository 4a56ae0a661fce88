package domain

import "time"

// Signal names a collaborator whose output was replaced by a fallback.
type Signal string

const (
	SignalEmotion    Signal = "emotion"
	SignalGeneration Signal = "generation"
)

type TrajectoryStep struct {
	Turn        int            `json:"turn"`
	At          time.Time      `json:"at"`
	LearnerText string         `json:"learner_text"`
	Emotion     EmotionReading `json:"emotion"`
	Level       LanguageLevel  `json:"level"`
	Decision    Decision       `json:"decision"`
	Reply       string         `json:"reply"`
	Knowledge   []WordEntry    `json:"knowledge"`
	Degraded    []Signal       `json:"degraded,omitempty"`
}

func (s TrajectoryStep) IsDegraded(signal Signal) bool {
	for _, degraded := range s.Degraded {
		if degraded == signal {
			return true
		}
	}
	return false
}

type TrajectoryStats struct {
	Steps                int                      `json:"steps"`
	EmotionCounts        map[EmotionLabel]int     `json:"emotion_counts"`
	EmotionDistribution  map[EmotionLabel]float64 `json:"emotion_distribution"`
	PositiveEmotionRatio float64                  `json:"positive_emotion_ratio"`
	ActionCounts         map[Action]int           `json:"action_counts"`
	DegradedCounts       map[Signal]int           `json:"degraded_counts"`
	StartedAt            time.Time                `json:"started_at"`
	EndedAt              time.Time                `json:"ended_at"`
	Duration             time.Duration            `json:"duration"`
	FinalLevel           LanguageLevel            `json:"final_level"`
	WordsKnown           int                      `json:"words_known"`
	WordsMastered        int                      `json:"words_mastered"`
}

func StatsOf(steps []TrajectoryStep) TrajectoryStats {
	stats := TrajectoryStats{
		EmotionCounts:       map[EmotionLabel]int{},
		EmotionDistribution: map[EmotionLabel]float64{},
		ActionCounts:        map[Action]int{},
		DegradedCounts:      map[Signal]int{},
	}
	if len(steps) == 0 {
		return stats
	}

	positive := 0
	for _, step := range steps {
		stats.EmotionCounts[step.Emotion.Label]++
		stats.ActionCounts[step.Decision.Action]++
		for _, signal := range step.Degraded {
			stats.DegradedCounts[signal]++
		}
		if step.Emotion.Label.IsPositive() {
			positive++
		}
	}

	stats.Steps = len(steps)
	for label, count := range stats.EmotionCounts {
		stats.EmotionDistribution[label] = float64(count) / float64(len(steps))
	}
	stats.PositiveEmotionRatio = float64(positive) / float64(len(steps))

	first, last := steps[0], steps[len(steps)-1]
	stats.StartedAt = first.At
	stats.EndedAt = last.At
	stats.Duration = last.At.Sub(first.At)
	stats.FinalLevel = last.Level

	knowledge := SnapshotFromEntries(last.Knowledge)
	stats.WordsKnown = len(knowledge)
	stats.WordsMastered = knowledge.MasteredCount()

	return stats
}
