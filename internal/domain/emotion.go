package domain

import (
	"math"
	"strings"
)

type EmotionLabel string

const (
	EmotionHappy      EmotionLabel = "happy"
	EmotionExcited    EmotionLabel = "excited"
	EmotionNeutral    EmotionLabel = "neutral"
	EmotionFrustrated EmotionLabel = "frustrated"
	EmotionBored      EmotionLabel = "bored"
	EmotionConfused   EmotionLabel = "confused"
	EmotionTired      EmotionLabel = "tired"
	EmotionSad        EmotionLabel = "sad"
)

// EmotionLabels lists every label in display order.
var EmotionLabels = []EmotionLabel{
	EmotionExcited,
	EmotionHappy,
	EmotionNeutral,
	EmotionConfused,
	EmotionBored,
	EmotionFrustrated,
	EmotionTired,
	EmotionSad,
}

func ParseEmotionLabel(raw string) (EmotionLabel, bool) {
	label := EmotionLabel(strings.ToLower(strings.TrimSpace(raw)))
	return label, label.Valid()
}

func (l EmotionLabel) Valid() bool {
	switch l {
	case EmotionHappy, EmotionExcited, EmotionNeutral, EmotionFrustrated,
		EmotionBored, EmotionConfused, EmotionTired, EmotionSad:
		return true
	default:
		return false
	}
}

func (l EmotionLabel) IsPositive() bool {
	return l == EmotionHappy || l == EmotionExcited
}

// IsDistressed reports labels that signal the learner is struggling rather than
// disengaged.
func (l EmotionLabel) IsDistressed() bool {
	return l == EmotionFrustrated || l == EmotionConfused || l == EmotionSad
}

// Valence maps a label onto the 0..5 scale used for trend detection.
func (l EmotionLabel) Valence() float64 {
	switch l {
	case EmotionExcited:
		return 5
	case EmotionHappy:
		return 4
	case EmotionNeutral:
		return 3
	case EmotionConfused, EmotionBored:
		return 2.5
	case EmotionFrustrated:
		return 2
	case EmotionTired:
		return 1
	case EmotionSad:
		return 0
	default:
		return 3
	}
}

type EmotionReading struct {
	Label      EmotionLabel `json:"label"`
	Confidence float64      `json:"confidence"`
}

func NeutralReading() EmotionReading {
	return EmotionReading{Label: EmotionNeutral, Confidence: 0}
}

func (r EmotionReading) Valid() bool {
	if !r.Label.Valid() {
		return false
	}
	if math.IsNaN(r.Confidence) {
		return false
	}
	return r.Confidence >= 0 && r.Confidence <= 1
}

type EmotionTrend string

const (
	TrendImproving EmotionTrend = "improving"
	TrendStable    EmotionTrend = "stable"
	TrendDeclining EmotionTrend = "declining"
)

const (
	trendWindow = 5
	trendRecent = 3
	trendBand   = 0.5
)

// TrendOf compares the mean valence of the last three readings with the older
// readings inside a five-reading window.
func TrendOf(history []EmotionReading) EmotionTrend {
	if len(history) < trendRecent {
		return TrendStable
	}

	window := history
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}

	recent := window[len(window)-trendRecent:]
	older := window[:len(window)-trendRecent]
	if len(older) == 0 {
		older = window[:1]
	}

	recentAvg := meanValence(recent)
	olderAvg := meanValence(older)

	switch {
	case recentAvg > olderAvg+trendBand:
		return TrendImproving
	case recentAvg < olderAvg-trendBand:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanValence(readings []EmotionReading) float64 {
	if len(readings) == 0 {
		return 0
	}

	var sum float64
	for _, reading := range readings {
		sum += reading.Label.Valence()
	}
	return sum / float64(len(readings))
}
