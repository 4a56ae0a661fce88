package keyword

import (
	"context"
	"strings"
	"unicode"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
)

const noMatchConfidence = 0.5

// Table maps a label to the phrases that vote for it.
type Table map[domain.EmotionLabel][]string

// DefaultTable is tuned for young English speakers.
var DefaultTable = Table{
	domain.EmotionExcited:    {"wow", "awesome", "cool", "amazing", "yay", "fun", "great", "love"},
	domain.EmotionHappy:      {"happy", "good", "nice", "like", "yes", "okay", "thanks", "开心", "喜欢"},
	domain.EmotionFrustrated: {"hard", "difficult", "can't", "cannot", "wrong", "ugh", "grr", "hate"},
	domain.EmotionConfused:   {"confused", "don't know", "don't get", "what", "huh", "why", "不懂"},
	domain.EmotionBored:      {"boring", "bored", "meh", "whatever", "again"},
	domain.EmotionTired:      {"tired", "sleepy", "enough", "stop", "later", "累"},
	domain.EmotionSad:        {"sad", "miss", "lonely", "cry", "hurt", "难过"},
}

// Classifier is a deterministic rule-based classifier. It needs no network and
// never fails.
type Classifier struct {
	table Table
}

var _ ports.EmotionClassifier = (*Classifier)(nil)

func NewClassifier(table Table) *Classifier {
	if len(table) == 0 {
		table = DefaultTable
	}
	return &Classifier{table: table}
}

// Classify counts phrase hits per label. The label with most hits wins, ties
// going to the label listed first in domain.EmotionLabels, and confidence is
// the winner's share of all hits.
func (c *Classifier) Classify(ctx context.Context, utterance string) (domain.EmotionReading, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmotionReading{}, err
	}

	text := normalize(utterance)
	hits := map[domain.EmotionLabel]int{}
	total := 0
	for label, phrases := range c.table {
		for _, phrase := range phrases {
			if containsPhrase(text, phrase) {
				hits[label]++
				total++
			}
		}
	}
	if n := strings.Count(utterance, "!"); n > 0 {
		hits[domain.EmotionExcited]++
		total++
	}

	if total == 0 {
		return domain.EmotionReading{Label: domain.EmotionNeutral, Confidence: noMatchConfidence}, nil
	}

	best := domain.EmotionNeutral
	bestHits := 0
	for _, label := range domain.EmotionLabels {
		if hits[label] > bestHits {
			best = label
			bestHits = hits[label]
		}
	}

	return domain.EmotionReading{Label: best, Confidence: float64(bestHits) / float64(total)}, nil
}

// normalize lower-cases s and collapses everything but letters and
// apostrophes into single spaces, padding both ends.
func normalize(s string) string {
	var b strings.Builder
	b.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '’':
			b.WriteRune('\'')
			space = false
		case unicode.IsLetter(r) || r == '\'':
			b.WriteRune(r)
			space = false
		case !space:
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

func containsPhrase(text, phrase string) bool {
	phrase = strings.ToLower(phrase)
	for _, r := range phrase {
		if domain.IsHan(r) {
			return strings.Contains(text, phrase)
		}
	}
	return strings.Contains(text, " "+phrase+" ")
}
