package application

import (
	"strings"
	"unicode"

	"github.com/bnema/sparky/internal/domain"
)

// ComplexityScorer rates a single utterance on a 0..1 scale. Implementations
// must be pure and safe for concurrent use.
type ComplexityScorer interface {
	Score(utterance string) float64
}

type ComplexityScorerFunc func(utterance string) float64

func (f ComplexityScorerFunc) Score(utterance string) float64 {
	return f(utterance)
}

const (
	wordsSaturation      = 15
	hanSaturation        = 8
	connectorSaturation  = 2
	wordsWeight          = 0.35
	hanWeight            = 0.35
	connectorWeight      = 0.15
	vocabularyRankWeight = 0.15
)

var englishConnectors = map[string]struct{}{
	"and": {}, "but": {}, "because": {}, "so": {}, "if": {}, "then": {},
	"although": {}, "when": {}, "or": {},
}

var hanConnectors = []string{"和", "也", "但是", "因为", "所以", "如果", "虽然", "然后"}

// DefaultScorer blends utterance length, Chinese character use, connectors and
// the highest catalog stage the learner reached for.
type DefaultScorer struct {
	catalog *domain.Catalog
}

func NewDefaultScorer(catalog *domain.Catalog) *DefaultScorer {
	return &DefaultScorer{catalog: catalog}
}

func (s *DefaultScorer) Score(utterance string) float64 {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return 0
	}

	hanCount := 0
	for _, r := range utterance {
		if domain.IsHan(r) {
			hanCount++
		}
	}

	words := strings.FieldsFunc(strings.ToLower(utterance), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' || domain.IsHan(r)
	})
	connectors := 0
	for _, word := range words {
		if _, ok := englishConnectors[word]; ok {
			connectors++
		}
	}
	for _, connector := range hanConnectors {
		connectors += strings.Count(utterance, connector)
	}

	rank := 0.0
	if s.catalog != nil {
		for _, word := range s.catalog.Mentions(utterance) {
			if r := float64(word.Stage-domain.MinStage) / float64(domain.MaxStage-domain.MinStage); r > rank {
				rank = r
			}
		}
	}

	score := wordsWeight*saturate(len(words), wordsSaturation) +
		hanWeight*saturate(hanCount, hanSaturation) +
		connectorWeight*saturate(connectors, connectorSaturation) +
		vocabularyRankWeight*rank

	return clamp01(score)
}

func saturate(n, limit int) float64 {
	if n >= limit {
		return 1
	}
	return float64(n) / float64(limit)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
