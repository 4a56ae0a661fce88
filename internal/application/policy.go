package application

import (
	"fmt"
	"sort"

	"github.com/bnema/sparky/internal/domain"
)

type PolicyInput struct {
	Emotion   domain.EmotionReading
	Level     domain.LanguageLevel
	Knowledge domain.KnowledgeSnapshot
	Turn      int
	// Recent holds the readings of earlier turns, oldest first.
	Recent []domain.EmotionReading
}

// PolicyGenerator is the teaching decision table. Rules are evaluated in
// order and the first match wins.
type PolicyGenerator struct {
	words   WordsConfig
	policy  PolicyConfig
	catalog *domain.Catalog
}

func NewPolicyGenerator(words WordsConfig, policy PolicyConfig, catalog *domain.Catalog) *PolicyGenerator {
	return &PolicyGenerator{words: words, policy: policy, catalog: catalog}
}

func (p *PolicyGenerator) Decide(in PolicyInput) domain.Decision {
	if decision, ok := p.distress(in); ok {
		return decision
	}
	if decision, ok := p.review(in); ok {
		return decision
	}
	if decision, ok := p.introduce(in); ok {
		return decision
	}
	if decision, ok := p.escalate(in); ok {
		return decision
	}
	return domain.Decision{
		Action:    domain.ActionContinue,
		Rationale: fmt.Sprintf("no rule fired at %s with %d known words", in.Level.Stage, len(in.Knowledge)),
	}
}

func (p *PolicyGenerator) distress(in PolicyInput) (domain.Decision, bool) {
	if in.Emotion.Confidence < p.policy.DistressConfidence {
		return domain.Decision{}, false
	}

	var action domain.Action
	switch in.Emotion.Label {
	case domain.EmotionFrustrated, domain.EmotionSad:
		action = domain.ActionEncourage
	case domain.EmotionBored, domain.EmotionTired, domain.EmotionConfused:
		action = domain.ActionSimplify
	default:
		return domain.Decision{}, false
	}

	return domain.Decision{
		Action:    action,
		Rationale: fmt.Sprintf("learner is %s (confidence %.2f)", in.Emotion.Label, in.Emotion.Confidence),
	}, true
}

func (p *PolicyGenerator) review(in PolicyInput) (domain.Decision, bool) {
	var due []domain.WordEntry
	for _, entry := range in.Knowledge {
		if in.Turn-entry.LastSeenTurn > p.words.ReviewAfterTurns {
			due = append(due, entry)
		}
	}
	if len(due) == 0 {
		return domain.Decision{}, false
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].Mastered != due[j].Mastered {
			return !due[i].Mastered
		}
		if due[i].LastSeenTurn != due[j].LastSeenTurn {
			return due[i].LastSeenTurn < due[j].LastSeenTurn
		}
		return due[i].Word < due[j].Word
	})

	target := due[0]
	return domain.Decision{
		Action:     domain.ActionReviewWord,
		TargetWord: target.Word,
		Rationale: fmt.Sprintf("%q last seen at turn %d, %d turns ago (review after %d)",
			target.Word, target.LastSeenTurn, in.Turn-target.LastSeenTurn, p.words.ReviewAfterTurns),
	}, true
}

func (p *PolicyGenerator) introduce(in PolicyInput) (domain.Decision, bool) {
	if p.catalog == nil {
		return domain.Decision{}, false
	}

	var fresh []domain.CatalogWord
	for _, word := range p.catalog.Reachable(in.Level.Stage) {
		if !in.Knowledge.Has(word.Word) {
			fresh = append(fresh, word)
		}
	}
	if len(fresh) == 0 {
		return domain.Decision{}, false
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		pi, pj := p.preferred(fresh[i]), p.preferred(fresh[j])
		if pi != pj {
			return pi
		}
		return fresh[i].Stage < fresh[j].Stage
	})

	target := fresh[0]
	return domain.Decision{
		Action:     domain.ActionIntroduceWord,
		TargetWord: target.Word,
		Rationale: fmt.Sprintf("%q (%s, %s) is new and reachable at %s",
			target.Word, target.English, target.Category, in.Level.Stage),
	}, true
}

func (p *PolicyGenerator) preferred(word domain.CatalogWord) bool {
	return p.words.Category != "" && word.Category == p.words.Category
}

func (p *PolicyGenerator) escalate(in PolicyInput) (domain.Decision, bool) {
	if p.catalog == nil || in.Level.Stage >= domain.MaxStage {
		return domain.Decision{}, false
	}

	reachable := p.catalog.Reachable(in.Level.Stage)
	if len(reachable) == 0 {
		return domain.Decision{}, false
	}
	for _, word := range reachable {
		if entry, ok := in.Knowledge[word.Word]; !ok || !entry.Mastered {
			return domain.Decision{}, false
		}
	}

	streak := p.policy.PositiveStreak
	readings := append(append([]domain.EmotionReading{}, in.Recent...), in.Emotion)
	if len(readings) < streak {
		return domain.Decision{}, false
	}
	for _, reading := range readings[len(readings)-streak:] {
		if !reading.Label.IsPositive() {
			return domain.Decision{}, false
		}
	}

	return domain.Decision{
		Action: domain.ActionEscalate,
		Rationale: fmt.Sprintf("all %d words reachable at %s are mastered and the last %d readings were positive",
			len(reachable), in.Level.Stage, streak),
	}, true
}
