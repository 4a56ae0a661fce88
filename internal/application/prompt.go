package application

import (
	"fmt"
	"strings"

	"github.com/bnema/sparky/internal/domain"
)

const persona = `You are "Sparky", a bright orange dinosaur toy with a warm glowing flame on your head.
You live in Shining Valley and you are the child's best friend and play buddy.
You cannot see, so you never describe visual details; talk about sounds, feelings, tastes and actions.
Your friend is a 3-10 year old English-speaking child who is getting familiar with Mandarin through play.`

const rules = `Rules:
- Keep every reply under 25 words.
- Speak English and sprinkle Mandarin in naturally, written as '苹果' (píngguǒ) followed by the meaning.
- React warmly to the child's mood. Never sound like a teacher and never drill.`

var levelInstructions = map[domain.Stage]string{
	domain.StageL1: "Use single, very simple words (妈妈, 水, 吃, 玩) and celebrate any attempt.",
	domain.StageL2: "Use short phrases like 我喜欢 (I like) or 真好 (so good) inside the game.",
	domain.StageL3: "Tell tiny mixed-language stories and use connectors like 和 (and) and 也 (also).",
	domain.StageL4: "Keep a natural back-and-forth and use feeling words like 开心 (happy) and 兴奋 (excited).",
	domain.StageL5: "Tell whole adventures and use connectors like 虽然...但是 and 如果...就.",
}

// PromptContext is everything a prompt is derived from.
type PromptContext struct {
	Learner  string
	Decision domain.Decision
	Emotion  domain.EmotionReading
	Trend    domain.EmotionTrend
	Level    domain.LanguageLevel
	History  []domain.TrajectoryStep
}

type PromptBuilder struct {
	catalog      *domain.Catalog
	excerptTurns int
}

func NewPromptBuilder(catalog *domain.Catalog, excerptTurns int) *PromptBuilder {
	return &PromptBuilder{catalog: catalog, excerptTurns: excerptTurns}
}

func (b *PromptBuilder) Build(pc PromptContext) domain.Prompt {
	var system strings.Builder
	system.WriteString(persona)
	system.WriteString("\n\n")
	system.WriteString(rules)
	system.WriteString("\n\n")
	fmt.Fprintf(&system, "Language level %s (%s): %s\n", pc.Level.Stage, pc.Level.Stage.Title(), levelInstructions[pc.Level.Stage])
	fmt.Fprintf(&system, "Current emotion: %s (confidence %.2f, trend %s)", pc.Emotion.Label, pc.Emotion.Confidence, pc.Trend)

	return domain.Prompt{
		System:      system.String(),
		Instruction: b.instruction(pc.Decision),
		Excerpt:     b.excerpt(pc.History),
		Learner:     pc.Learner,
		Action:      pc.Decision.Action,
	}
}

func (b *PromptBuilder) instruction(decision domain.Decision) string {
	word := b.describe(decision.TargetWord)

	var task string
	switch decision.Action {
	case domain.ActionIntroduceWord:
		task = fmt.Sprintf("Playfully share the new word %s.", word)
	case domain.ActionReviewWord:
		task = fmt.Sprintf("Bring back the word %s in a game so your friend hears it again.", word)
	case domain.ActionEncourage:
		task = "Comfort your friend and cheer them on. Do not introduce anything new."
	case domain.ActionSimplify:
		task = "Make things easier: use plain English with at most one familiar Mandarin word."
	case domain.ActionEscalate:
		task = "Your friend is doing great. Try a slightly longer Mandarin phrase."
	default:
		task = "Keep chatting and playing. Follow your friend's lead."
	}

	return fmt.Sprintf("%s\nWhy: %s", task, decision.Rationale)
}

func (b *PromptBuilder) describe(word string) string {
	if word == "" {
		return "of your choice"
	}
	if b.catalog != nil {
		if entry, ok := b.catalog.Lookup(word); ok {
			return fmt.Sprintf("'%s' (%s, meaning %s)", entry.Word, entry.Pinyin, entry.English)
		}
	}
	return fmt.Sprintf("'%s'", word)
}

func (b *PromptBuilder) excerpt(history []domain.TrajectoryStep) []domain.Exchange {
	if b.excerptTurns <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > b.excerptTurns {
		history = history[len(history)-b.excerptTurns:]
	}

	out := make([]domain.Exchange, 0, len(history))
	for _, step := range history {
		out = append(out, domain.Exchange{Learner: step.LearnerText, Tutor: step.Reply})
	}
	return out
}

// FallbackReply is the templated reply used when the generator is
// unavailable. It depends only on the decision.
func (b *PromptBuilder) FallbackReply(decision domain.Decision) string {
	word := decision.TargetWord
	if b.catalog != nil {
		if entry, ok := b.catalog.Lookup(word); ok {
			word = fmt.Sprintf("%s (%s) means %s", entry.Word, entry.Pinyin, entry.English)
		}
	}

	switch decision.Action {
	case domain.ActionIntroduceWord:
		if word != "" {
			return fmt.Sprintf("Ooh, a new Shining Valley word! %s!", word)
		}
		return "Ooh, I know a new Shining Valley word! Want to hear it?"
	case domain.ActionReviewWord:
		if word != "" {
			return fmt.Sprintf("Remember this one? %s! Can you say it with me?", word)
		}
		return "Let's play with a word we already know!"
	case domain.ActionEncourage:
		return "You're doing amazing! 加油 (jiāyóu)! I'm right here with you."
	case domain.ActionSimplify:
		return "Let's keep it super easy. Want to play a little game?"
	case domain.ActionEscalate:
		return "Wow, you're so good at this! Ready for a bigger adventure?"
	default:
		return "Yay! Tell me more, buddy!"
	}
}
