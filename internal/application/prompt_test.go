package application

import (
	"fmt"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilderBuild(t *testing.T) {
	t.Parallel()

	builder := NewPromptBuilder(testCatalog(t), 2)
	history := make([]domain.TrajectoryStep, 0, 3)
	for i := 0; i < 3; i++ {
		history = append(history, domain.TrajectoryStep{
			Turn:        i,
			LearnerText: fmt.Sprintf("learner %d", i),
			Reply:       fmt.Sprintf("tutor %d", i),
		})
	}

	prompt := builder.Build(PromptContext{
		Learner:  "I want an apple",
		Decision: domain.Decision{Action: domain.ActionIntroduceWord, TargetWord: "苹果", Rationale: "new word"},
		Emotion:  domain.EmotionReading{Label: domain.EmotionHappy, Confidence: 0.9},
		Trend:    domain.TrendImproving,
		Level:    domain.NewLanguageLevel(domain.StageL2),
		History:  history,
	})

	assert.Equal(t, domain.ActionIntroduceWord, prompt.Action)
	assert.Equal(t, "I want an apple", prompt.Learner)
	assert.Contains(t, prompt.System, "Sparky")
	assert.Contains(t, prompt.System, "L2 (Basic Expression)")
	assert.Contains(t, prompt.System, "happy")
	assert.Contains(t, prompt.System, "improving")
	assert.Contains(t, prompt.Instruction, "'苹果' (píngguǒ, meaning apple)")
	assert.Contains(t, prompt.Instruction, "new word")
	assert.Equal(t, []domain.Exchange{
		{Learner: "learner 1", Tutor: "tutor 1"},
		{Learner: "learner 2", Tutor: "tutor 2"},
	}, prompt.Excerpt)
}

func TestPromptBuilderWithoutExcerpt(t *testing.T) {
	t.Parallel()

	builder := NewPromptBuilder(testCatalog(t), 0)
	prompt := builder.Build(PromptContext{
		Decision: domain.Decision{Action: domain.ActionContinue},
		Level:    domain.NewLanguageLevel(domain.StageL1),
		History:  []domain.TrajectoryStep{{LearnerText: "hi", Reply: "hello"}},
	})

	assert.Nil(t, prompt.Excerpt)
}

func TestFallbackReplyCoversEveryAction(t *testing.T) {
	t.Parallel()

	builder := NewPromptBuilder(testCatalog(t), 4)
	seen := map[string]domain.Action{}
	for _, action := range domain.Actions {
		decision := domain.Decision{Action: action}
		if action.TargetsWord() {
			decision.TargetWord = "猫"
		}

		reply := builder.FallbackReply(decision)
		require.NotEmpty(t, reply, action)
		require.NotContains(t, seen, reply, "%s reuses the reply of %s", action, seen[reply])
		seen[reply] = action

		assert.Equal(t, reply, builder.FallbackReply(decision))
	}

	assert.Contains(t, builder.FallbackReply(domain.Decision{Action: domain.ActionReviewWord, TargetWord: "猫"}), "māo")
}
