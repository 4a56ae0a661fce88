package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	catalog, err := domain.NewCatalog([]domain.CatalogWord{
		{Word: "猫", Pinyin: "māo", English: "cat", Category: "animals", Stage: domain.StageL1},
		{Word: "狗", Pinyin: "gǒu", English: "dog", Category: "animals", Stage: domain.StageL1},
		{Word: "水", Pinyin: "shuǐ", English: "water", Category: "food", Stage: domain.StageL1},
		{Word: "苹果", Pinyin: "píngguǒ", English: "apple", Category: "food", Stage: domain.StageL2},
	})
	require.NoError(t, err)
	return catalog
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type classifierFunc func(ctx context.Context, utterance string) (domain.EmotionReading, error)

func (f classifierFunc) Classify(ctx context.Context, utterance string) (domain.EmotionReading, error) {
	return f(ctx, utterance)
}

type generatorFunc func(ctx context.Context, prompt domain.Prompt) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	return f(ctx, prompt)
}

func constantEmotion(label domain.EmotionLabel, confidence float64) classifierFunc {
	return func(context.Context, string) (domain.EmotionReading, error) {
		return domain.EmotionReading{Label: label, Confidence: confidence}, nil
	}
}

func echoGenerator() generatorFunc {
	return func(_ context.Context, prompt domain.Prompt) (string, error) {
		return "reply for " + string(prompt.Action), nil
	}
}
