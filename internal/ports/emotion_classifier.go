package ports

import (
	"context"

	"github.com/bnema/sparky/internal/domain"
)

// EmotionClassifier turns a learner utterance into an emotion reading. Calls may
// block on a remote model; callers bound them with a context deadline.
type EmotionClassifier interface {
	Classify(ctx context.Context, utterance string) (domain.EmotionReading, error)
}
