package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
)

// EmotionAdapter wraps a classifier with a bounded single attempt and output
// validation. Every failure surfaces as domain.ErrClassificationUnavailable.
// The deadline holds even when the classifier ignores its context.
type EmotionAdapter struct {
	classifier ports.EmotionClassifier
	timeout    time.Duration
}

func NewEmotionAdapter(classifier ports.EmotionClassifier, timeout time.Duration) *EmotionAdapter {
	return &EmotionAdapter{classifier: classifier, timeout: timeout}
}

func (a *EmotionAdapter) Classify(ctx context.Context, utterance string) (domain.EmotionReading, error) {
	if a.classifier == nil {
		return domain.EmotionReading{}, fmt.Errorf("%w: no classifier configured", domain.ErrClassificationUnavailable)
	}

	reading, err := callBounded(ctx, a.timeout, func(callCtx context.Context) (domain.EmotionReading, error) {
		return a.classifier.Classify(callCtx, utterance)
	})
	if err != nil {
		return domain.EmotionReading{}, fmt.Errorf("%w: %w", domain.ErrClassificationUnavailable, err)
	}

	label, _ := domain.ParseEmotionLabel(string(reading.Label))
	normalized := domain.EmotionReading{Label: label, Confidence: reading.Confidence}
	if !normalized.Valid() {
		if !label.Valid() {
			return domain.EmotionReading{}, fmt.Errorf("%w: unknown label %q", domain.ErrClassificationUnavailable, reading.Label)
		}
		return domain.EmotionReading{}, fmt.Errorf("%w: confidence %v out of range", domain.ErrClassificationUnavailable, reading.Confidence)
	}

	return normalized, nil
}
