package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmotionAdapterNormalisesLabel(t *testing.T) {
	t.Parallel()

	classifier := mocks.NewMockEmotionClassifier(t)
	classifier.EXPECT().Classify(mockAnyContext(), "I love cats").
		Return(domain.EmotionReading{Label: " Happy ", Confidence: 0.82}, nil)

	adapter := NewEmotionAdapter(classifier, time.Second)
	got, err := adapter.Classify(context.Background(), "I love cats")

	require.NoError(t, err)
	assert.Equal(t, domain.EmotionReading{Label: domain.EmotionHappy, Confidence: 0.82}, got)
}

func TestEmotionAdapterWrapsClassifierError(t *testing.T) {
	t.Parallel()

	classifierErr := errors.New("connection refused")
	classifier := mocks.NewMockEmotionClassifier(t)
	classifier.EXPECT().Classify(mockAnyContext(), "hi").Return(domain.EmotionReading{}, classifierErr).Once()

	adapter := NewEmotionAdapter(classifier, time.Second)
	_, err := adapter.Classify(context.Background(), "hi")

	require.ErrorIs(t, err, domain.ErrClassificationUnavailable)
	assert.ErrorIs(t, err, classifierErr)
}

func TestEmotionAdapterRejectsMalformedOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reading domain.EmotionReading
		wantErr string
	}{
		{name: "unknown label", reading: domain.EmotionReading{Label: "hangry", Confidence: 0.5}, wantErr: "unknown label"},
		{name: "confidence above one", reading: domain.EmotionReading{Label: domain.EmotionHappy, Confidence: 1.5}, wantErr: "out of range"},
		{name: "negative confidence", reading: domain.EmotionReading{Label: domain.EmotionHappy, Confidence: -0.1}, wantErr: "out of range"},
		{name: "nan confidence", reading: domain.EmotionReading{Label: domain.EmotionHappy, Confidence: math.NaN()}, wantErr: "out of range"},
		{name: "unnormalised label with bad confidence", reading: domain.EmotionReading{Label: " SAD ", Confidence: 2}, wantErr: "out of range"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			classifier := mocks.NewMockEmotionClassifier(t)
			classifier.EXPECT().Classify(mockAnyContext(), "hi").Return(tt.reading, nil)

			_, err := NewEmotionAdapter(classifier, time.Second).Classify(context.Background(), "hi")
			require.ErrorIs(t, err, domain.ErrClassificationUnavailable)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEmotionAdapterTimesOutWhenClassifierIgnoresContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	classifier := mocks.NewMockEmotionClassifier(t)
	classifier.EXPECT().Classify(mockAnyContext(), "hello").
		RunAndReturn(func(context.Context, string) (domain.EmotionReading, error) {
			<-release
			return domain.EmotionReading{Label: domain.EmotionHappy, Confidence: 1}, nil
		}).Once()

	adapter := NewEmotionAdapter(classifier, 20*time.Millisecond)

	started := time.Now()
	_, err := adapter.Classify(context.Background(), "hello")

	require.ErrorIs(t, err, domain.ErrClassificationUnavailable)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(started), time.Second)
}

func TestEmotionAdapterWithoutClassifier(t *testing.T) {
	t.Parallel()

	_, err := NewEmotionAdapter(nil, time.Second).Classify(context.Background(), "hi")
	require.ErrorIs(t, err, domain.ErrClassificationUnavailable)
}
