package textgen

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPacedForwardsWithinBurst(t *testing.T) {
	t.Parallel()

	next := mocks.NewMockTextGenerator(t)
	next.EXPECT().Generate(mock.Anything, domain.Prompt{Learner: "hi"}).Return("Yay!", nil).Twice()

	paced := NewPaced(next, time.Hour, 2)
	for i := 0; i < 2; i++ {
		reply, err := paced.Generate(context.Background(), domain.Prompt{Learner: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "Yay!", reply)
	}
}

func TestPacedGivesUpWhenSlotIsTooFarAway(t *testing.T) {
	t.Parallel()

	next := mocks.NewMockTextGenerator(t)
	next.EXPECT().Generate(mock.Anything, mock.Anything).Return("first", nil).Once()

	paced := NewPaced(next, time.Hour, 1)
	_, err := paced.Generate(context.Background(), domain.Prompt{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = paced.Generate(ctx, domain.Prompt{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait for generation slot")
}

func TestPacedZeroIntervalIsUnlimited(t *testing.T) {
	t.Parallel()

	next := mocks.NewMockTextGenerator(t)
	next.EXPECT().Generate(mock.Anything, mock.Anything).Return("ok", nil).Times(5)

	paced := NewPaced(next, 0, 0)
	for i := 0; i < 5; i++ {
		_, err := paced.Generate(context.Background(), domain.Prompt{})
		require.NoError(t, err)
	}
}
