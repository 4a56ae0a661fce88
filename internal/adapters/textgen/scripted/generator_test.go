package scripted

import (
	"context"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorReplaysScriptThenCannedLines(t *testing.T) {
	t.Parallel()

	generator := NewGenerator("first", "second")
	prompt := domain.Prompt{Action: domain.ActionContinue}

	var got []string
	for i := 0; i < 5; i++ {
		reply, err := generator.Generate(context.Background(), prompt)
		require.NoError(t, err)
		got = append(got, reply)
	}

	assert.Equal(t, []string{
		"first",
		"second",
		"Yay! Tell me more!",
		"Ooh, and then what happened?",
		"Yay! Tell me more!",
	}, got)
}

func TestGeneratorCoversEveryAction(t *testing.T) {
	t.Parallel()

	generator := NewGenerator()
	for _, action := range domain.Actions {
		reply, err := generator.Generate(context.Background(), domain.Prompt{Action: action})
		require.NoError(t, err)
		assert.NotEmpty(t, reply, action)
	}
}

func TestGeneratorUnknownActionContinues(t *testing.T) {
	t.Parallel()

	reply, err := NewGenerator().Generate(context.Background(), domain.Prompt{Action: "dance"})
	require.NoError(t, err)
	assert.Equal(t, "Yay! Tell me more!", reply)
}
