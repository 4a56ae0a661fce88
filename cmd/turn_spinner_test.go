package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTurnSpinnerWaitsForTurn(t *testing.T) {
	var out bytes.Buffer
	reply := ""

	err := runTurnSpinner(context.Background(), &out, "thinking", func(context.Context) error {
		time.Sleep(20 * time.Millisecond)
		reply = "你好"
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "你好", reply)
}

func TestRunTurnSpinnerReturnsTurnError(t *testing.T) {
	errTurn := errors.New("turn failed")

	err := runTurnSpinner(context.Background(), &bytes.Buffer{}, "thinking", func(context.Context) error {
		return errTurn
	})

	require.ErrorIs(t, err, errTurn)
}

func TestRunTurnSpinnerIgnoresCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finished := false
	err := runTurnSpinner(ctx, &bytes.Buffer{}, "thinking", func(context.Context) error {
		finished = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, finished)
}

func TestTurnSpinnerModelQuitsWhenTurnDone(t *testing.T) {
	model := newTurnSpinnerModel("thinking")
	assert.Contains(t, model.View(), "thinking")

	next, cmd := model.Update(turnDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}
