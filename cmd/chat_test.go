package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithoutSessionEnded(t *testing.T) {
	flushErr := errors.New("flush trajectory: disk full")

	assert.NoError(t, withoutSessionEnded(nil))
	assert.NoError(t, withoutSessionEnded(domain.ErrSessionEnded))
	assert.NoError(t, withoutSessionEnded(fmt.Errorf("%w: time budget spent", domain.ErrSessionEnded)))

	err := withoutSessionEnded(errors.Join(domain.ErrSessionEnded, flushErr))
	require.ErrorIs(t, err, flushErr)
	assert.NotErrorIs(t, err, domain.ErrSessionEnded)

	assert.Equal(t, flushErr, withoutSessionEnded(flushErr))
}
