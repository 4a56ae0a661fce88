package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActions(t *testing.T) {
	for _, action := range Actions {
		assert.True(t, action.Valid(), action)
	}
	assert.False(t, Action("dance").Valid())

	assert.True(t, ActionIntroduceWord.TargetsWord())
	assert.True(t, ActionReviewWord.TargetsWord())
	assert.False(t, ActionEncourage.TargetsWord())
	assert.False(t, ActionEscalate.TargetsWord())
}
