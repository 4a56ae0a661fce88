package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	portmocks "github.com/bnema/sparky/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const openAIKey = "sparky/openai/api_key"

func TestNewStoreCheckedRejectsMissingStores(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked()
	require.ErrorIs(t, err, errNoStores)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "secret store 1 is nil")
}

func TestStoreGetStopsAtFirstHit(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	third := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second, third)

	first.EXPECT().Get(mock.Anything, openAIKey).Return("", domain.ErrSecretNotFound).Once()
	second.EXPECT().Get(mock.Anything, openAIKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), openAIKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetJoinsErrorsWhenEveryBackendFails(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, openAIKey).Return("", errors.New("pass failed")).Once()
	second.EXPECT().Get(mock.Anything, openAIKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), openAIKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "backend 0 get: pass failed")
	assert.ErrorContains(t, err, "backend 1 get")
}

func TestStoreGetDoesNotFallBackOnCanceledContext(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second)

	first.EXPECT().Get(mock.Anything, openAIKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), openAIKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutSkipsBackendsThatRefuse(t *testing.T) {
	t.Parallel()

	readOnly := portmocks.NewMockSecretStore(t)
	pass := portmocks.NewMockSecretStore(t)
	file := portmocks.NewMockSecretStore(t)
	store := NewStore(readOnly, pass, file)

	readOnly.EXPECT().Put(mock.Anything, openAIKey, "sk-1").Return(errors.New("read-only")).Once()
	pass.EXPECT().Put(mock.Anything, openAIKey, "sk-1").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), openAIKey, "sk-1"))
}

func TestStorePutFailsWhenNoBackendAccepts(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	store := NewStore(first, second)

	first.EXPECT().Put(mock.Anything, openAIKey, "sk-1").Return(errors.New("read-only")).Once()
	second.EXPECT().Put(mock.Anything, openAIKey, "sk-1").Return(errors.New("disk full")).Once()

	err := store.Put(context.Background(), openAIKey, "sk-1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "read-only")
	assert.ErrorContains(t, err, "disk full")
}

func TestStoreDeleteClearsEveryBackend(t *testing.T) {
	t.Parallel()

	readOnly := portmocks.NewMockSecretStore(t)
	pass := portmocks.NewMockSecretStore(t)
	file := portmocks.NewMockSecretStore(t)
	store := NewStore(readOnly, pass, file)

	readOnly.EXPECT().Delete(mock.Anything, openAIKey).Return(errors.New("read-only")).Once()
	pass.EXPECT().Delete(mock.Anything, openAIKey).Return(nil).Once()
	file.EXPECT().Delete(mock.Anything, openAIKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), openAIKey))
}

func TestStoreDeleteFailsWhenNothingWasDeleted(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	store := NewStore(first)

	first.EXPECT().Delete(mock.Anything, openAIKey).Return(errors.New("pass failed")).Once()

	err := store.Delete(context.Background(), openAIKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "backend 0 delete: pass failed")
}

func TestNewDefaultWithoutPassUsesFiles(t *testing.T) {
	for _, name := range []string{"SPARKY_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(name, "")
	}
	ctx := context.Background()
	store := NewDefault(t.TempDir(), false)
	require.Len(t, store.stores, 2)

	require.NoError(t, store.Put(ctx, "sparky/gemini/api_key", "gm-key"))
	value, err := store.Get(ctx, "sparky/gemini/api_key")
	require.NoError(t, err)
	assert.Equal(t, "gm-key", value)

	t.Setenv("GEMINI_API_KEY", "from-env")
	value, err = store.Get(ctx, "sparky/gemini/api_key")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, store.Delete(ctx, "sparky/gemini/api_key"))
	_, err = store.Get(ctx, "sparky/gemini/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}
