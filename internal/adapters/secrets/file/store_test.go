package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openAIKey = "sparky/openai/api_key"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "cleaned traversal", key: "sparky/../../secret", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), openAIKey, "  sk-secret \n"))

	got, err := store.Get(context.Background(), openAIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", got)

	info, err := os.Stat(filepath.Join(root, openAIKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMode), info.Mode().Perm())
}

func TestStorePutRejectsEmptyValue(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	err := store.Put(context.Background(), openAIKey, " \n")
	require.Error(t, err)
	assert.ErrorContains(t, err, "value is empty")
}

func TestStoreGetMissingIsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	_, err := store.Get(context.Background(), openAIKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), openAIKey, "sk-secret"))

	require.NoError(t, store.Delete(context.Background(), openAIKey))
	require.NoError(t, store.Delete(context.Background(), openAIKey))

	_, err := store.Get(context.Background(), openAIKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}
