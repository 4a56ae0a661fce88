package env

import (
	"context"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWith(vars map[string]string) *Store {
	return &Store{lookup: func(name string) (string, bool) {
		value, ok := vars[name]
		return value, ok
	}}
}

func TestStoreGetPrefersSparkyVariable(t *testing.T) {
	t.Parallel()

	store := storeWith(map[string]string{
		"SPARKY_OPENAI_API_KEY": " sk-sparky \n",
		"OPENAI_API_KEY":        "sk-global",
	})

	value, err := store.Get(context.Background(), "sparky/openai/api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-sparky", value)
}

func TestStoreGetFallsBackToConventionalVariables(t *testing.T) {
	t.Parallel()

	store := storeWith(map[string]string{
		"SPARKY_GEMINI_API_KEY": "  ",
		"GOOGLE_API_KEY":        "g-key",
	})

	value, err := store.Get(context.Background(), "sparky/gemini/api_key")
	require.NoError(t, err)
	assert.Equal(t, "g-key", value)
}

func TestStoreGetNotFound(t *testing.T) {
	t.Parallel()

	store := storeWith(nil)

	_, err := store.Get(context.Background(), "sparky/huggingface/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	_, err = store.Get(context.Background(), "not/a/key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreIsReadOnly(t *testing.T) {
	t.Parallel()

	store := storeWith(nil)
	require.ErrorIs(t, store.Put(context.Background(), "sparky/openai/api_key", "x"), ErrReadOnly)
	require.ErrorIs(t, store.Delete(context.Background(), "sparky/openai/api_key"), ErrReadOnly)
}

func TestVariables(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"SPARKY_HUGGINGFACE_API_KEY", "HF_TOKEN", "HUGGINGFACEHUB_API_TOKEN"}, Variables("huggingface"))
}
