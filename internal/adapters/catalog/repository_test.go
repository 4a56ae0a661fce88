package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	require.NoError(t, err)
	require.Greater(t, catalog.Len(), 10)

	cat, ok := catalog.Lookup("猫")
	require.True(t, ok)
	assert.Equal(t, "māo", cat.Pinyin)
	assert.Equal(t, "animals", cat.Category)
	assert.Equal(t, domain.StageL1, cat.Stage)
	assert.Equal(t, []string{"我有一只猫。"}, cat.Examples)

	for _, stage := range domain.Stages {
		assert.NotEmpty(t, catalog.Reachable(stage), stage.String())
	}
	assert.Less(t, len(catalog.Reachable(domain.StageL1)), catalog.Len())
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	t.Parallel()

	catalog, err := Load(context.Background(), " ")
	require.NoError(t, err)

	builtIn, err := Default()
	require.NoError(t, err)
	assert.Equal(t, builtIn.Words(), catalog.Words())
}

func TestSaveLoadRoundTripsBothFormats(t *testing.T) {
	t.Parallel()

	words := []domain.CatalogWord{
		{Word: "猫", Pinyin: "māo", English: "cat", Category: "animals", Stage: domain.StageL1, Emoji: "🐱", Examples: []string{"我有一只猫。"}},
		{Word: "朋友", Pinyin: "péngyou", English: "friend", Category: "family", Stage: domain.StageL3},
	}

	for _, name := range []string{"bank.toml", "bank.yaml", "bank.yml"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, Save(context.Background(), path, words))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(catalogFileMode), info.Mode().Perm())

			catalog, err := Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, words, catalog.Words())
		})
	}
}

func TestLoadYAMLWithoutStageDefaultsToFirstStage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("words:\n  - word: 鸟\n    pinyin: niǎo\n    english: bird\n    category: animals\n"), 0o600))

	catalog, err := Load(context.Background(), path)
	require.NoError(t, err)

	bird, ok := catalog.Lookup("鸟")
	require.True(t, ok)
	assert.Equal(t, domain.StageL1, bird.Stage)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	testCases := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "unknown extension", path: write("bank.json", "{}"), wantErr: "unsupported catalog file extension"},
		{name: "future schema", path: write("future.toml", "version = 9\n"), wantErr: "unsupported catalog schema version 9"},
		{name: "bad stage", path: write("stage.toml", "[[words]]\nword = \"猫\"\nstage = \"L9\"\n"), wantErr: "unknown language stage"},
		{name: "empty", path: write("empty.toml", "version = 1\n"), wantErr: domain.ErrEmptyCatalog.Error()},
		{name: "duplicate", path: write("dup.yaml", "words:\n  - word: 猫\n  - word: 猫\n"), wantErr: "duplicated"},
		{name: "malformed", path: write("bad.toml", "[[words]\n"), wantErr: "decode catalog file"},
		{name: "missing", path: filepath.Join(dir, "missing.toml"), wantErr: "read catalog file"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(context.Background(), tc.path)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSaveRejectsInvalidWords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bank.toml")
	err := Save(context.Background(), path, nil)
	require.ErrorIs(t, err, domain.ErrEmptyCatalog)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestLoadHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, "bank.toml")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, Save(ctx, "bank.toml", nil), context.Canceled)
}

func TestConcurrentSavesLeaveAValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bank.toml")
	builtIn, err := Default()
	require.NoError(t, err)
	words := builtIn.Words()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, Save(context.Background(), path, words[:n]))
		}(i)
	}
	wg.Wait()

	catalog, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, catalog.Len(), 1)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".catalog-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
