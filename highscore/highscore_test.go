package highscore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/cubetris/highscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	store := highscore.FileStore{Path: filepath.Join(t.TempDir(), "highscore.toml")}

	score, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, score)

	require.NoError(t, store.Save(5011))
	score, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, 5011, score)

	data, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	assert.Equal(t, "high_score = 5011\n", string(data))

	for _, bad := range []string{"not a number", "high_score = \"many\"\n"} {
		require.NoError(t, os.WriteFile(store.Path, []byte(bad), 0o644))
		_, err = store.Load()
		assert.Error(t, err, bad)
	}
}

func TestFileStoreUnwritable(t *testing.T) {
	store := highscore.FileStore{Path: filepath.Join(t.TempDir(), "missing", "highscore.toml")}
	assert.Error(t, store.Save(1))
}

func TestMemoryStore(t *testing.T) {
	var store highscore.Store = &highscore.MemoryStore{}
	score, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, score)

	require.NoError(t, store.Save(42))
	score, _ = store.Load()
	assert.Equal(t, 42, score)
}
