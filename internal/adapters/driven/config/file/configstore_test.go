package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".rootscan", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("corpus.morphology", "/data/morphology.tsv"))

	val, ok := store.Get("corpus.morphology")
	assert.True(t, ok)
	assert.Equal(t, "/data/morphology.tsv", val)
}

func TestConfigStore_Set_UnknownKey(t *testing.T) {
	store := newTestStore(t)

	err := store.Set("openai.organisation", "qamus")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestConfigStore_Set_WrongType(t *testing.T) {
	store := newTestStore(t)

	err := store.Set("openai.model", int64(4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string")

	err = store.Set("annotate.rate_limit", "fast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number")
}

func TestConfigStore_Set_NegativeRate(t *testing.T) {
	store := newTestStore(t)

	err := store.Set("annotate.rate_limit", -1.0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestConfigStore_GetString(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("openai.model", "gpt-4o"))
	assert.Equal(t, "gpt-4o", store.GetString("openai.model"))

	// Unset key
	assert.Equal(t, "", store.GetString("openai.base_url"))

	// Numeric key reads as empty string
	require.NoError(t, store.Set("annotate.rate_limit", 2.0))
	assert.Equal(t, "", store.GetString("annotate.rate_limit"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("annotate.rate_limit", 1.5))
	assert.InDelta(t, 1.5, store.GetFloat("annotate.rate_limit"), 0.001)

	// Integers widen to float64
	require.NoError(t, store.Set("annotate.rate_limit", 2))
	assert.InDelta(t, 2.0, store.GetFloat("annotate.rate_limit"), 0.001)

	// Unset key
	store2 := newTestStore(t)
	assert.Zero(t, store2.GetFloat("annotate.rate_limit"))

	// String key reads as zero
	require.NoError(t, store.Set("openai.model", "gpt-4o"))
	assert.Zero(t, store.GetFloat("openai.model"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("annotate.rate_limit", 2.9))

	// truncates, never rounds
	assert.Equal(t, 2, store.GetInt("annotate.rate_limit"))
	assert.Equal(t, 0, store.GetInt("corpus.verses"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	val, ok := store.Get("corpus.morphology")
	assert.False(t, ok)
	assert.Nil(t, val)

	val, ok = store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("corpus.morphology", "/data/morphology.tsv"))
	require.NoError(t, store1.Set("openai.api_key", "sk-test"))
	require.NoError(t, store1.Set("annotate.rate_limit", 0.5))

	// Create new store instance - should load from file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/data/morphology.tsv", store2.GetString("corpus.morphology"))
	assert.Equal(t, "sk-test", store2.GetString("openai.api_key"))
	assert.InDelta(t, 0.5, store2.GetFloat("annotate.rate_limit"), 0.001)
}

func TestConfigStore_Load_HandEditedFile(t *testing.T) {
	tmpDir := t.TempDir()

	content := "[openai]\nmodel = \"gpt-4o\"\nfuture_key = true\n\n[annotate]\nrate_limit = 1.0\n"
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// known keys load, the unknown extra is ignored
	assert.Equal(t, "gpt-4o", store.GetString("openai.model"))
	assert.InDelta(t, 1.0, store.GetFloat("annotate.rate_limit"), 0.001)
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store := newTestStore(t)

	// Should start empty with no error
	val, ok := store.Get("openai.api_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("openai.api_key", "sk-test"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	// Store should handle empty file gracefully
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("openai.api_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			_ = store.Set("annotate.rate_limit", float64(id+1))
			_ = store.GetFloat("annotate.rate_limit")
			_ = store.GetString("corpus.morphology")
			_, _ = store.Get("openai.api_key")
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("openai.model", "gpt-4o"))
	assert.Equal(t, "gpt-4o", store.GetString("openai.model"))

	require.NoError(t, store.Set("openai.model", "gpt-4o-mini"))
	assert.Equal(t, "gpt-4o-mini", store.GetString("openai.model"))
}
