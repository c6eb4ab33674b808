package artifacts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundraising-service/internal/core/domain"
)

func TestFileStore_SaveAndLoad(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save("logistic", []byte(`{"weights":[1,2]}`)))

	blob, err := store.Load("logistic")
	require.NoError(t, err)
	assert.Equal(t, `{"weights":[1,2]}`, string(blob))
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Load("forest")
	assert.True(t, errors.Is(err, domain.ErrModelNotTrained))
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save("forest", []byte("old")))
	require.NoError(t, store.Save("forest", []byte("new")))

	blob, err := store.Load("forest")
	require.NoError(t, err)
	assert.Equal(t, "new", string(blob))
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models", "nested")
	store := NewFileStore(dir)

	require.NoError(t, store.Save("logistic", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "logistic.json"))
	assert.NoError(t, err)
}

func TestFileStore_FamiliesAreIndependent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save("logistic", []byte("lr")))
	require.NoError(t, store.Save("forest", []byte("rf")))

	blob, err := store.Load("logistic")
	require.NoError(t, err)
	assert.Equal(t, "lr", string(blob))

	blob, err = store.Load("forest")
	require.NoError(t, err)
	assert.Equal(t, "rf", string(blob))
}
