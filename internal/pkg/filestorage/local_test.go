package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStorageCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")

	ls, err := NewLocalStorage(root)
	require.NoError(t, err)
	assert.Equal(t, root, ls.BasePath())
	assert.DirExists(t, root)
}

func TestEnsureDateDir(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	dir, err := ls.EnsureDateDir()
	require.NoError(t, err)
	assert.DirExists(t, dir)

	now := time.Now()
	expected := filepath.Join(ls.BasePath(),
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
	)
	assert.Equal(t, expected, dir)

	// Repeat call is idempotent.
	again, err := ls.EnsureDateDir()
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestEnsureSubDir(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	dir, err := ls.EnsureSubDir("faculty")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ls.BasePath(), "faculty"), dir)
	assert.DirExists(t, dir)
}

func TestStoreExistsRemove(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	fh := makeFileHeader(t, "notes.pdf", pdfContent)
	dest := filepath.Join(ls.BasePath(), "notes.pdf")

	require.NoError(t, ls.Store(fh, dest))
	assert.True(t, ls.Exists(dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, pdfContent, content)

	require.NoError(t, ls.Remove(dest))
	assert.False(t, ls.Exists(dest))
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, ls.Remove(filepath.Join(ls.BasePath(), "never-existed.pdf")))
	assert.NoError(t, ls.Remove(""))
}
