package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirectoryImageFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("jpg-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	files, err := LoadDirectoryImageFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2, "only image extensions should be picked up")

	assert.Equal(t, filepath.Join(dir, "a.jpg"), files[0].Path, "files should be sorted by name")
	assert.Equal(t, []byte("jpg-bytes"), files[0].Data)
	assert.Equal(t, filepath.Join(dir, "b.png"), files[1].Path)
}

func TestLoadDirectoryImageFilesMissingDir(t *testing.T) {
	_, err := LoadDirectoryImageFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadDirectoryImageFilesEmpty(t *testing.T) {
	files, err := LoadDirectoryImageFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
