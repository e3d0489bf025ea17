package services

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSaveFile(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	filename, path, err := storage.SaveFile("resume.pdf", []byte("content"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "resume_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.Equal(t, path, storage.GetFilePath(filename))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestStorageSaveFileUniqueNames(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	first, _, err := storage.SaveFile("resume.pdf", []byte("a"))
	require.NoError(t, err)
	second, _, err := storage.SaveFile("resume.pdf", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStorageSaveFileEmptyBaseName(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	filename, _, err := storage.SaveFile(".pdf", []byte("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "resume_"))
}

func TestStorageDeleteFile(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	filename, path, err := storage.SaveFile("a.txt", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(filename))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.Error(t, storage.DeleteFile("never-existed.txt"))
}

func TestStorageListFiles(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	files, err := storage.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files)

	_, _, err = storage.SaveFile("a.txt", []byte("aaa"))
	require.NoError(t, err)
	_, _, err = storage.SaveFile("b.txt", []byte("bb"))
	require.NoError(t, err)

	files, err = storage.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.NotEmpty(t, f.Filename)
		assert.NotEmpty(t, f.Modified)
		assert.Greater(t, f.Size, int64(0))
	}
}

func TestStorageListFilesMissingDir(t *testing.T) {
	storage := NewStorageService("/nonexistent/upload/dir")

	files, err := storage.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}
