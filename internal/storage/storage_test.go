package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smallest payload mimetype sniffs as image/png
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestStorage(t *testing.T, maxBytes int64) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), "http://localhost:8080/uploads", maxBytes)
	require.NoError(t, err)
	return s
}

func TestUpload(t *testing.T) {
	s := newTestStorage(t, 1024)

	url, err := s.Upload("products", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(s.Dir(), rel))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestUploadRejectsOversize(t *testing.T) {
	s := newTestStorage(t, 8)

	_, err := s.Upload("products", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUploadRejectsNonImage(t *testing.T) {
	s := newTestStorage(t, 1024)

	// The sniffed bytes decide, not any declared content type
	_, err := s.Upload("products", strings.NewReader("<html><body>not an image</body></html>"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestUploadSanitizesFolder(t *testing.T) {
	s := newTestStorage(t, 1024)

	url, err := s.Upload("../../etc", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/etc/")

	url, err = s.Upload("", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/uploads/")
}

func TestRemove(t *testing.T) {
	s := newTestStorage(t, 1024)

	url, err := s.Upload("banners", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, s.Remove(url))

	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	_, err = os.Stat(filepath.Join(s.Dir(), rel))
	assert.True(t, os.IsNotExist(err))

	// Removing an absent object is a no-op
	assert.NoError(t, s.Remove(url))
}

func TestRemoveStaysInsideRoot(t *testing.T) {
	s := newTestStorage(t, 1024)

	outside := filepath.Join(filepath.Dir(s.Dir()), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	_ = s.Remove("../victim.txt")

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
