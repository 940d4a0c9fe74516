package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storefront-service/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrTooLarge is returned when an upload exceeds the size cap
	ErrTooLarge = errors.New("file exceeds the upload size limit")

	// ErrNotImage is returned when the sniffed content is not an image.
	// The declared Content-Type header is ignored; only bytes count.
	ErrNotImage = errors.New("only image uploads are allowed")
)

// Storage is a disk-backed object store for uploaded images, addressed by a
// stable public URL. Entities store the URL string, never binary content.
type Storage struct {
	dir      string
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// New creates a storage rooted at dir, creating it if needed
func New(dir, publicBaseURL string, maxBytes int64) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Storage{
		dir:      dir,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		maxBytes: maxBytes,
		logger:   util.GetLogger(),
	}, nil
}

// Dir returns the directory served under the public base URL
func (s *Storage) Dir() string {
	return s.dir
}

// Upload stores an image under folder and returns its public URL. The
// content is size-capped and MIME-sniffed server-side before anything is
// written to disk.
func (s *Storage) Upload(folder string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		util.UploadsTotal.WithLabelValues("too_large").Inc()
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		util.UploadsTotal.WithLabelValues("not_image").Inc()
		return "", ErrNotImage
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], mtype.Extension())
	rel := filepath.Join(sanitizeFolder(folder), name)

	full := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	util.UploadsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Image uploaded",
		zap.String("path", rel), zap.Int("bytes", len(data)))
	return s.baseURL + "/" + filepath.ToSlash(rel), nil
}

// Remove deletes a previously uploaded object by its public URL or relative
// path. Removing an absent object is a no-op.
func (s *Storage) Remove(pathOrURL string) error {
	rel := strings.TrimPrefix(pathOrURL, s.baseURL+"/")
	rel = filepath.Clean("/" + rel)[1:] // confine to the storage root

	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// sanitizeFolder keeps upload folders flat and path-traversal free
func sanitizeFolder(folder string) string {
	folder = filepath.Base(strings.TrimSpace(folder))
	if folder == "" || folder == "." || folder == string(filepath.Separator) {
		return "uploads"
	}
	return folder
}
