// Package storage keeps uploaded cover images, on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is prepended to every stored name to form the cover path
// saved on posts and served over HTTP.
const PublicPrefix = "uploads/"

var ErrNotFound = errors.New("object not found")

type Storage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewName returns a unique object name that keeps the original extension.
func NewName(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

// SaveUpload stores a multipart file under a fresh name and returns the
// cover path, e.g. "uploads/6f1c...a2.png".
func SaveUpload(ctx context.Context, s Storage, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	name := NewName(fh.Filename)
	if err := s.Put(ctx, name, f, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return PublicPrefix + name, nil
}

// CleanName rejects anything that is not a plain object name.
func CleanName(name string) (string, bool) {
	if name == "" || name != path.Base(name) || name == "." || name == ".." || strings.Contains(name, "\\") {
		return "", false
	}
	return name, true
}
