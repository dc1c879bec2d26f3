package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
)

// LocalFileStore keeps uploaded files on local disk under a base directory.
// Saved paths are returned relative to that directory with forward slashes.
type LocalFileStore struct {
	baseDir string
	prefix  string
}

// NewLocalFileStore creates the base directory if needed. Files are saved under baseDir/prefix.
func NewLocalFileStore(baseDir, prefix string) (*LocalFileStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, prefix), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStore{baseDir: baseDir, prefix: prefix}, nil
}

var _ portssvc.FileStore = (*LocalFileStore)(nil)

// Save writes r to a new uniquely named file keeping the original extension.
func (s *LocalFileStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	rel := filepath.ToSlash(filepath.Join(s.prefix, uuid.NewString()+ext))

	f, err := os.OpenFile(filepath.Join(s.baseDir, filepath.FromSlash(rel)), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload %s: %w", rel, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload %s: %w", rel, err)
	}
	return rel, nil
}

// Delete removes a previously saved file. Missing files and paths outside the base directory are ignored.
func (s *LocalFileStore) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete upload %s: %w", path, err)
	}
	return nil
}
