package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
)

const dirPerm = 0o755

// LocalStorage stores uploaded files under a root directory on the local
// filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if it is missing.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, dirPerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// BasePath returns the storage root.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// EnsureDateDir computes root/YYYY/MM/DD for the current date, creates any
// missing directories, and verifies the result is writable.
func (ls *LocalStorage) EnsureDateDir() (string, error) {
	now := time.Now()
	dir := filepath.Join(ls.basePath,
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
	)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	if err := checkWritable(dir); err != nil {
		return "", fmt.Errorf("upload directory is not writable %s: %w", dir, err)
	}

	return dir, nil
}

// EnsureSubDir creates root/name if missing and verifies it is writable.
func (ls *LocalStorage) EnsureSubDir(name string) (string, error) {
	dir := filepath.Join(ls.basePath, name)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := checkWritable(dir); err != nil {
		return "", fmt.Errorf("directory is not writable %s: %w", dir, err)
	}

	return dir, nil
}

// checkWritable probes the directory with a throwaway file.
func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".write_probe_*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// Store copies the content of an uploaded file to destPath. A partially
// written destination is removed on failure.
func (ls *LocalStorage) Store(fh *multipart.FileHeader, destPath string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}

	return nil
}

// Exists reports whether a stored file is present on disk.
func (ls *LocalStorage) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes a stored file. A missing file counts as already deleted.
func (ls *LocalStorage) Remove(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn().Str("path", path).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
