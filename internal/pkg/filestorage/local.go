package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidPath is returned for paths that escape the storage root
var ErrInvalidPath = errors.New("invalid file path")

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
	logger   zerolog.Logger
}

// NewLocalStorage creates a new LocalStorage rooted at basePath, creating it if needed.
func NewLocalStorage(basePath string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		logger:   logger,
	}, nil
}

// SaveFile copies the upload into basePath/subPath under a generated name
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	dir, err := ls.resolve(subPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		ls.logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		ls.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	id := uuid.New().String()
	name := id + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	stored := &StoredFile{
		ID:           id,
		OriginalName: fileHeader.Filename,
		Path:         filepath.ToSlash(filepath.Join(subPath, name)),
		Size:         written,
		MimeType:     fileHeader.Header.Get("Content-Type"),
	}

	ls.logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", stored.Path).
		Int64("size", written).
		Msg("File saved successfully")
	return stored, nil
}

// DeleteFile removes a file from the storage filesystem.
func (ls *LocalStorage) DeleteFile(path string) error {
	if path == "" {
		return nil
	}

	full, err := ls.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			ls.logger.Warn().Str("path", full).Msg("File to delete does not exist")
			return nil
		}
		ls.logger.Error().Err(err).Str("path", full).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.logger.Info().Str("path", full).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the filesystem path for a stored path, or "" if it escapes the root
func (ls *LocalStorage) GetFullPath(path string) string {
	full, err := ls.resolve(path)
	if err != nil {
		return ""
	}
	return full
}

// PruneBefore removes upload batches last modified before cutoff and returns
// how many were removed
func (ls *LocalStorage) PruneBefore(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		return 0, fmt.Errorf("failed to list storage directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		full := filepath.Join(ls.basePath, entry.Name())
		if err := os.RemoveAll(full); err != nil {
			ls.logger.Error().Err(err).Str("path", full).Msg("Failed to prune upload batch")
			return removed, fmt.Errorf("failed to prune %s: %w", entry.Name(), err)
		}
		removed++
	}

	if removed > 0 {
		ls.logger.Info().Int("removed", removed).Time("cutoff", cutoff).Msg("Pruned old upload batches")
	}
	return removed, nil
}

func (ls *LocalStorage) resolve(rel string) (string, error) {
	full := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	back, err := filepath.Rel(ls.basePath, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, rel)
	}
	return full, nil
}
