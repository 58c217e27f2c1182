package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RubachokBoss/driving-test-service/internal/models"
	"github.com/rs/zerolog"
)

const defaultFileMode fs.FileMode = 0o644

type FileRepository struct {
	path   string
	logger zerolog.Logger
}

// NewFileRepository makes sure the file exists, seeding it with an empty
// collection on first start.
func NewFileRepository(path string, logger zerolog.Logger) (*FileRepository, error) {
	repo := &FileRepository{
		path:   path,
		logger: logger,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storageError("failed to create data directory", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := repo.SaveAll(context.Background(), nil); err != nil {
			return nil, err
		}
		logger.Info().Str("path", path).Msg("Created empty results file")
	} else if err != nil {
		return nil, storageError("failed to stat results file", err)
	}

	return repo, nil
}

func (r *FileRepository) LoadAll(ctx context.Context) ([]models.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, storageError("failed to read results file", err)
	}

	results, err := decodeResults(data)
	if err != nil {
		return nil, storageError("failed to decode results file", err)
	}

	return results, nil
}

// SaveAll writes to a temporary file next to the target and renames it
// over the old one, so readers see either the old or the new collection.
func (r *FileRepository) SaveAll(ctx context.Context, results []models.TestResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeResults(results)
	if err != nil {
		return storageError("failed to encode results", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".results-*.tmp")
	if err != nil {
		return storageError("failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storageError("failed to write results", err)
	}

	// CreateTemp uses 0600; keep the mode the results file already has.
	mode := defaultFileMode
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storageError("failed to set results file mode", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return storageError("failed to close temp file", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return storageError("failed to replace results file", err)
	}

	r.logger.Debug().
		Str("path", r.path).
		Int("count", len(results)).
		Msg("Results file written")

	return nil
}

func (r *FileRepository) Ping(ctx context.Context) error {
	if _, err := os.Stat(r.path); err != nil {
		return storageError(fmt.Sprintf("results file %s unavailable", r.path), err)
	}
	return nil
}

func (r *FileRepository) Close() error {
	return nil
}
