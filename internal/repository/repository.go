package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RubachokBoss/driving-test-service/internal/models"
)

// ErrStorage marks any failure of the backing resource: unreadable,
// unwritable or holding a malformed document.
var ErrStorage = errors.New("storage error")

// ResultRepository persists the whole collection at once. Implementations
// never read or write part of it.
type ResultRepository interface {
	LoadAll(ctx context.Context) ([]models.TestResult, error)
	SaveAll(ctx context.Context, results []models.TestResult) error
	Ping(ctx context.Context) error
	Close() error
}

func storageError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStorage, err)
}
