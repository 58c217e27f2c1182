package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/RubachokBoss/driving-test-service/internal/models"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// ResultPostgresRepository keeps one row per result, with position holding
// the collection order. SaveAll swaps every row inside a single transaction.
type ResultPostgresRepository struct {
	*PostgresRepository
}

func NewResultPostgresRepository(db *sql.DB, logger zerolog.Logger) *ResultPostgresRepository {
	return &ResultPostgresRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *ResultPostgresRepository) LoadAll(ctx context.Context) ([]models.TestResult, error) {
	query := `
		SELECT document
		FROM test_results
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("failed to query results", err)
	}
	defer rows.Close()

	results := []models.TestResult{}
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, storageError("failed to scan result", err)
		}

		var result models.TestResult
		if err := json.Unmarshal(document, &result); err != nil {
			return nil, storageError("failed to decode result document", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("failed to iterate results", err)
	}

	return results, nil
}

func (r *ResultPostgresRepository) SaveAll(ctx context.Context, results []models.TestResult) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return storageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM test_results`); err != nil {
		return storageError("failed to clear results", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("test_results", "position", "id", "document", "created_at"))
	if err != nil {
		return storageError("failed to prepare copy", err)
	}

	for i, result := range results {
		document, err := json.Marshal(result)
		if err != nil {
			stmt.Close()
			return storageError("failed to encode result", err)
		}

		if _, err := stmt.ExecContext(ctx, i, result.ID, string(document), result.CreatedAt); err != nil {
			stmt.Close()
			return storageError("failed to copy result", err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return storageError("failed to flush copy", err)
	}

	if err := stmt.Close(); err != nil {
		return storageError("failed to close copy", err)
	}

	if err := tx.Commit(); err != nil {
		return storageError("failed to commit results", err)
	}

	r.logger.Debug().Int("count", len(results)).Msg("Results table replaced")

	return nil
}
