// Package sourcenote implements the provenance repository using PostgreSQL.
// One row per processed file; rows are written once and never mutated by
// the pipeline.
package sourcenote

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/linguanote/linguanote/internal/adapter/postgres"
	"github.com/linguanote/linguanote/internal/domain"
)

// Repo provides source-note persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new source-note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO source_notes (language_id, batch_id, file_path, preview, entry_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

// Create inserts a provenance record and returns its id.
func (r *Repo) Create(ctx context.Context, note *domain.SourceNote) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := querier.QueryRow(ctx, createSQL,
		note.LanguageID, note.BatchID, note.FilePath, note.Preview,
		note.EntryID, note.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "source_note", note.FilePath)
	}
	return id, nil
}

const listByBatchSQL = `
SELECT id, language_id, batch_id, file_path, preview, entry_id, created_at
FROM source_notes
WHERE batch_id = $1
ORDER BY id`

// ListByBatch returns all provenance records written by one batch run.
func (r *Repo) ListByBatch(ctx context.Context, batchID string) ([]domain.SourceNote, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByBatchSQL, batchID)
	if err != nil {
		return nil, postgres.MapError(err, "source_note", batchID)
	}
	defer rows.Close()

	var notes []domain.SourceNote
	for rows.Next() {
		var n domain.SourceNote
		err := rows.Scan(&n.ID, &n.LanguageID, &n.BatchID, &n.FilePath, &n.Preview, &n.EntryID, &n.CreatedAt)
		if err != nil {
			return nil, postgres.MapError(err, "source_note", batchID)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
