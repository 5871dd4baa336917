// Package review implements the review-queue repository using PostgreSQL.
// The ingestion pipeline only creates items; listing and status transitions
// serve the triage UI.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/linguanote/linguanote/internal/adapter/postgres"
	"github.com/linguanote/linguanote/internal/domain"
)

// Repo provides review-item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO review_items (
    language_id, review_type, status, candidate, suggestion,
    related_entry_id, source_note_id, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

// Create inserts a review item and returns its id. The candidate snapshot
// is stored as JSONB so the triage UI sees exactly what the classifier
// produced.
func (r *Repo) Create(ctx context.Context, item *domain.ReviewItem) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	candidate, err := json.Marshal(item.Candidate)
	if err != nil {
		return 0, fmt.Errorf("review_item: encode candidate: %w", err)
	}

	status := item.Status
	if status == "" {
		status = domain.ReviewStatusPending
	}

	var id int64
	err = querier.QueryRow(ctx, createSQL,
		item.LanguageID, item.Type, status, candidate, item.Suggestion,
		item.RelatedEntryID, item.SourceNoteID, item.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "review_item", string(item.Type))
	}
	return id, nil
}

const listPendingSQL = `
SELECT id, language_id, review_type, status, candidate, suggestion,
       related_entry_id, source_note_id, created_at
FROM review_items
WHERE language_id = $1 AND status = 'pending'
ORDER BY created_at, id
LIMIT $2 OFFSET $3`

// ListPending returns pending review items for a language, oldest first.
func (r *Repo) ListPending(ctx context.Context, languageID int64, limit, offset int) ([]domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listPendingSQL, languageID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list review_items: %w", err)
	}
	defer rows.Close()

	var items []domain.ReviewItem
	for rows.Next() {
		var (
			item      domain.ReviewItem
			candidate []byte
		)
		err := rows.Scan(
			&item.ID, &item.LanguageID, &item.Type, &item.Status, &candidate,
			&item.Suggestion, &item.RelatedEntryID, &item.SourceNoteID, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list review_items: %w", err)
		}
		if err := json.Unmarshal(candidate, &item.Candidate); err != nil {
			return nil, fmt.Errorf("list review_items: decode candidate: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const setStatusSQL = `UPDATE review_items SET status = $2 WHERE id = $1`

// SetStatus moves a review item to resolved or ignored (or back to pending).
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) SetStatus(ctx context.Context, id int64, status domain.ReviewStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("status", fmt.Sprintf("unknown review status %q", status))
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setStatusSQL, id, status)
	if err != nil {
		return postgres.MapError(err, "review_item", strconv.FormatInt(id, 10))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review_item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
