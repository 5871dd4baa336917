// Package entry implements the LogEntry repository using PostgreSQL.
// Read/insert queries use raw SQL; the merge path builds a partial UPDATE
// with squirrel because the set of changed columns varies per merge.
package entry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/linguanote/linguanote/internal/adapter/postgres"
	"github.com/linguanote/linguanote/internal/domain"
)

// Repo provides log-entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const entryColumns = `
    id, language_id, target_text, native_text, category, notes, example,
    script, reading, romanization, script_note, annotations, created_at, updated_at`

const findByTargetTextSQL = `
SELECT` + entryColumns + `
FROM entries
WHERE language_id = $1 AND target_text = $2
ORDER BY id
LIMIT 1`

// FindByTargetText returns the entry stored under the given (normalized)
// target text within a language. Returns domain.ErrNotFound if no entry
// exists. When the accepted lookup-then-insert race has produced duplicate
// rows, the oldest one wins.
func (r *Repo) FindByTargetText(ctx context.Context, languageID int64, text string) (*domain.LogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, findByTargetTextSQL, languageID, text)
	entry, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "entry", text)
	}
	return entry, nil
}

const insertSQL = `
INSERT INTO entries (
    language_id, target_text, native_text, category, notes, example,
    script, reading, romanization, script_note, annotations, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

// Insert persists a new entry and returns its id.
func (r *Repo) Insert(ctx context.Context, e *domain.LogEntry) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	annotations, err := marshalAnnotations(e.Annotations)
	if err != nil {
		return 0, fmt.Errorf("entry %s: %w", e.TargetText, err)
	}

	var id int64
	err = querier.QueryRow(ctx, insertSQL,
		e.LanguageID, e.TargetText, e.NativeText, e.Category, e.Notes, e.Example,
		e.Script, e.Reading, e.Romanization, e.ScriptNote, annotations,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "entry", e.TargetText)
	}
	return id, nil
}

// Update applies a partial field update to an entry and stamps updated_at.
// The fields map uses column names as keys; an "annotations" value of
// []domain.ScriptAnnotation is marshalled to JSONB. Returns true if a row
// was changed.
func (r *Repo) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := psql.Update("entries").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	for col, v := range fields {
		if ann, ok := v.([]domain.ScriptAnnotation); ok {
			data, err := marshalAnnotations(ann)
			if err != nil {
				return false, fmt.Errorf("entry %d: %w", id, err)
			}
			q = q.Set(col, data)
			continue
		}
		q = q.Set(col, v)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("entry %d: build update: %w", id, err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "entry", strconv.FormatInt(id, 10))
	}
	return tag.RowsAffected() > 0, nil
}

const findRecentSQL = `
SELECT` + entryColumns + `
FROM entries
WHERE language_id = $1
ORDER BY updated_at DESC, id DESC
LIMIT $2`

// FindRecentByLanguage returns the most recently touched entries of a
// language, newest first. Used by the log table in the UI layer.
func (r *Repo) FindRecentByLanguage(ctx context.Context, languageID int64, limit int) ([]domain.LogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findRecentSQL, languageID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list recent entries: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// scanEntry reads one entry row, decoding the annotations JSONB column.
func scanEntry(row pgx.Row) (*domain.LogEntry, error) {
	var (
		e           domain.LogEntry
		annotations []byte
	)
	err := row.Scan(
		&e.ID, &e.LanguageID, &e.TargetText, &e.NativeText, &e.Category,
		&e.Notes, &e.Example, &e.Script, &e.Reading, &e.Romanization,
		&e.ScriptNote, &annotations, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(annotations) > 0 {
		if err := json.Unmarshal(annotations, &e.Annotations); err != nil {
			return nil, fmt.Errorf("decode annotations: %w", err)
		}
	}
	return &e, nil
}

// marshalAnnotations encodes annotations for the JSONB column; an empty set
// is stored as NULL rather than "[]".
func marshalAnnotations(annotations []domain.ScriptAnnotation) ([]byte, error) {
	if len(annotations) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(annotations)
	if err != nil {
		return nil, fmt.Errorf("encode annotations: %w", err)
	}
	return data, nil
}
