// Package language implements the language-namespace repository using
// PostgreSQL. Every entry, review item, and source note hangs off a language
// row; names are kept as the user typed them.
package language

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/linguanote/linguanote/internal/adapter/postgres"
	"github.com/linguanote/linguanote/internal/domain"
)

// Repo provides language persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new language repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getOrCreateSQL = `
INSERT INTO languages (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, created_at`

// GetOrCreateByName returns the language with the given name, creating it
// on first use. The upsert makes concurrent first-use callers converge on
// one row.
func (r *Repo) GetOrCreateByName(ctx context.Context, name string) (*domain.Language, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var lang domain.Language
	err := querier.QueryRow(ctx, getOrCreateSQL, name).Scan(&lang.ID, &lang.Name, &lang.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "language", name)
	}
	return &lang, nil
}

const getByNameSQL = `SELECT id, name, created_at FROM languages WHERE name = $1`

// GetByName returns the language with the given name.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Language, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var lang domain.Language
	err := querier.QueryRow(ctx, getByNameSQL, name).Scan(&lang.ID, &lang.Name, &lang.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "language", name)
	}
	return &lang, nil
}
