package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linguanote/linguanote/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedLanguage creates a language with a unique name and returns it.
func SeedLanguage(t *testing.T, pool *pgxpool.Pool) domain.Language {
	t.Helper()
	ctx := context.Background()

	lang := domain.Language{
		Name:      "Testlang-" + uniqueSuffix(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO languages (name, created_at) VALUES ($1, $2) RETURNING id`,
		lang.Name, lang.CreatedAt,
	).Scan(&lang.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedLanguage insert: %v", err)
	}

	return lang
}

// SeedEntry creates a minimal entry for the given language and target text.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, languageID int64, targetText string) domain.LogEntry {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := domain.LogEntry{
		LanguageID: languageID,
		TargetText: targetText,
		Category:   domain.DefaultCategory,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO entries (language_id, target_text, category, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.LanguageID, entry.TargetText, entry.Category, entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert: %v", err)
	}

	return entry
}
