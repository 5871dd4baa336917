package entry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linguanote/linguanote/internal/adapter/postgres/entry"
	"github.com/linguanote/linguanote/internal/adapter/postgres/testhelper"
	"github.com/linguanote/linguanote/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*entry.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return entry.New(pool), pool
}

func strPtr(s string) *string { return &s }

func buildEntry(languageID int64, targetText string) *domain.LogEntry {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.LogEntry{
		LanguageID: languageID,
		TargetText: targetText,
		NativeText: strPtr("to eat"),
		Category:   "Verb",
		Notes:      strPtr("ichidan verb"),
		Script:     strPtr("食べる"),
		Reading:    strPtr("たべる"),
		Annotations: []domain.ScriptAnnotation{
			{Base: "食", Text: "た", Type: "furigana"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Insert / FindByTargetText tests
// ---------------------------------------------------------------------------

func TestRepo_InsertAndFind_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	input := buildEntry(lang.ID, "たべる")

	id, err := repo.Insert(ctx, input)
	if err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("Insert: expected non-zero id")
	}

	got, err := repo.FindByTargetText(ctx, lang.ID, "たべる")
	if err != nil {
		t.Fatalf("FindByTargetText: unexpected error: %v", err)
	}

	if got.ID != id {
		t.Errorf("ID mismatch: got %d, want %d", got.ID, id)
	}
	if got.TargetText != "たべる" {
		t.Errorf("TargetText mismatch: got %q", got.TargetText)
	}
	if got.NativeText == nil || *got.NativeText != "to eat" {
		t.Errorf("NativeText mismatch: got %v", got.NativeText)
	}
	if got.Category != "Verb" {
		t.Errorf("Category mismatch: got %q", got.Category)
	}
	if got.Example != nil {
		t.Errorf("Example should be nil, got %v", got.Example)
	}
	if len(got.Annotations) != 1 {
		t.Fatalf("Annotations length mismatch: got %d, want 1", len(got.Annotations))
	}
	if got.Annotations[0].Base != "食" || got.Annotations[0].Text != "た" {
		t.Errorf("Annotations[0] mismatch: got %+v", got.Annotations[0])
	}
}

func TestRepo_Insert_NoAnnotations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	input := buildEntry(lang.ID, "perro")
	input.Annotations = nil

	if _, err := repo.Insert(ctx, input); err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}

	got, err := repo.FindByTargetText(ctx, lang.ID, "perro")
	if err != nil {
		t.Fatalf("FindByTargetText: unexpected error: %v", err)
	}
	if got.Annotations != nil {
		t.Errorf("Annotations should be nil, got %v", got.Annotations)
	}
}

func TestRepo_FindByTargetText_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	_, err := repo.FindByTargetText(ctx, lang.ID, "nonexistent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected domain.ErrNotFound, got %v", err)
	}
}

func TestRepo_FindByTargetText_ScopedToLanguage(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	langA := testhelper.SeedLanguage(t, pool)
	langB := testhelper.SeedLanguage(t, pool)

	testhelper.SeedEntry(t, pool, langA.ID, "hund")

	_, err := repo.FindByTargetText(ctx, langB.ID, "hund")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected domain.ErrNotFound for other language, got %v", err)
	}
}

func TestRepo_FindByTargetText_OldestRowWins(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	first := testhelper.SeedEntry(t, pool, lang.ID, "katze")
	testhelper.SeedEntry(t, pool, lang.ID, "katze")

	got, err := repo.FindByTargetText(ctx, lang.ID, "katze")
	if err != nil {
		t.Fatalf("FindByTargetText: unexpected error: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("expected oldest row %d, got %d", first.ID, got.ID)
	}
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestRepo_Update_PartialFields(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	seeded := testhelper.SeedEntry(t, pool, lang.ID, "neko")

	updated, err := repo.Update(ctx, seeded.ID, map[string]any{
		"native_text": "cat",
		"notes":       "also a common pet name",
	})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if !updated {
		t.Fatal("Update: expected a row to be changed")
	}

	got, err := repo.FindByTargetText(ctx, lang.ID, "neko")
	if err != nil {
		t.Fatalf("FindByTargetText: unexpected error: %v", err)
	}
	if got.NativeText == nil || *got.NativeText != "cat" {
		t.Errorf("NativeText mismatch: got %v", got.NativeText)
	}
	if got.Notes == nil || *got.Notes != "also a common pet name" {
		t.Errorf("Notes mismatch: got %v", got.Notes)
	}
	if got.TargetText != "neko" {
		t.Errorf("TargetText should be untouched, got %q", got.TargetText)
	}
	if !got.UpdatedAt.After(seeded.UpdatedAt) {
		t.Errorf("UpdatedAt should advance: seeded %v, got %v", seeded.UpdatedAt, got.UpdatedAt)
	}
}

func TestRepo_Update_Annotations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	seeded := testhelper.SeedEntry(t, pool, lang.ID, "かく")

	annotations := []domain.ScriptAnnotation{
		{Base: "書", Text: "か", Type: "furigana"},
	}
	updated, err := repo.Update(ctx, seeded.ID, map[string]any{"annotations": annotations})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if !updated {
		t.Fatal("Update: expected a row to be changed")
	}

	got, err := repo.FindByTargetText(ctx, lang.ID, "かく")
	if err != nil {
		t.Fatalf("FindByTargetText: unexpected error: %v", err)
	}
	if len(got.Annotations) != 1 || got.Annotations[0].Base != "書" {
		t.Errorf("Annotations mismatch: got %+v", got.Annotations)
	}
}

func TestRepo_Update_EmptyFields(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	seeded := testhelper.SeedEntry(t, pool, lang.ID, "bok")

	updated, err := repo.Update(ctx, seeded.ID, map[string]any{})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated {
		t.Error("Update with no fields should report no change")
	}
}

func TestRepo_Update_MissingRow(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	updated, err := repo.Update(ctx, 999999999, map[string]any{"notes": "x"})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated {
		t.Error("Update of missing row should report no change")
	}
}

// ---------------------------------------------------------------------------
// FindRecentByLanguage tests
// ---------------------------------------------------------------------------

func TestRepo_FindRecentByLanguage(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	older := testhelper.SeedEntry(t, pool, lang.ID, "eins")
	newer := testhelper.SeedEntry(t, pool, lang.ID, "zwei")

	// Touch the older entry so it becomes the most recent.
	if _, err := repo.Update(ctx, older.ID, map[string]any{"notes": "touched"}); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	got, err := repo.FindRecentByLanguage(ctx, lang.ID, 10)
	if err != nil {
		t.Fatalf("FindRecentByLanguage: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != older.ID {
		t.Errorf("expected touched entry %d first, got %d", older.ID, got[0].ID)
	}
	if got[1].ID != newer.ID {
		t.Errorf("expected entry %d second, got %d", newer.ID, got[1].ID)
	}
}

func TestRepo_FindRecentByLanguage_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	lang := testhelper.SeedLanguage(t, pool)

	got, err := repo.FindRecentByLanguage(ctx, lang.ID, 10)
	if err != nil {
		t.Fatalf("FindRecentByLanguage: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}
