// Package ingest implements the note-ingestion pipeline: batches of note
// files are extracted, classified into candidate items, and reconciled
// against the per-language log. Files in a batch are processed concurrently;
// rate-limited files get one delayed retry pass.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/linguanote/linguanote/internal/config"
	"github.com/linguanote/linguanote/internal/domain"
)

// EntryStore is the log-entry persistence used by reconciliation.
type EntryStore interface {
	FindByTargetText(ctx context.Context, languageID int64, text string) (*domain.LogEntry, error)
	Insert(ctx context.Context, e *domain.LogEntry) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
}

// ReviewStore receives items automatic reconciliation could not settle.
type ReviewStore interface {
	Create(ctx context.Context, item *domain.ReviewItem) (int64, error)
}

// SourceNoteStore records per-file provenance.
type SourceNoteStore interface {
	Create(ctx context.Context, note *domain.SourceNote) (int64, error)
}

// LanguageStore resolves the language namespace a batch runs against.
type LanguageStore interface {
	GetOrCreateByName(ctx context.Context, name string) (*domain.Language, error)
}

// TxRunner executes a function within a store transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Classifier turns raw note text into candidate items. Rate limiting is
// surfaced as classifier.ErrRateLimited after the client's own retry budget.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]domain.CandidateItem, error)
}

// ExtractFunc reads one note file into raw text.
type ExtractFunc func(path string) (string, error)

// Service orchestrates note-file ingestion for one store.
type Service struct {
	cfg config.IngestConfig
	log *slog.Logger

	entries     EntryStore
	reviews     ReviewStore
	sourceNotes SourceNoteStore
	languages   LanguageStore
	tx          TxRunner
	classifier  Classifier
	extract     ExtractFunc

	// sleep is swapped in tests to avoid real cooldown waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewService creates the ingestion service.
func NewService(
	cfg config.IngestConfig,
	log *slog.Logger,
	entries EntryStore,
	reviews ReviewStore,
	sourceNotes SourceNoteStore,
	languages LanguageStore,
	tx TxRunner,
	classifier Classifier,
	extract ExtractFunc,
) *Service {
	return &Service{
		cfg:         cfg,
		log:         log.With(slog.String("service", "ingest")),
		entries:     entries,
		reviews:     reviews,
		sourceNotes: sourceNotes,
		languages:   languages,
		tx:          tx,
		classifier:  classifier,
		extract:     extract,
		sleep:       sleepCtx,
	}
}

func (s *Service) maxConcurrent() int {
	if s.cfg.MaxConcurrent > 0 {
		return s.cfg.MaxConcurrent
	}
	return 4
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
