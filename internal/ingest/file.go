package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/linguanote/linguanote/internal/classifier"
	"github.com/linguanote/linguanote/internal/domain"
	"github.com/linguanote/linguanote/internal/extract"
)

// processFile runs one note file end-to-end: extract, record provenance,
// classify, reconcile each item in response order. Ordinary failures are
// folded into the result; nothing escapes past the recover boundary, so one
// broken file can never take down the batch.
func (s *Service) processFile(ctx context.Context, languageID int64, batchID uuid.UUID, path string) (res domain.FileResult) {
	res.FileName = filepath.Base(path)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic while processing file", slog.String("file", path), slog.Any("panic", r))
			res.Err = fmt.Sprintf("%s: unexpected failure: %v", res.FileName, r)
		}
	}()

	text, err := s.extract(path)
	if err != nil {
		if errors.Is(err, extract.ErrEmptyFile) {
			res.Err = res.FileName + " is empty."
			return res
		}
		res.Err = err.Error()
		return res
	}

	sourceNoteID := s.recordSourceNote(ctx, languageID, batchID, path, text)

	items, err := s.classifier.Classify(ctx, text)
	switch {
	case errors.Is(err, classifier.ErrRateLimited):
		// The whole file is deferred to the batch-level retry pass.
		res.RateLimited = true
		return res
	case err != nil:
		s.log.Error("classification failed", slog.String("file", path), slog.Any("error", err))
		s.parkForReview(ctx, &domain.ReviewItem{
			LanguageID:   languageID,
			Type:         domain.ReviewTypeParsingAssist,
			Candidate:    domain.CandidateItem{Snippet: s.preview(text)},
			Suggestion:   fmt.Sprintf("classification of %s failed: %v", res.FileName, err),
			SourceNoteID: sourceNoteID,
		})
		res.Reviewed++
		res.Err = fmt.Sprintf("%s: %v", res.FileName, err)
		return res
	}

	if len(items) == 0 {
		s.parkForReview(ctx, &domain.ReviewItem{
			LanguageID:   languageID,
			Type:         domain.ReviewTypeParsingAssist,
			Candidate:    domain.CandidateItem{Snippet: s.preview(text)},
			Suggestion:   fmt.Sprintf("classifier found no items in %s", res.FileName),
			SourceNoteID: sourceNoteID,
		})
		res.Reviewed++
		return res
	}

	// Items are reconciled strictly in response order: a later item with the
	// same target text must observe an earlier item's insert.
	for _, item := range items {
		switch s.reconcileItem(ctx, languageID, sourceNoteID, item) {
		case outcomeAdded:
			res.Added++
		case outcomeUpdated:
			res.Updated++
		case outcomeReviewed:
			res.Reviewed++
		}
	}

	s.log.Info("file processed",
		slog.String("file", res.FileName),
		slog.Int("added", res.Added),
		slog.Int("updated", res.Updated),
		slog.Int("reviewed", res.Reviewed),
	)
	return res
}

// recordSourceNote writes the provenance record for a file. Best-effort:
// a failure is logged and the file is processed without a back-reference.
func (s *Service) recordSourceNote(ctx context.Context, languageID int64, batchID uuid.UUID, path, text string) *int64 {
	id, err := s.sourceNotes.Create(ctx, &domain.SourceNote{
		LanguageID: languageID,
		BatchID:    batchID,
		FilePath:   path,
		Preview:    s.preview(text),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("failed to record source note", slog.String("file", path), slog.Any("error", err))
		return nil
	}
	return &id
}

// preview truncates text to the configured preview length, in runes.
func (s *Service) preview(text string) string {
	limit := s.cfg.PreviewLength
	if limit <= 0 {
		limit = 200
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
