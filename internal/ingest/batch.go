package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/linguanote/linguanote/internal/domain"
)

// ProcessNoteFiles ingests a batch of note files into the named language's
// log and returns an aggregate report. Files are processed concurrently;
// rate-limited files are re-run once after a cooldown. Ordinary per-file
// failures land in the report, not in the returned error; only an invalid
// call or an unreachable store fails fast.
func (s *Service) ProcessNoteFiles(ctx context.Context, languageName string, paths []string) (*domain.BatchReport, error) {
	languageName = strings.TrimSpace(languageName)
	if languageName == "" {
		return nil, domain.NewValidationError("language", "language name must not be empty")
	}
	if len(paths) == 0 {
		return nil, domain.NewValidationError("paths", "at least one file path is required")
	}

	lang, err := s.languages.GetOrCreateByName(ctx, languageName)
	if err != nil {
		return nil, fmt.Errorf("resolve language %q: %w", languageName, err)
	}

	batchID := uuid.New()
	log := s.log.With(slog.String("batch_id", batchID.String()), slog.String("language", lang.Name))
	log.Info("batch started", slog.Int("files", len(paths)))

	report := &domain.BatchReport{}

	results := s.runPass(ctx, lang.ID, batchID, paths)

	var retryPaths []string
	for i, res := range results {
		switch {
		case res.RateLimited:
			retryPaths = append(retryPaths, paths[i])
		case res.Err != "":
			report.Errors = append(report.Errors, res.Err)
		default:
			report.Added += res.Added
			report.Updated += res.Updated
			report.Reviewed += res.Reviewed
		}
	}

	if len(retryPaths) > 0 {
		s.retryPass(ctx, log, lang.ID, batchID, retryPaths, report)
	}

	report.RateLimitSkipped = len(report.SkippedFiles)
	report.Success = len(report.Errors) == 0 && report.RateLimitSkipped == 0
	report.Message = buildMessage(report, len(paths))

	log.Info("batch finished",
		slog.Bool("success", report.Success),
		slog.Int("added", report.Added),
		slog.Int("updated", report.Updated),
		slog.Int("reviewed", report.Reviewed),
		slog.Int("errors", len(report.Errors)),
		slog.Int("rate_limit_skipped", report.RateLimitSkipped),
	)
	return report, nil
}

// runPass processes the given files concurrently and returns one result per
// file, in input order. Workers never return errors; every failure is folded
// into its file's result.
func (s *Service) runPass(ctx context.Context, languageID int64, batchID uuid.UUID, paths []string) []domain.FileResult {
	results := make([]domain.FileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrent())
	for i, path := range paths {
		g.Go(func() error {
			results[i] = s.processFile(ctx, languageID, batchID, path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// retryPass re-runs rate-limited files once after a cooldown and folds the
// outcomes into the report. Files still rate-limited afterwards are terminal
// skips for this batch.
func (s *Service) retryPass(ctx context.Context, log *slog.Logger, languageID int64, batchID uuid.UUID, retryPaths []string, report *domain.BatchReport) {
	log.Info("rate limited, waiting before retry pass",
		slog.Int("files", len(retryPaths)),
		slog.Duration("cooldown", s.cfg.RetryCooldown),
	)

	if err := s.sleep(ctx, s.cfg.RetryCooldown); err != nil {
		// Cancelled during cooldown: the queued files become terminal skips.
		log.Warn("cooldown interrupted", slog.Any("error", err))
		for _, path := range retryPaths {
			report.SkippedFiles = append(report.SkippedFiles, filepath.Base(path))
		}
		return
	}

	results := s.runPass(ctx, languageID, batchID, retryPaths)
	for _, res := range results {
		switch {
		case res.RateLimited:
			report.SkippedFiles = append(report.SkippedFiles, res.FileName)
		case res.Err != "":
			report.Errors = append(report.Errors, res.Err)
		default:
			report.Added += res.Added
			report.Updated += res.Updated
			report.Reviewed += res.Reviewed
			report.RecoveredFiles = append(report.RecoveredFiles, res.FileName)
		}
	}
}

// buildMessage renders the human-readable batch summary.
func buildMessage(r *domain.BatchReport, total int) string {
	processed := total - len(r.Errors) - len(r.SkippedFiles)

	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d files processed: %d added, %d updated, %d sent to review",
		processed, total, r.Added, r.Updated, r.Reviewed)
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "; %d failed", len(r.Errors))
	}
	if len(r.RecoveredFiles) > 0 {
		fmt.Fprintf(&b, "; succeeded after retry: %s", strings.Join(r.RecoveredFiles, ", "))
	}
	if len(r.SkippedFiles) > 0 {
		fmt.Fprintf(&b, "; rate limited and skipped: %s", strings.Join(r.SkippedFiles, ", "))
	}
	return b.String()
}
