package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linguanote/linguanote/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// itemOutcome is the fate of one candidate item.
type itemOutcome int

const (
	outcomeNoop itemOutcome = iota
	outcomeAdded
	outcomeUpdated
	outcomeReviewed
)

// reconcileItem decides the fate of one candidate item against the
// language's log: insert it as a new entry, merge it into an existing one,
// or park it in the review queue. Store failures are converted into review
// items so one bad item never aborts the rest of the file.
func (s *Service) reconcileItem(ctx context.Context, languageID int64, sourceNoteID *int64, c domain.CandidateItem) itemOutcome {
	target := c.ResolveTargetText()
	if target == "" {
		s.parkForReview(ctx, &domain.ReviewItem{
			LanguageID:   languageID,
			Type:         domain.ReviewTypeParsingAssist,
			Candidate:    c,
			Suggestion:   "item has no usable target text in any field",
			SourceNoteID: sourceNoteID,
		})
		return outcomeReviewed
	}

	var (
		outcome itemOutcome
		homonym *domain.LogEntry
	)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.entries.FindByTargetText(ctx, languageID, target)
		switch {
		case err == nil:
		case isNotFound(err):
			id, err := s.entries.Insert(ctx, buildEntry(languageID, target, c))
			if err != nil {
				return err
			}
			s.log.Debug("entry added", slog.Int64("id", id), slog.String("target_text", target))
			outcome = outcomeAdded
			return nil
		default:
			return err
		}

		if isHomonym(existing, c) {
			homonym = existing
			return nil
		}

		fields := mergeFields(existing, c)
		if len(fields) == 0 {
			s.log.Debug("entry unchanged", slog.Int64("id", existing.ID), slog.String("target_text", target))
			outcome = outcomeNoop
			return nil
		}

		if _, err := s.entries.Update(ctx, existing.ID, fields); err != nil {
			return err
		}
		outcome = outcomeUpdated
		return nil
	})

	if err != nil {
		s.parkForReview(ctx, &domain.ReviewItem{
			LanguageID:   languageID,
			Type:         domain.ReviewTypeParsingAssist,
			Candidate:    c,
			Suggestion:   fmt.Sprintf("store failure while reconciling %q: %v", target, err),
			SourceNoteID: sourceNoteID,
		})
		return outcomeReviewed
	}

	if homonym != nil {
		s.parkForReview(ctx, &domain.ReviewItem{
			LanguageID: languageID,
			Type:       domain.ReviewTypeDuplicate,
			Candidate:  c,
			Suggestion: fmt.Sprintf("entry %q already exists with translation %q; new note says %q. Possible homonym.",
				target, *homonym.NativeText, c.NativeText),
			RelatedEntryID: &homonym.ID,
			SourceNoteID:   sourceNoteID,
		})
		return outcomeReviewed
	}

	return outcome
}

// parkForReview writes a review item. A review-store failure is logged and
// swallowed: the queue is a side channel and must never fail the file.
func (s *Service) parkForReview(ctx context.Context, item *domain.ReviewItem) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if _, err := s.reviews.Create(ctx, item); err != nil {
		s.log.Warn("failed to create review item",
			slog.String("review_type", string(item.Type)),
			slog.String("target_text", item.Candidate.TargetText),
			slog.Any("error", err),
		)
	}
}

// isHomonym reports whether the existing entry and the candidate carry
// conflicting translations. Any difference in non-empty native texts,
// compared case-insensitively, blocks the merge. The heuristic is coarse on
// purpose; loosening it silently changes which merges happen.
func isHomonym(e *domain.LogEntry, c domain.CandidateItem) bool {
	if e.NativeText == nil || *e.NativeText == "" || c.NativeText == "" {
		return false
	}
	return domain.NormalizeText(*e.NativeText) != domain.NormalizeText(c.NativeText)
}

// buildEntry constructs a new log entry from a candidate.
func buildEntry(languageID int64, target string, c domain.CandidateItem) *domain.LogEntry {
	category := c.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	now := time.Now().UTC()
	return &domain.LogEntry{
		LanguageID:   languageID,
		TargetText:   target,
		NativeText:   optional(c.NativeText),
		Category:     category,
		Notes:        optional(c.Notes),
		Example:      optional(c.Example),
		Script:       optional(c.Script),
		Reading:      optional(c.Reading),
		Romanization: optional(c.Romanization),
		ScriptNote:   optional(c.ScriptNote),
		Annotations:  c.Annotations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// mergeFields computes the partial update for merging a candidate into an
// existing entry. Optional fields are filled only where the entry is empty.
// Notes are the exception: a longer candidate note replaces the stored one.
// Annotations are one atomic field, replaced when the candidate brings a
// different non-empty set.
func mergeFields(e *domain.LogEntry, c domain.CandidateItem) map[string]any {
	fields := make(map[string]any)

	fillIfEmpty(fields, "native_text", e.NativeText, c.NativeText)
	fillIfEmpty(fields, "example", e.Example, c.Example)
	fillIfEmpty(fields, "script", e.Script, c.Script)
	fillIfEmpty(fields, "reading", e.Reading, c.Reading)
	fillIfEmpty(fields, "romanization", e.Romanization, c.Romanization)
	fillIfEmpty(fields, "script_note", e.ScriptNote, c.ScriptNote)

	if e.Category == "" && c.Category != "" {
		fields["category"] = c.Category
	}

	if c.Notes != "" {
		switch {
		case e.Notes == nil || *e.Notes == "":
			fields["notes"] = c.Notes
		case len(c.Notes) > len(*e.Notes):
			fields["notes"] = c.Notes
		}
	}

	if len(c.Annotations) > 0 && !annotationsEqual(e.Annotations, c.Annotations) {
		fields["annotations"] = c.Annotations
	}

	return fields
}

func fillIfEmpty(fields map[string]any, column string, current *string, candidate string) {
	if candidate == "" {
		return
	}
	if current == nil || *current == "" {
		fields[column] = candidate
	}
}

func annotationsEqual(a, b []domain.ScriptAnnotation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
