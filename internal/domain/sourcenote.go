package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceNote is the provenance record for one processed file. It is created
// once at the start of a file's processing and never mutated afterwards.
type SourceNote struct {
	ID         int64
	LanguageID int64
	BatchID    uuid.UUID
	FilePath   string
	Preview    string
	EntryID    *int64
	CreatedAt  time.Time
}
