package domain

import (
	"strings"
	"time"
)

// ScriptAnnotation annotates one character of the target text with its
// reading or gloss (e.g. furigana over a single kanji).
type ScriptAnnotation struct {
	Base string `json:"base"`
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// CandidateItem is one vocabulary or grammar item extracted from a note by
// the classifier. It exists only for the duration of one file's processing
// pass; whatever survives reconciliation is persisted as a LogEntry or a
// ReviewItem snapshot.
type CandidateItem struct {
	TargetText   string             `json:"target_text"`
	NativeText   string             `json:"native_text,omitempty"`
	Category     string             `json:"category,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Example      string             `json:"example,omitempty"`
	Script       string             `json:"script,omitempty"`
	Reading      string             `json:"reading,omitempty"`
	Romanization string             `json:"romanization,omitempty"`
	ScriptNote   string             `json:"script_note,omitempty"`
	Annotations  []ScriptAnnotation `json:"annotations,omitempty"`
	Snippet      string             `json:"snippet,omitempty"`
}

// ResolveTargetText returns the text the item should be stored under.
// When the direct target text is absent it falls back, in order, to the
// primary-script form, the phonetic reading, then the romanization.
// Returns "" when every source is empty; such an item must not be persisted.
func (c CandidateItem) ResolveTargetText() string {
	for _, s := range []string{c.TargetText, c.Script, c.Reading, c.Romanization} {
		if v := strings.TrimSpace(s); v != "" {
			return v
		}
	}
	return ""
}

// DefaultCategory is assigned to entries the classifier could not categorize.
const DefaultCategory = "Other"

// LogEntry is the canonical store record: one per unique target text within
// a language. Optional fields are pointers (NULL in the store). Entries are
// mutated by merges and never deleted by the ingestion pipeline.
type LogEntry struct {
	ID           int64
	LanguageID   int64
	TargetText   string
	NativeText   *string
	Category     string
	Notes        *string
	Example      *string
	Script       *string
	Reading      *string
	Romanization *string
	ScriptNote   *string
	Annotations  []ScriptAnnotation
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Language is a per-language namespace for the note log.
type Language struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
