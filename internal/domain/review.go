package domain

import "time"

// ReviewType classifies why an item was parked for human review.
type ReviewType string

const (
	// ReviewTypeDuplicate marks an ambiguous merge, usually a suspected homonym.
	ReviewTypeDuplicate ReviewType = "duplicate"
	// ReviewTypeUncategorized marks an entry a human should categorize.
	ReviewTypeUncategorized ReviewType = "uncategorized"
	// ReviewTypeParsingAssist marks a structural or validation failure.
	ReviewTypeParsingAssist ReviewType = "parsing_assist"
)

// IsValid reports whether t is a known review type.
func (t ReviewType) IsValid() bool {
	switch t {
	case ReviewTypeDuplicate, ReviewTypeUncategorized, ReviewTypeParsingAssist:
		return true
	}
	return false
}

// ReviewStatus is the triage lifecycle state of a review item.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusResolved ReviewStatus = "resolved"
	ReviewStatusIgnored  ReviewStatus = "ignored"
)

// IsValid reports whether s is a known review status.
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusResolved, ReviewStatusIgnored:
		return true
	}
	return false
}

// ReviewItem is one human-triage queue entry. The offending candidate is
// stored as a snapshot so the review UI can show exactly what the classifier
// produced, independent of later store mutations.
type ReviewItem struct {
	ID             int64
	LanguageID     int64
	Type           ReviewType
	Status         ReviewStatus
	Candidate      CandidateItem
	Suggestion     string
	RelatedEntryID *int64
	SourceNoteID   *int64
	CreatedAt      time.Time
}
