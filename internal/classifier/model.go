package classifier

import "github.com/linguanote/linguanote/internal/domain"

// noteItem is one element of the JSON array the model returns for a note.
type noteItem struct {
	TargetText   string           `json:"target_text"`
	NativeText   string           `json:"native_text,omitempty"`
	Category     string           `json:"category,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Example      string           `json:"example,omitempty"`
	Script       string           `json:"script,omitempty"`
	Reading      string           `json:"reading,omitempty"`
	Romanization string           `json:"romanization,omitempty"`
	ScriptNote   string           `json:"script_note,omitempty"`
	Annotations  []noteAnnotation `json:"annotations,omitempty"`
	Snippet      string           `json:"snippet,omitempty"`
}

// noteAnnotation is one per-character script annotation within a noteItem.
type noteAnnotation struct {
	Base string `json:"base"`
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

func (n noteItem) toDomain() domain.CandidateItem {
	item := domain.CandidateItem{
		TargetText:   n.TargetText,
		NativeText:   n.NativeText,
		Category:     n.Category,
		Notes:        n.Notes,
		Example:      n.Example,
		Script:       n.Script,
		Reading:      n.Reading,
		Romanization: n.Romanization,
		ScriptNote:   n.ScriptNote,
		Snippet:      n.Snippet,
	}
	for _, a := range n.Annotations {
		item.Annotations = append(item.Annotations, domain.ScriptAnnotation{
			Base: a.Base,
			Text: a.Text,
			Type: a.Type,
		})
	}
	return item
}
