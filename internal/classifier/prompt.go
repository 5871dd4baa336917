package classifier

import "fmt"

// buildPrompt creates the extraction prompt for one note's full text.
func buildPrompt(noteText string) string {
	return fmt.Sprintf(`You are an assistant for a personal language-learning log.

The text below is a free-form study note. Extract every vocabulary or grammar item it mentions, in the order they appear.

Note text:
---
%s
---

Output ONLY a valid JSON array. Each element must match this exact schema:
{
  "target_text": "<the item in the language being studied>",
  "native_text": "<translation into the learner's language>",
  "category": "<Noun|Verb|Adjective|Adverb|Phrase|Grammar|Other>",
  "notes": "<usage notes, nuances, common mistakes>",
  "example": "<an example sentence from the note, or a natural one>",
  "script": "<primary-script form, e.g. kanji, if relevant>",
  "reading": "<phonetic form, e.g. kana, if relevant>",
  "romanization": "<latin-script form, if relevant>",
  "script_note": "<note about the writing system, if relevant>",
  "annotations": [{"base": "<one character>", "text": "<its reading>", "type": "<reading|gloss>"}],
  "snippet": "<the fragment of the note this item came from>"
}

Rules:
- Keep the array ordered as items appear in the note
- Omit fields you cannot fill; never invent translations the note contradicts
- One element per distinct item; do not merge different words
- Output ONLY the JSON array, no markdown, no explanations`, noteText)
}
