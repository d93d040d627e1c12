package api

// PolishMode selects how much the system prompt asks for beyond the revision
// itself.
type PolishMode string

const (
	// PolishModeSimplicity asks only for the revised text.
	PolishModeSimplicity PolishMode = "simplicity"

	// PolishModeDetailed additionally asks the model to enumerate and
	// justify the changes it made.
	PolishModeDetailed PolishMode = "detailed"
)

// TranslationStatus is the lifecycle state of a translation.
type TranslationStatus string

const (
	TranslationStatusInProgress TranslationStatus = "in_progress"
	TranslationStatusCompleted  TranslationStatus = "completed"
	TranslationStatusFailed     TranslationStatus = "failed"
	TranslationStatusCancelled  TranslationStatus = "cancelled"
)

// CreateTranslationRequest is the inbound request for POST /v1/translations.
type CreateTranslationRequest struct {
	// Text is the source text to translate or polish. Required.
	Text string `json:"text"`

	// SourceLang is the detected or declared source language code.
	// Optional; prompt selection falls back to a generic prompt without it.
	SourceLang string `json:"source_lang,omitempty"`

	// TargetLang is the target language code. Required and must be present
	// in the supported-language table.
	TargetLang string `json:"target_lang"`

	// Stream requests incremental delivery over SSE.
	Stream bool `json:"stream,omitempty"`
}

// Translation is the normalized result of a translate call.
type Translation struct {
	ID         string            `json:"id"`
	Object     string            `json:"object"`
	Status     TranslationStatus `json:"status"`
	SourceLang string            `json:"source_lang,omitempty"`
	TargetLang string            `json:"target_lang"`

	// Paragraphs holds the cleaned result text split on newlines. Streaming
	// results always arrive as a single paragraph.
	Paragraphs []string `json:"paragraphs"`

	Model     string            `json:"model,omitempty"`
	Error     *TranslationError `json:"error,omitempty"`
	CreatedAt int64             `json:"created_at"`
}

// Text joins the paragraphs back into a single string.
func (t *Translation) Text() string {
	switch len(t.Paragraphs) {
	case 0:
		return ""
	case 1:
		return t.Paragraphs[0]
	}
	out := t.Paragraphs[0]
	for _, p := range t.Paragraphs[1:] {
		out += "\n" + p
	}
	return out
}

// ValidateResult is the outcome of POST /v1/validate: a boolean plus the
// classified error when the probe failed.
type ValidateResult struct {
	Valid bool              `json:"valid"`
	Error *TranslationError `json:"error,omitempty"`
}

// Language is one entry of the supported-language list.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguageList is the response of GET /v1/languages.
type LanguageList struct {
	Object string     `json:"object"`
	Data   []Language `json:"data"`
}
