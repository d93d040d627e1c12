package api

// StreamEventType identifies the type of a streaming event delivered to
// inbound clients.
type StreamEventType string

const (
	// EventTranslationCreated opens a stream and carries the translation ID.
	EventTranslationCreated StreamEventType = "translation.created"

	// EventTranslationDelta conveys one incremental text fragment together
	// with the text accumulated so far.
	EventTranslationDelta StreamEventType = "translation.delta"

	// Terminal events. Exactly one of these ends every stream.
	EventTranslationCompleted StreamEventType = "translation.completed"
	EventTranslationFailed    StreamEventType = "translation.failed"
	EventTranslationCancelled StreamEventType = "translation.cancelled"
)

// StreamEvent is a single server-sent event in a streaming translation.
// Delta events carry Delta and Accumulated; terminal events carry the full
// Translation record.
type StreamEvent struct {
	Type           StreamEventType `json:"type"`
	SequenceNumber int             `json:"sequence_number"`
	TranslationID  string          `json:"translation_id,omitempty"`
	Delta          string          `json:"delta,omitempty"`
	Accumulated    string          `json:"accumulated,omitempty"`
	Translation    *Translation    `json:"translation,omitempty"`
}

// IsTerminal reports whether the event type ends the stream.
func (t StreamEventType) IsTerminal() bool {
	switch t {
	case EventTranslationCompleted, EventTranslationFailed, EventTranslationCancelled:
		return true
	}
	return false
}
