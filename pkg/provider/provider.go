package provider

import (
	"context"

	"github.com/schliff-dev/schliff/pkg/api"
)

// Provider abstracts an upstream chat-completion backend. Implementations
// must be safe for concurrent use by multiple goroutines; all per-call state
// stays inside the call.
type Provider interface {
	// Name returns the provider identifier (e.g. "openai", "azure").
	Name() string

	// Complete performs a non-streaming translation call and returns the
	// normalized result.
	Complete(ctx context.Context, q Query) (*Result, error)

	// Stream performs a streaming translation call. The returned channel
	// receives Event values in arrival order and is closed by the provider
	// when the stream completes, fails, or the context is cancelled.
	Stream(ctx context.Context, q Query) (<-chan Event, error)

	// Probe performs a minimal connectivity and credentials check without
	// translating any user text.
	Probe(ctx context.Context) error

	// ListModels returns the models available at the backend.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}

// Query describes one translation call. It is immutable for the duration of
// the call and owned by the caller.
type Query struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Result is the normalized outcome of a non-streaming call: cleaned text
// split into paragraphs, plus the model that produced it.
type Result struct {
	Paragraphs []string
	Model      string
}

// EventType identifies the type of a streaming Event.
type EventType int

const (
	// EventDelta carries one incremental content fragment.
	EventDelta EventType = iota

	// EventDone signals normal end of stream.
	EventDone

	// EventError signals a terminal failure; Err is populated.
	EventError
)

// Event is one element of a streaming translation, produced by the frame
// assembler in arrival order.
type Event struct {
	Type  EventType
	Delta string
	Err   *api.TranslationError
}

// ModelInfo describes one model offered by the backend.
type ModelInfo struct {
	ID      string
	OwnedBy string
}

// Settings is the read-only per-call provider configuration: where to send
// requests, how to authenticate, and how to shape prompts.
type Settings struct {
	// BaseURL is the backend base URL. Empty means the public OpenAI host.
	BaseURL string

	// APIKeys is a comma-delimited set of API keys; one is selected per call.
	APIKeys string

	// DeploymentName is required for Azure and ignored elsewhere.
	DeploymentName string

	// APIVersion overrides the Azure api-version query parameter.
	APIVersion string

	// Model is the model identifier. CustomModel, when set, wins.
	Model       string
	CustomModel string

	// Stream enables incremental delivery.
	Stream bool

	// PolishMode selects simplicity or detailed revisions.
	PolishMode api.PolishMode

	// SystemPromptTemplate and UserPromptTemplate override the built-in
	// prompt catalog. Templates interpolate $text, $sourceLang, $targetLang.
	SystemPromptTemplate string
	UserPromptTemplate   string
}

// ModelName returns the effective model identifier for a call.
func (s Settings) ModelName() string {
	if s.CustomModel != "" {
		return s.CustomModel
	}
	return s.Model
}
