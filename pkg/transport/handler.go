package transport

import (
	"context"

	"github.com/schliff-dev/schliff/pkg/api"
)

// TranslationCreator handles the core create-translation operation. The
// implementation receives a request and writes the result (streaming events
// or a complete translation) to the TranslationWriter.
type TranslationCreator interface {
	CreateTranslation(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error
}

// TranslationCreatorFunc is an adapter that allows using an ordinary function
// as a TranslationCreator.
type TranslationCreatorFunc func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error

// CreateTranslation calls f(ctx, req, w).
func (f TranslationCreatorFunc) CreateTranslation(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
	return f(ctx, req, w)
}

// Validator probes the configured backend without translating any user text.
type Validator interface {
	Validate(ctx context.Context) *api.ValidateResult
}

// TranslationStore handles retention, retrieval, and deletion of finished
// translations. Implementations must be safe for concurrent use.
type TranslationStore interface {
	// SaveTranslation records a finished translation.
	SaveTranslation(ctx context.Context, t *api.Translation) error

	// GetTranslation retrieves a translation by ID. Returns
	// storage.ErrNotFound if the ID is unknown.
	GetTranslation(ctx context.Context, id string) (*api.Translation, error)

	// DeleteTranslation removes a translation by ID. Returns
	// storage.ErrNotFound if the ID is unknown.
	DeleteTranslation(ctx context.Context, id string) error

	// HealthCheck verifies the store is functional.
	HealthCheck(ctx context.Context) error

	// Close releases store resources.
	Close() error
}

// TranslationWriter abstracts streaming and non-streaming output for the
// handler. The transport layer creates a TranslationWriter per request.
//
// WriteEvent and WriteTranslation are mutually exclusive on a single writer:
// calling one after the other returns an error, as does WriteEvent after a
// terminal event.
type TranslationWriter interface {
	// WriteEvent sends a single streaming event.
	WriteEvent(ctx context.Context, event api.StreamEvent) error

	// WriteTranslation sends a complete non-streaming translation.
	WriteTranslation(ctx context.Context, t *api.Translation) error

	// Flush ensures buffered data reaches the client. Returns an error if
	// the client has disconnected.
	Flush() error
}
