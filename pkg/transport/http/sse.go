package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/transport"
)

// writerState tracks the state of an SSE TranslationWriter.
type writerState int

const (
	writerIdle      writerState = iota // no writes yet
	writerStreaming                    // WriteEvent has been called at least once
	writerCompleted                    // terminal event sent or WriteTranslation called
)

// sseTranslationWriter implements transport.TranslationWriter for HTTP.
// It handles both streaming (SSE) and non-streaming (JSON) output.
type sseTranslationWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController

	mu    sync.Mutex
	state writerState

	// onTranslationCreated is called when the translation.created event is
	// written, providing the ID for in-flight registry registration.
	onTranslationCreated func(id string)
}

var _ transport.TranslationWriter = (*sseTranslationWriter)(nil)

// newSSETranslationWriter creates a TranslationWriter wrapping an
// http.ResponseWriter. The onCreated callback is invoked with the translation
// ID when the translation.created event is written (may be nil).
func newSSETranslationWriter(w http.ResponseWriter, onCreated func(id string)) *sseTranslationWriter {
	return &sseTranslationWriter{
		w:                    w,
		rc:                   http.NewResponseController(w),
		onTranslationCreated: onCreated,
	}
}

// WriteEvent sends a single SSE event. The event is formatted as:
//
//	event: {type}\n
//	data: {json}\n
//	\n
//
// After a terminal event, it also sends:
//
//	data: [DONE]\n
//	\n
func (s *sseTranslationWriter) WriteEvent(ctx context.Context, event api.StreamEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == writerCompleted {
		return errors.New("cannot write event: writer is completed")
	}

	// First event: set SSE headers.
	if s.state == writerIdle {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.state = writerStreaming
	}

	// Intercept translation.created to extract the ID.
	if event.Type == api.EventTranslationCreated && s.onTranslationCreated != nil {
		s.onTranslationCreated(event.TranslationID)
		s.onTranslationCreated = nil // only call once
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	if event.Type.IsTerminal() {
		if _, err := fmt.Fprint(s.w, "data: [DONE]\n\n"); err != nil {
			return fmt.Errorf("failed to write [DONE]: %w", err)
		}
		if err := s.rc.Flush(); err != nil {
			return fmt.Errorf("failed to flush [DONE]: %w", err)
		}
		s.state = writerCompleted
	}

	return nil
}

// WriteTranslation sends a complete non-streaming JSON translation.
// This is mutually exclusive with WriteEvent.
func (s *sseTranslationWriter) WriteTranslation(ctx context.Context, t *api.Translation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == writerStreaming {
		return errors.New("cannot write translation: streaming has already started")
	}
	if s.state == writerCompleted {
		return errors.New("cannot write translation: writer is completed")
	}

	s.w.Header().Set("Content-Type", "application/json")
	s.state = writerCompleted

	if err := json.NewEncoder(s.w).Encode(t); err != nil {
		return fmt.Errorf("failed to encode translation: %w", err)
	}

	return nil
}

// Flush ensures buffered data is sent to the client.
func (s *sseTranslationWriter) Flush() error {
	return s.rc.Flush()
}

// hasStartedStreaming returns true if at least one SSE event has been written.
func (s *sseTranslationWriter) hasStartedStreaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == writerStreaming || (s.state == writerCompleted && s.w.Header().Get("Content-Type") == "text/event-stream")
}
