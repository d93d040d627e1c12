// Package http serves the translation API over HTTP: translation creation
// with optional SSE streaming, record retrieval and deletion, backend
// validation, and the supported-language list.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/language"
	"github.com/schliff-dev/schliff/pkg/storage"
	"github.com/schliff-dev/schliff/pkg/transport"
)

// Adapter serves the translation API over HTTP. It routes requests to the
// appropriate handler and serializes responses.
type Adapter struct {
	creator   transport.TranslationCreator
	validator transport.Validator // nil disables POST /v1/validate
	store     transport.TranslationStore
	inflight  *transport.InFlightRegistry
	mux       *http.ServeMux
	config    Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr        string
	MaxBodySize int64
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		MaxBodySize: 10 << 20, // 10 MB
	}
}

// NewAdapter creates an HTTP adapter. The TranslationStore is required; the
// Validator is optional (nil makes POST /v1/validate return 501). Middleware
// is applied to the TranslationCreator in the given order.
func NewAdapter(creator transport.TranslationCreator, validator transport.Validator, store transport.TranslationStore, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		creator = transport.Chain(middlewares...)(creator)
	}

	a := &Adapter{
		creator:   creator,
		validator: validator,
		store:     store,
		inflight:  transport.NewInFlightRegistry(),
		mux:       http.NewServeMux(),
		config:    cfg,
	}

	a.mux.HandleFunc("POST /v1/translations", a.handleCreateTranslation)
	a.mux.HandleFunc("GET /v1/translations/{id}", a.handleGetTranslation)
	a.mux.HandleFunc("DELETE /v1/translations/{id}", a.handleDeleteTranslation)
	a.mux.HandleFunc("POST /v1/validate", a.handleValidate)
	a.mux.HandleFunc("GET /v1/languages", a.handleListLanguages)
	a.mux.HandleFunc("GET /healthz", a.handleHealthz)
	a.mux.HandleFunc("GET /readyz", a.handleReadyz)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest. The returned handler includes
// HTTP-level middleware for request ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(a.mux)
}

// httpRequestIDMiddleware propagates the X-Request-ID header. If present in
// the request it is forwarded into the context; after the transport-level
// RequestID middleware runs, the final ID is echoed back in the response.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx := transport.ContextWithRequestID(r.Context(), id)
			r = r.WithContext(ctx)
		}
		rw := &requestIDResponseWriter{ResponseWriter: w, r: r}
		next.ServeHTTP(rw, r)
	})
}

// requestIDResponseWriter wraps http.ResponseWriter to inject the
// X-Request-ID header before the first write.
type requestIDResponseWriter struct {
	http.ResponseWriter
	r           *http.Request
	headersSent bool
}

func (w *requestIDResponseWriter) WriteHeader(statusCode int) {
	w.ensureRequestIDHeader()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *requestIDResponseWriter) Write(b []byte) (int, error) {
	w.ensureRequestIDHeader()
	return w.ResponseWriter.Write(b)
}

func (w *requestIDResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (w *requestIDResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *requestIDResponseWriter) ensureRequestIDHeader() {
	if w.headersSent {
		return
	}
	w.headersSent = true
	if id := transport.RequestIDFromContext(w.r.Context()); id != "" {
		w.ResponseWriter.Header().Set("X-Request-ID", id)
	}
}

// handleCreateTranslation handles POST /v1/translations.
func (a *Adapter) handleCreateTranslation(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewParamError("Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req api.CreateTranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewParamError(fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		transport.WriteErrorResponse(w,
			api.NewParamError("invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	if req.Stream {
		a.handleStreamingTranslation(w, r, &req)
		return
	}

	rw := newSSETranslationWriter(w, nil)
	if err := a.creator.CreateTranslation(r.Context(), &req, rw); err != nil {
		a.writeHandlerError(w, rw, err)
	}
}

// handleStreamingTranslation handles streaming POST requests (stream: true).
// The translation is registered in the in-flight registry so a DELETE on its
// ID cancels the stream.
func (a *Adapter) handleStreamingTranslation(w http.ResponseWriter, r *http.Request, req *api.CreateTranslationRequest) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var registeredID string
	rw := newSSETranslationWriter(w, func(id string) {
		registeredID = id
		a.inflight.Register(id, cancel)
	})

	err := a.creator.CreateTranslation(ctx, req, rw)

	if registeredID != "" {
		a.inflight.Remove(registeredID)
	}

	if err != nil {
		a.writeHandlerError(w, rw, err)
	}
}

// handleGetTranslation handles GET /v1/translations/{id}.
func (a *Adapter) handleGetTranslation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !api.ValidateTranslationID(id) {
		transport.WriteErrorResponse(w,
			api.NewParamError("malformed translation ID"),
			http.StatusBadRequest,
		)
		return
	}

	t, err := a.store.GetTranslation(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, id, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

// handleDeleteTranslation handles DELETE /v1/translations/{id}. It first
// checks the in-flight registry (cancelling an active stream), then falls
// through to the store.
func (a *Adapter) handleDeleteTranslation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !api.ValidateTranslationID(id) {
		transport.WriteErrorResponse(w,
			api.NewParamError("malformed translation ID"),
			http.StatusBadRequest,
		)
		return
	}

	if a.inflight.Cancel(id) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := a.store.DeleteTranslation(r.Context(), id); err != nil {
		a.writeStoreError(w, id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleValidate handles POST /v1/validate: a connectivity and credentials
// probe against the configured backend.
func (a *Adapter) handleValidate(w http.ResponseWriter, r *http.Request) {
	if a.validator == nil {
		transport.WriteErrorResponse(w,
			api.NewParamError("validation is not available"),
			http.StatusNotImplemented,
		)
		return
	}

	result := a.validator.Validate(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleListLanguages handles GET /v1/languages.
func (a *Adapter) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	codes := language.Codes()
	list := api.LanguageList{
		Object: "list",
		Data:   make([]api.Language, 0, len(codes)),
	}
	for _, code := range codes {
		list.Data = append(list.Data, api.Language{Code: code, Name: language.Name(code)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// handleHealthz reports process liveness.
func (a *Adapter) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz reports readiness, including store health.
func (a *Adapter) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if a.store != nil {
		if err := a.store.HealthCheck(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"unavailable","error":%q}`, err.Error())
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ready"}`))
}

// writeStoreError maps a store failure to an HTTP error response.
func (a *Adapter) writeStoreError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		transport.WriteErrorResponse(w,
			api.NewParamError("translation "+id+" not found"),
			http.StatusNotFound,
		)
		return
	}
	transport.WriteTranslationError(w, api.AsTranslationError(err))
}

// writeHandlerError writes an error from the creator. If streaming has
// already started, it sends a translation.failed event. Otherwise it writes
// a standard JSON error response.
func (a *Adapter) writeHandlerError(w http.ResponseWriter, rw *sseTranslationWriter, err error) {
	terr := api.AsTranslationError(err)

	if rw.hasStartedStreaming() {
		failEvent := api.StreamEvent{
			Type: api.EventTranslationFailed,
			Translation: &api.Translation{
				Status: api.TranslationStatusFailed,
				Error:  terr,
			},
		}
		rw.WriteEvent(context.Background(), failEvent)
		return
	}

	transport.WriteTranslationError(w, terr)
}
