package engine

import (
	"context"
	"fmt"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/language"
	"github.com/schliff-dev/schliff/pkg/provider"
	"github.com/schliff-dev/schliff/pkg/transport"
)

// Engine orchestrates request processing between the transport layer and the
// provider backend. It implements transport.TranslationCreator and
// transport.Validator.
type Engine struct {
	provider provider.Provider
	store    transport.TranslationStore
	cfg      Config
}

// Ensure the transport contracts are satisfied at compile time.
var (
	_ transport.TranslationCreator = (*Engine)(nil)
	_ transport.Validator          = (*Engine)(nil)
)

// New creates a new Engine. The provider must not be nil. The store can be
// nil; finished translations are then not retained.
func New(p provider.Provider, store transport.TranslationStore, cfg Config) (*Engine, error) {
	if p == nil {
		return nil, fmt.Errorf("engine: provider must not be nil")
	}
	return &Engine{
		provider: p,
		store:    store,
		cfg:      cfg,
	}, nil
}

// CreateTranslation handles a translation request, streaming or not. All
// local checks run before any network traffic: request validation first, then
// the supported-language gate. A request that fails either never reaches the
// provider.
func (e *Engine) CreateTranslation(ctx context.Context, req *api.CreateTranslationRequest, w transport.TranslationWriter) error {
	if terr := api.ValidateRequest(req, e.cfg.validationConfig()); terr != nil {
		return terr
	}

	if !language.Supported(req.TargetLang) {
		return api.NewUnsupportedLanguageError(req.TargetLang)
	}

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = e.cfg.DefaultSourceLang
	}

	q := provider.Query{
		Text:       req.Text,
		SourceLang: sourceLang,
		TargetLang: req.TargetLang,
	}

	if req.Stream {
		return e.translateStreaming(ctx, q, w)
	}
	return e.translateOnce(ctx, q, w)
}
