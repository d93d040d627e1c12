package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/observability"
	"github.com/schliff-dev/schliff/pkg/provider"
	"github.com/schliff-dev/schliff/pkg/transport"
)

// translateOnce runs the non-streaming path: one provider call, one complete
// translation written back.
func (e *Engine) translateOnce(ctx context.Context, q provider.Query, w transport.TranslationWriter) error {
	provName := e.provider.Name()

	start := time.Now()
	result, err := e.provider.Complete(ctx, q)
	duration := time.Since(start)

	observability.ProviderLatency.WithLabelValues(provName, "").Observe(duration.Seconds())

	if err != nil {
		observability.ProviderRequestsTotal.WithLabelValues(provName, "", "error").Inc()
		terr := api.AsTranslationError(err)
		observability.TranslationErrorsTotal.WithLabelValues(string(terr.Kind)).Inc()
		observability.TranslationsTotal.WithLabelValues(provName, q.TargetLang, string(api.TranslationStatusFailed)).Inc()
		if ctx.Err() != nil {
			observability.TranslationsTotal.WithLabelValues(provName, q.TargetLang, string(api.TranslationStatusCancelled)).Inc()
		}
		return terr
	}

	observability.ProviderRequestsTotal.WithLabelValues(provName, result.Model, "success").Inc()
	observability.TranslationsTotal.WithLabelValues(provName, q.TargetLang, string(api.TranslationStatusCompleted)).Inc()

	t := newTranslation(q)
	t.Status = api.TranslationStatusCompleted
	t.Paragraphs = result.Paragraphs
	t.Model = result.Model

	e.saveTranslation(ctx, t)

	return w.WriteTranslation(ctx, t)
}

// newTranslation builds the in_progress translation record shared by both
// paths.
func newTranslation(q provider.Query) *api.Translation {
	return &api.Translation{
		ID:         api.NewTranslationID(),
		Object:     "translation",
		Status:     api.TranslationStatusInProgress,
		SourceLang: q.SourceLang,
		TargetLang: q.TargetLang,
		CreatedAt:  time.Now().Unix(),
	}
}

// saveTranslation retains a finished translation when a store is configured.
// Retention failures are logged, not surfaced: the client already has the
// result.
func (e *Engine) saveTranslation(ctx context.Context, t *api.Translation) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveTranslation(ctx, t); err != nil {
		slog.Warn("failed to retain translation", "id", t.ID, "error", err)
	}
}
