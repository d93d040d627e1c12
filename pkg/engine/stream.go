package engine

import (
	"context"
	"time"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/observability"
	"github.com/schliff-dev/schliff/pkg/provider"
	"github.com/schliff-dev/schliff/pkg/transport"
)

// streamState tracks the state of a streaming translation being assembled:
// the monotonically increasing sequence number and the text accumulated from
// deltas so far.
type streamState struct {
	seq         int
	accumulated string
}

// nextSeq returns the current sequence number and increments it.
func (s *streamState) nextSeq() int {
	n := s.seq
	s.seq++
	return n
}

// translateStreaming runs the streaming path: it opens the provider stream,
// forwards deltas with the accumulated text, and ends the stream with exactly
// one terminal event. Mid-stream errors terminate the call; there is no
// resumption.
func (e *Engine) translateStreaming(ctx context.Context, q provider.Query, w transport.TranslationWriter) error {
	provName := e.provider.Name()
	t := newTranslation(q)
	state := &streamState{}

	start := time.Now()
	eventCh, err := e.provider.Stream(ctx, q)
	if err != nil {
		observability.ProviderRequestsTotal.WithLabelValues(provName, "", "error").Inc()
		observability.ProviderLatency.WithLabelValues(provName, "").Observe(time.Since(start).Seconds())
		terr := api.AsTranslationError(err)
		observability.TranslationErrorsTotal.WithLabelValues(string(terr.Kind)).Inc()
		observability.TranslationsTotal.WithLabelValues(provName, q.TargetLang, string(api.TranslationStatusFailed)).Inc()
		// The stream never opened: report the failure as a plain error so the
		// transport can answer with a JSON error instead of an event stream.
		return terr
	}

	if err := w.WriteEvent(ctx, api.StreamEvent{
		Type:           api.EventTranslationCreated,
		SequenceNumber: state.nextSeq(),
		TranslationID:  t.ID,
	}); err != nil {
		return err
	}

	for ev := range eventCh {
		switch ev.Type {
		case provider.EventDelta:
			state.accumulated += ev.Delta
			if err := w.WriteEvent(ctx, api.StreamEvent{
				Type:           api.EventTranslationDelta,
				SequenceNumber: state.nextSeq(),
				TranslationID:  t.ID,
				Delta:          ev.Delta,
				Accumulated:    state.accumulated,
			}); err != nil {
				return err
			}

		case provider.EventDone:
			observability.ProviderRequestsTotal.WithLabelValues(provName, "", "success").Inc()
			observability.ProviderLatency.WithLabelValues(provName, "").Observe(time.Since(start).Seconds())
			return e.emitCompleted(ctx, t, q, state, w)

		case provider.EventError:
			observability.ProviderRequestsTotal.WithLabelValues(provName, "", "error").Inc()
			observability.ProviderLatency.WithLabelValues(provName, "").Observe(time.Since(start).Seconds())
			return e.emitFailed(ctx, t, q, ev.Err, state, w)
		}
	}

	// Channel closed without a terminal provider event: the context was
	// cancelled while the provider was reading.
	observability.ProviderLatency.WithLabelValues(provName, "").Observe(time.Since(start).Seconds())
	return e.emitCancelled(ctx, t, q, state, w)
}

// emitCompleted finalizes the record, retains it, and sends
// translation.completed.
func (e *Engine) emitCompleted(ctx context.Context, t *api.Translation, q provider.Query, state *streamState, w transport.TranslationWriter) error {
	t.Status = api.TranslationStatusCompleted
	// Streamed output arrives as one paragraph; the incremental deltas were
	// already delivered verbatim.
	t.Paragraphs = []string{state.accumulated}

	observability.TranslationsTotal.WithLabelValues(e.provider.Name(), q.TargetLang, string(t.Status)).Inc()

	e.saveTranslation(ctx, t)

	return w.WriteEvent(ctx, api.StreamEvent{
		Type:           api.EventTranslationCompleted,
		SequenceNumber: state.nextSeq(),
		TranslationID:  t.ID,
		Translation:    t,
	})
}

// emitFailed sends translation.failed carrying the classified error.
func (e *Engine) emitFailed(ctx context.Context, t *api.Translation, q provider.Query, terr *api.TranslationError, state *streamState, w transport.TranslationWriter) error {
	if terr == nil {
		terr = api.NewUnknownError(nil)
	}
	t.Status = api.TranslationStatusFailed
	t.Error = terr

	observability.TranslationsTotal.WithLabelValues(e.provider.Name(), q.TargetLang, string(t.Status)).Inc()
	observability.TranslationErrorsTotal.WithLabelValues(string(terr.Kind)).Inc()

	e.saveTranslation(ctx, t)

	return w.WriteEvent(ctx, api.StreamEvent{
		Type:           api.EventTranslationFailed,
		SequenceNumber: state.nextSeq(),
		TranslationID:  t.ID,
		Translation:    t,
	})
}

// emitCancelled sends translation.cancelled. The event write uses a detached
// context because the request context is already cancelled; whether it
// reaches the client depends on why the stream ended.
func (e *Engine) emitCancelled(ctx context.Context, t *api.Translation, q provider.Query, state *streamState, w transport.TranslationWriter) error {
	t.Status = api.TranslationStatusCancelled

	observability.TranslationsTotal.WithLabelValues(e.provider.Name(), q.TargetLang, string(t.Status)).Inc()

	e.saveTranslation(context.WithoutCancel(ctx), t)

	return w.WriteEvent(context.WithoutCancel(ctx), api.StreamEvent{
		Type:           api.EventTranslationCancelled,
		SequenceNumber: state.nextSeq(),
		TranslationID:  t.ID,
		Translation:    t,
	})
}
