package engine

import (
	"context"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/observability"
)

// Validate probes the configured backend without translating any user text.
// A failed probe yields Valid=false plus the classified error; the probe
// itself never returns a transport-level failure to the caller.
func (e *Engine) Validate(ctx context.Context) *api.ValidateResult {
	provName := e.provider.Name()

	if err := e.provider.Probe(ctx); err != nil {
		observability.ValidationsTotal.WithLabelValues(provName, "invalid").Inc()
		return &api.ValidateResult{
			Valid: false,
			Error: api.AsTranslationError(err),
		}
	}

	observability.ValidationsTotal.WithLabelValues(provName, "valid").Inc()
	return &api.ValidateResult{Valid: true}
}
