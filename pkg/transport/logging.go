package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/schliff-dev/schliff/pkg/api"
)

// Logging returns middleware that emits structured log entries for each
// translation request: request ID, language pair, streaming flag, duration,
// and the classified error kind on failure. The source text itself is never
// logged.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next TranslationCreator) TranslationCreator {
		return TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
			start := time.Now()
			requestID := RequestIDFromContext(ctx)

			err := next.CreateTranslation(ctx, req, w)

			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("source_lang", req.SourceLang),
				slog.String("target_lang", req.TargetLang),
				slog.Bool("stream", req.Stream),
				slog.Int("text_len", len(req.Text)),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				terr := api.AsTranslationError(err)
				attrs = append(attrs,
					slog.String("error_kind", string(terr.Kind)),
					slog.String("error", terr.Message),
				)
				logger.LogAttrs(ctx, slog.LevelError, "translation failed", attrs...)
			} else {
				logger.LogAttrs(ctx, slog.LevelInfo, "translation completed", attrs...)
			}

			return err
		})
	}
}
