package obs

import (
	"context"
	"log/slog"
	"time"
)

// Time logs the duration of an operation when the returned func runs.
// Use as: defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := Logger(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		attrs := []any{
			slog.String("op", name),
			slog.Int64("dur_ms", dur.Milliseconds()),
		}
		if reqID := RequestID(ctx); reqID != "" {
			attrs = append(attrs, slog.String("req_id", reqID))
		}

		if errp != nil && *errp != nil {
			logger.Warn("operation failed", append(attrs, slog.String("error", (*errp).Error()))...)
			return
		}
		logger.Debug("operation finished", attrs...)
	}
}
