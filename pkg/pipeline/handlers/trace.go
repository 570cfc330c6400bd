package handlers

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/midway-go/midway/pkg/pipeline"
)

// Trace returns a middleware that wraps the remainder of the pipeline
// with structured before/after logging. Each invocation is tagged with a
// fresh ID so interleaved concurrent invocations can be told apart. A
// nil logger falls back to slog.Default.
func Trace(logger *slog.Logger) pipeline.Handler {
	return func(ctx pipeline.Context, next pipeline.Pipeline) error {
		log := logger
		if log == nil {
			log = slog.Default()
		}
		id := uuid.NewString()
		start := time.Now()

		log.Info("invocation started", "invocation", id)
		if err := next.Invoke(ctx); err != nil {
			log.Error("invocation failed",
				"invocation", id, "elapsed", time.Since(start), "error", err)
			return err
		}
		log.Info("invocation complete",
			"invocation", id, "elapsed", time.Since(start))
		return nil
	}
}
