package handlers

import (
	"github.com/cenkalti/backoff/v4"

	"github.com/midway-go/midway/pkg/pipeline"
)

// Retry returns a middleware that re-invokes the remainder of the
// pipeline under a backoff policy until it succeeds or the policy gives
// up, returning the last failure. Wrap a downstream error in
// backoff.Permanent to stop retrying immediately.
//
// newPolicy is called once per pipeline invocation, so concurrent
// invocations never share backoff state.
func Retry(newPolicy func() backoff.BackOff) pipeline.Handler {
	return func(ctx pipeline.Context, next pipeline.Pipeline) error {
		return backoff.Retry(func() error {
			return next.Invoke(ctx)
		}, newPolicy())
	}
}
