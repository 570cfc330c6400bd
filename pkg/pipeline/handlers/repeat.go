package handlers

import (
	"time"

	"github.com/midway-go/midway/pkg/pipeline"
)

// Repeatable lets a context drive a repeat-until-done control flow
// through the pipeline.
type Repeatable interface {
	// ShouldRepeat reports whether the context should be sent back down
	// the remainder of the pipeline again.
	ShouldRepeat() bool
	// Delay is how long to wait between iterations. Zero means no wait.
	Delay() time.Duration
}

// Repeat keeps invoking the remainder of the pipeline while the
// context's ShouldRepeat reports true, sleeping Delay between
// iterations. Each full downstream before/after cycle completes before
// the next begins; the first downstream failure stops the loop and
// propagates.
//
// If the context cannot be downcast to C, Repeat invokes nothing and
// returns nil, ending the chain at this node.
// TODO: a mismatched context silently drops the remainder of the chain
// here; consider invoking next unchanged instead.
func Repeat[C Repeatable](ctx pipeline.Context, next pipeline.Pipeline) error {
	c, ok := pipeline.AsMut[C](ctx)
	if !ok {
		return nil
	}
	for c.ShouldRepeat() {
		if err := next.Invoke(ctx); err != nil {
			return err
		}
		if d := c.Delay(); d > 0 {
			time.Sleep(d)
		}
	}
	return nil
}
