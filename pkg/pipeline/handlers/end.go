package handlers

import "github.com/midway-go/midway/pkg/pipeline"

// End is a terminal middleware: it never invokes next and succeeds
// immediately. Useful for returning from a branch early, or as an
// explicit marker for the end of a pipeline.
func End(pipeline.Context, pipeline.Pipeline) error {
	return nil
}
