// Package pipeline builds and invokes onion-style middleware chains.
//
// A pipeline is assembled from a declarative list of handlers. Each
// handler receives the shared mutable context and a handle to everything
// remaining in the chain after it, so it can work on the context both
// before and after delegating downstream — or choose not to delegate at
// all:
//
//	b := pipeline.NewBuilder()
//	b.With(func(ctx pipeline.Context, next pipeline.Pipeline) error {
//		// before
//		if err := next.Invoke(ctx); err != nil {
//			return err
//		}
//		// after
//		return nil
//	})
//	p := b.Assemble()
//
// The assembled Pipeline is immutable: it can be cached and invoked any
// number of times with different contexts, concurrently if the handlers
// themselves are safe to run concurrently.
//
// # Branches
//
// Builder.When declares a predicate-gated sub-chain. Handlers added
// inside the populate callback run only when the predicate evaluates
// true at invocation time, and both the branch-taken path and the
// fall-through path reconverge to whatever was declared after the When
// call:
//
//	b.When(isAdmin, func(b *pipeline.Builder) {
//		b.With(auditLog)
//	})
//	b.With(serve) // runs on both paths
//
// # Contexts
//
// Application state implements the two-method Context interface, which
// exposes the state as type-erased views. Handlers written generically
// against Context alone can attempt a checked recovery of the concrete
// type with As or AsMut; the cast fails closed, never producing a
// mistyped value.
//
// # Failure
//
// The first non-nil error returned by any handler unwinds the entire
// invocation. No further nodes run, and the pending after-code of
// enclosing handlers is never reached. The core adds no error kinds of
// its own; whatever a handler returns is what the Invoke caller sees.
package pipeline
