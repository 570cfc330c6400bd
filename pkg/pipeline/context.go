package pipeline

// Context is the application state threaded through every handler in one
// invocation. Implementations expose themselves as type-erased views so
// that handlers written only against this interface can attempt a checked
// recovery of the concrete type they need.
//
// Most implementations return the receiver from both methods; the split
// documents read vs. write intent rather than enforcing it:
//
//	func (c *AppContext) View() any    { return c }
//	func (c *AppContext) MutView() any { return c }
//
// The core never retains a context beyond the Invoke call it was passed
// to, and never interprets its fields.
type Context interface {
	// View returns a type-erased read view of the concrete context.
	View() any
	// MutView returns a type-erased mutable view of the concrete context.
	MutView() any
}

// As attempts a checked cast of the context's read view to T. It reports
// false when the concrete runtime type does not match; it never produces
// a mistyped value.
func As[T any](ctx Context) (T, bool) {
	v, ok := ctx.View().(T)
	return v, ok
}

// AsMut attempts a checked cast of the context's mutable view to T.
// T is typically a pointer type. Like As, the cast fails closed.
func AsMut[T any](ctx Context) (T, bool) {
	v, ok := ctx.MutView().(T)
	return v, ok
}
