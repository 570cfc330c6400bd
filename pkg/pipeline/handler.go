package pipeline

// Handler is one unit of work in a pipeline. It receives the shared
// mutable context and a handle to everything remaining in the chain
// after it. A handler may invoke next zero times (short-circuiting the
// rest of the chain), exactly once (the common wrap pattern), or many
// times in a loop, and may read or mutate the context before and after
// each invocation.
//
// A non-nil error aborts the whole invocation: it unwinds verbatim to
// the original Invoke caller, and the pending after-code of enclosing
// handlers never runs.
type Handler func(ctx Context, next Pipeline) error

// Predicate gates a branch declared with Builder.When. It is evaluated
// against the context each time the branch node is reached during an
// invocation, and must not mutate the pipeline structure.
type Predicate func(ctx Context) bool
