package pipeline

// entry is one pending declaration: a handler, or a branch (predicate
// plus the sub-entries declared inside its populate callback).
type entry struct {
	handler Handler
	pred    Predicate
	branch  []entry
}

// Builder accumulates handlers and branch declarations in declaration
// order and compiles them, once, into an immutable Pipeline.
//
// A Builder is not safe for concurrent use, and is consumed by Assemble:
// appending to or re-assembling an assembled builder is a programming
// error and panics.
type Builder struct {
	entries   []entry
	assembled bool
}

// NewBuilder returns a new, empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// With appends handler as the next entry in the currently open sequence.
// Returns the builder for call chaining.
func (b *Builder) With(handler Handler) *Builder {
	if b.assembled {
		panic("pipeline: With called after Assemble")
	}
	if handler == nil {
		panic("pipeline: nil handler passed to With")
	}
	b.entries = append(b.entries, entry{handler: handler})
	return b
}

// When declares a predicate-gated branch at this position. populate is
// called with a nested builder scope; handlers (and further When calls)
// added to it form the branch-taken sub-sequence. At invocation time the
// predicate decides, each time the branch is reached:
//
//   - true: the branch-taken sub-chain runs, then execution reconverges
//     to whatever was declared after this When call;
//   - false: the sub-chain is skipped entirely and execution proceeds
//     directly to whatever was declared after this When call.
//
// Falling through a branch never stops the spine. Returns the builder
// for call chaining.
func (b *Builder) When(predicate Predicate, populate func(*Builder)) *Builder {
	if b.assembled {
		panic("pipeline: When called after Assemble")
	}
	if predicate == nil {
		panic("pipeline: nil predicate passed to When")
	}
	if populate == nil {
		panic("pipeline: nil populate func passed to When")
	}
	sub := NewBuilder()
	populate(sub)
	sub.assembled = true // scope closed; retained references must not append
	b.entries = append(b.entries, entry{pred: predicate, branch: sub.entries})
	return b
}

// Assemble compiles the accumulated entries into an immutable Pipeline
// and consumes the builder. The entry declared last becomes the chain's
// tail; each entry before it wraps the one after it as its continuation;
// each branch compiles with the post-branch continuation as the tail of
// its own sub-chain. Assembling an empty builder yields the empty
// terminal pipeline.
//
// Assemble is infallible — it only rearranges already-typed data.
func (b *Builder) Assemble() Pipeline {
	if b.assembled {
		panic("pipeline: Assemble called twice")
	}
	b.assembled = true

	prog := &program{}
	head := prog.compile(b.entries, terminal)
	return Pipeline{prog: prog, head: head}
}

// compile appends entries to the program in reverse declaration order so
// each node wraps the one declared after it. cont is the index that both
// the linear spine and every branch-taken sub-chain converge to; it is
// shared, not copied.
func (pr *program) compile(entries []entry, cont int) int {
	next := cont
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		n := node{next: next}
		if e.handler != nil {
			n.handler = e.handler
			n.name = handlerName(e.handler)
		} else {
			n.pred = e.pred
			n.taken = pr.compile(e.branch, next)
		}
		pr.nodes = append(pr.nodes, n)
		next = len(pr.nodes) - 1
	}
	return next
}
