package pipeline

import (
	"reflect"
	"runtime"
	"strings"
)

// terminal marks the end of a compiled chain. Invoking it succeeds
// without doing anything, so the last handler in a chain can still call
// next safely.
const terminal = -1

// node is one compiled position in a program: a handler node when
// handler is non-nil, otherwise a branch node.
type node struct {
	handler Handler
	name    string

	pred  Predicate
	taken int // entry of the branch-taken sub-chain

	// next is the continuation. For a branch node it is shared: the
	// branch-taken sub-chain is compiled with this same index as its
	// tail, so both paths reconverge here.
	next int
}

// program is the immutable backing array of compiled nodes. Every
// Pipeline handed to a handler during an invocation is a cursor into the
// same program.
type program struct {
	nodes []node
}

// Pipeline is a handle to "everything remaining in the chain from this
// position": the whole chain when returned by Builder.Assemble, or the
// remainder after the current handler when received as a next argument.
//
// A Pipeline is immutable and safe to invoke repeatedly — and
// concurrently, provided each invocation gets its own context and the
// handlers themselves are safe to run concurrently. The zero value is
// the empty terminal; invoking it succeeds immediately.
type Pipeline struct {
	prog *program
	head int
}

// Invoke runs the chain from this position with ctx. It returns only
// once everything it triggered has completed, and returns the first
// failure produced by any handler, or nil.
func (p Pipeline) Invoke(ctx Context) error {
	if p.prog == nil {
		return nil
	}
	return p.prog.invoke(p.head, ctx)
}

// Empty reports whether invoking this pipeline would reach no handler
// and no branch.
func (p Pipeline) Empty() bool {
	return p.prog == nil || p.head == terminal
}

// invoke dispatches on the node at idx. Branch nodes are resolved
// iteratively; control leaves the loop by entering a handler (which owns
// all further delegation through its next handle) or by falling off the
// end of the spine.
func (pr *program) invoke(idx int, ctx Context) error {
	for idx != terminal {
		n := pr.nodes[idx]
		if n.handler != nil {
			return n.handler(ctx, Pipeline{prog: pr, head: n.next})
		}
		if n.pred(ctx) {
			idx = n.taken
		} else {
			idx = n.next
		}
	}
	return nil
}

// handlerName derives a display name for a handler from its function
// symbol. Used only for DOT rendering.
func handlerName(h Handler) string {
	fn := runtime.FuncForPC(reflect.ValueOf(h).Pointer())
	if fn == nil {
		return "handler"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
