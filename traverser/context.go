package traverser

import "github.com/hanpama/gqltraverse/astwalk"

// Phase distinguishes the two events the depth-first traversal emits per node.
type Phase int

const (
	PhaseEnter Phase = iota
	PhaseLeave
)

func (p Phase) String() string {
	if p == PhaseLeave {
		return "leave"
	}
	return "enter"
}

// TraversalContext is the single mutable state object of a traversal call.
// It is threaded by reference through every callback: visitors read the
// current phase and ancestor chain from it, and the depth-first traversal
// additionally uses its accumulate slot to carry the overall result.
type TraversalContext struct {
	phase  Phase
	walker *astwalk.Walker
	acc    any
	skip   bool
}

// Phase reports whether the current callback is an enter or a leave event.
// Pre-order and reduce-pre-order callbacks always observe PhaseEnter,
// post-order and reduce-post-order always PhaseLeave.
func (c *TraversalContext) Phase() Phase { return c.phase }

// Ancestors returns the chain of AST nodes enclosing the node currently
// being visited, outermost first.
func (c *TraversalContext) Ancestors() []any { return c.walker.Ancestors() }

// SetAccumulate stores a value in the accumulate slot. The last value set
// during a depth-first traversal becomes that traversal's result.
func (c *TraversalContext) SetAccumulate(v any) { c.acc = v }

// Accumulate returns the current accumulate value, or nil if never set.
func (c *TraversalContext) Accumulate() any { return c.acc }

// SkipSubtree asks the driver not to descend into the current node's
// children. Honored when requested during a pre-order or enter-phase
// callback; a leave-phase request has nothing left to skip and is ignored.
func (c *TraversalContext) SkipSubtree() { c.skip = true }
