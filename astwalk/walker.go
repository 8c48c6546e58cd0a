// Package astwalk provides a generic depth-first walker over GraphQL AST
// nodes. It owns enter/leave dispatch, the ancestor stack, and the recursion
// depth guard; it knows nothing about schemas, directives, or fragments.
// Which nodes a node expands to is entirely up to the ChildrenFunc, so a
// caller can splice fragment definitions into the walk at their spread sites.
package astwalk

import "errors"

// DefaultMaxDepth bounds the walk depth. Valid documents stay far below it;
// the guard exists so cyclically-defined fragments fail deterministically
// instead of overflowing the stack.
const DefaultMaxDepth = 512

// ErrMaxDepth is returned when a walk exceeds the configured depth limit.
var ErrMaxDepth = errors.New("astwalk: max traversal depth exceeded")

// Action tells the walker how to proceed after an Enter callback.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// SkipChildren skips the node's children; Leave is still invoked so that
	// enter/leave callbacks stay paired.
	SkipChildren
	// Stop abandons the walk immediately. No further callbacks fire, not even
	// Leave for nodes already entered.
	Stop
)

// Visitor receives enter and leave events for every walked node.
type Visitor interface {
	Enter(node any) (Action, error)
	Leave(node any) error
}

// ChildrenFunc reports the child nodes the walk descends into.
type ChildrenFunc func(node any) []any

// Walker drives a single-rooted depth-first walk. It is not safe for
// concurrent use; create one walker per walk.
type Walker struct {
	children  ChildrenFunc
	maxDepth  int
	ancestors []any
	stopped   bool
}

func NewWalker(children ChildrenFunc) *Walker {
	return &Walker{children: children, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth overrides the depth guard. Values below one are ignored.
func (w *Walker) SetMaxDepth(depth int) *Walker {
	if depth > 0 {
		w.maxDepth = depth
	}
	return w
}

// Ancestors returns the chain of nodes enclosing the node currently being
// visited, outermost first. The current node itself is not included.
func (w *Walker) Ancestors() []any {
	out := make([]any, len(w.ancestors))
	copy(out, w.ancestors)
	return out
}

// Depth returns the nesting depth of the node currently being visited.
func (w *Walker) Depth() int { return len(w.ancestors) }

// Walk visits root and its transitive children depth-first.
func (w *Walker) Walk(root any, v Visitor) error {
	w.ancestors = w.ancestors[:0]
	w.stopped = false
	return w.walk(root, v)
}

func (w *Walker) walk(node any, v Visitor) error {
	if len(w.ancestors) >= w.maxDepth {
		return ErrMaxDepth
	}

	action, err := v.Enter(node)
	if err != nil {
		return err
	}
	switch action {
	case Stop:
		w.stopped = true
		return nil
	case Continue:
		w.ancestors = append(w.ancestors, node)
		for _, child := range w.children(node) {
			if err := w.walk(child, v); err != nil {
				return err
			}
			if w.stopped {
				return nil
			}
		}
		w.ancestors = w.ancestors[:len(w.ancestors)-1]
	}
	return v.Leave(node)
}
