package traverser

import (
	"fmt"

	"github.com/hanpama/gqltraverse/astwalk"
	language "github.com/hanpama/gqltraverse/language"
	schema "github.com/hanpama/gqltraverse/schema"
	"github.com/hanpama/gqltraverse/values"
)

type mode int

const (
	modePreOrder mode = iota
	modePostOrder
	modeDepthFirst
	modeReducePreOrder
	modeReducePostOrder
)

// driver implements astwalk.Visitor for one traversal call. It expands
// fragment spreads through childrenOf, filters directive-excluded nodes,
// builds environments, and dispatches to the visitor or reducer according to
// the selected mode.
type driver struct {
	t       *Traverser
	mode    mode
	visitor Visitor
	reducer Reducer
	acc     any
	ctx     *TraversalContext
	stack   []frame
}

// frame is the resolution context a node establishes for its children,
// pushed on enter and popped on leave. parentType carries the enclosing
// field's declared type verbatim; wrappers are only peeled when a child
// field definition is looked up.
type frame struct {
	excluded   bool
	env        any
	fieldEnv   *FieldEnvironment
	parentType *schema.TypeRef
	parentEnv  *FieldEnvironment
	container  any
}

func (t *Traverser) run(m mode, v Visitor, r Reducer, initial any) (any, error) {
	d := &driver{t: t, mode: m, visitor: v, reducer: r, acc: initial}
	w := astwalk.NewWalker(d.childrenOf).SetMaxDepth(t.maxDepth)
	d.ctx = &TraversalContext{walker: w}
	d.stack = append(d.stack, frame{parentType: t.rootParentType})

	if err := w.Walk(t.root, d); err != nil {
		return nil, err
	}
	switch m {
	case modeDepthFirst:
		return d.ctx.acc, nil
	case modeReducePreOrder, modeReducePostOrder:
		return d.acc, nil
	default:
		return nil, nil
	}
}

func (d *driver) childrenOf(node any) []any {
	switch n := node.(type) {
	case *language.OperationDefinition:
		return selectionNodes(n.SelectionSet)
	case *language.Field:
		return selectionNodes(n.SelectionSet)
	case *language.InlineFragment:
		return selectionNodes(n.SelectionSet)
	case *language.FragmentDefinition:
		return selectionNodes(n.SelectionSet)
	case *language.FragmentSpread:
		// Expansion point: the spread's sole child is its definition, so the
		// fragment's selections interleave at the spread's position.
		if def := d.t.fragments[n.Name]; def != nil {
			return []any{def}
		}
		return nil
	default:
		return nil
	}
}

func selectionNodes(set language.SelectionSet) []any {
	out := make([]any, len(set))
	for i, sel := range set {
		out[i] = sel
	}
	return out
}

func (d *driver) Enter(node any) (astwalk.Action, error) {
	cur := d.top()
	switch n := node.(type) {
	case *language.OperationDefinition:
		d.push(frame{parentType: cur.parentType, parentEnv: cur.parentEnv, container: n})
		return astwalk.Continue, nil

	case *language.Field:
		included, err := shouldInclude(n.Directives, d.t.variables)
		if err != nil {
			return 0, err
		}
		if !included {
			d.push(frame{excluded: true})
			return astwalk.SkipChildren, nil
		}
		env, err := d.buildFieldEnvironment(n, cur)
		if err != nil {
			return 0, err
		}
		d.dispatchEnter(env, env)
		d.push(frame{
			env:        env,
			fieldEnv:   env,
			parentType: env.FieldDefinition.Type,
			parentEnv:  env,
			container:  n,
		})
		return d.pendingAction(), nil

	case *language.FragmentSpread:
		included, err := shouldInclude(n.Directives, d.t.variables)
		if err != nil {
			return 0, err
		}
		def := d.t.fragments[n.Name]
		if !included || def == nil {
			// Unknown fragments are a silent structural omission, same as
			// directive-excluded nodes: no environment, no descent.
			d.push(frame{excluded: true})
			return astwalk.SkipChildren, nil
		}
		var env any
		if d.visitor != nil {
			env = &FragmentSpreadEnvironment{Spread: n, Definition: def, ctx: d.ctx}
			d.dispatchEnter(env, nil)
		}
		d.push(frame{env: env, parentType: cur.parentType, parentEnv: cur.parentEnv, container: cur.container})
		return d.pendingAction(), nil

	case *language.InlineFragment:
		included, err := shouldInclude(n.Directives, d.t.variables)
		if err != nil {
			return 0, err
		}
		if !included {
			d.push(frame{excluded: true})
			return astwalk.SkipChildren, nil
		}
		var env any
		if d.visitor != nil {
			env = &InlineFragmentEnvironment{InlineFragment: n, ctx: d.ctx}
			d.dispatchEnter(env, nil)
		}
		parentType := cur.parentType
		if n.TypeCondition != "" {
			parentType = schema.NamedType(n.TypeCondition)
		}
		d.push(frame{env: env, parentType: parentType, parentEnv: cur.parentEnv, container: n})
		return d.pendingAction(), nil

	case *language.FragmentDefinition:
		var env any
		if d.visitor != nil {
			env = &FragmentDefinitionEnvironment{FragmentDefinition: n, ctx: d.ctx}
			d.dispatchEnter(env, nil)
		}
		d.push(frame{env: env, parentType: schema.NamedType(n.TypeCondition), parentEnv: cur.parentEnv, container: n})
		return d.pendingAction(), nil
	}

	return 0, fmt.Errorf("traverser: unexpected node type %T in selection tree", node)
}

func (d *driver) Leave(node any) error {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	if f.excluded || (f.env == nil && f.fieldEnv == nil) {
		return nil
	}
	d.ctx.phase = PhaseLeave
	switch d.mode {
	case modePostOrder, modeDepthFirst:
		d.visit(f.env)
	case modeReducePostOrder:
		if f.fieldEnv != nil {
			d.acc = d.reducer(f.fieldEnv, d.acc)
		}
	}
	d.ctx.skip = false
	return nil
}

func (d *driver) top() *frame { return &d.stack[len(d.stack)-1] }

func (d *driver) push(f frame) { d.stack = append(d.stack, f) }

// dispatchEnter fires the enter-side callback for env. fieldEnv is non-nil
// only for fields, which are the sole participants in reduce folds.
func (d *driver) dispatchEnter(env any, fieldEnv *FieldEnvironment) {
	d.ctx.phase = PhaseEnter
	switch d.mode {
	case modePreOrder, modeDepthFirst:
		d.visit(env)
	case modeReducePreOrder:
		if fieldEnv != nil {
			d.acc = d.reducer(fieldEnv, d.acc)
		}
	}
}

// pendingAction consumes a SkipSubtree request made during the callback that
// just ran.
func (d *driver) pendingAction() astwalk.Action {
	if d.ctx.skip {
		d.ctx.skip = false
		return astwalk.SkipChildren
	}
	return astwalk.Continue
}

func (d *driver) visit(env any) {
	if d.visitor == nil || env == nil {
		return
	}
	switch e := env.(type) {
	case *FieldEnvironment:
		d.visitor.VisitField(e)
	case *InlineFragmentEnvironment:
		d.visitor.VisitInlineFragment(e)
	case *FragmentSpreadEnvironment:
		d.visitor.VisitFragmentSpread(e)
	case *FragmentDefinitionEnvironment:
		d.visitor.VisitFragmentDefinition(e)
	}
}

// buildFieldEnvironment resolves the field against the current parent type
// and assembles its environment. Ordinary fields resolve on object and
// interface parents only; beneath a union, or when the name is not declared,
// only the meta fields remain valid.
func (d *driver) buildFieldEnvironment(n *language.Field, cur *frame) (*FieldEnvironment, error) {
	parentType := cur.parentType
	named := d.t.schema.Types[parentType.GetNamedType()]
	if named == nil {
		return nil, fmt.Errorf("traverser: unknown parent type %q for field %q", parentType.GetNamedType(), n.Name)
	}

	var def *schema.Field
	if named.IsComposite() {
		def = named.Field(n.Name)
	}
	isMeta := false
	if def == nil {
		def = schema.MetaFieldDefinition(n.Name)
		if def == nil {
			return nil, fmt.Errorf("traverser: field %q not found on type %q", n.Name, named.Name)
		}
		isMeta = true
	}

	args, err := values.CoerceArguments(def, n.Arguments, d.t.variables)
	if err != nil {
		return nil, fmt.Errorf("traverser: field %q: %w", n.Name, err)
	}

	return &FieldEnvironment{
		Field:                 n,
		FieldDefinition:       def,
		ParentType:            parentType,
		SelectionSetContainer: cur.container,
		Arguments:             args,
		IsMetaField:           isMeta,
		Parent:                cur.parentEnv,
		schema:                d.t.schema,
		ctx:                   d.ctx,
	}, nil
}
