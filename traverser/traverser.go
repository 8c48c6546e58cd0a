// Package traverser walks a parsed GraphQL document against a schema and
// hands every selected field, fragment spread, inline fragment, and fragment
// definition to a visitor or reducer as a fully resolved environment: parent
// field chain, concrete parent type, resolved field definition, coerced
// arguments, and @skip/@include outcomes. It performs no execution and no
// validation; document and schema are assumed valid.
package traverser

import (
	"errors"
	"fmt"

	language "github.com/hanpama/gqltraverse/language"
	schema "github.com/hanpama/gqltraverse/schema"
)

// Options configures a Traverser. Exactly one of two mutually exclusive
// root-selection groups must be supplied:
//
// Group A walks an operation of a whole document: Document, plus an optional
// OperationName to disambiguate when the document holds several operations.
// The operation's selection set is traversed against the schema's root type
// for that operation kind, and the document's own fragments serve as the
// fragment index.
//
// Group B resumes traversal mid-tree: Root, the selection node to start
// from; RootParentType, the type to resolve it against; and Fragments, the
// index used to expand spreads (may be empty, must be non-nil).
//
// Schema is always required. Variables is the already-resolved variables
// mapping consulted by @skip/@include and argument coercion; it is never
// coerced here.
type Options struct {
	// Group A
	Document      *language.QueryDocument
	OperationName string

	// Group B
	Root           language.Selection
	RootParentType *schema.TypeRef
	Fragments      map[string]*language.FragmentDefinition

	// Common
	Schema    *schema.Schema
	Variables map[string]any

	// MaxDepth overrides the defensive recursion limit
	// (astwalk.DefaultMaxDepth). Zero keeps the default.
	MaxDepth int
}

// Traverser walks one configured root. It holds no per-call state: the entry
// points may be invoked any number of times, in any order, and concurrent
// calls over the shared read-only document, schema and fragment index are
// safe.
type Traverser struct {
	schema         *schema.Schema
	variables      map[string]any
	fragments      map[string]*language.FragmentDefinition
	root           any
	rootParentType *schema.TypeRef
	maxDepth       int
}

// New validates the configuration and returns a Traverser. Mixing the two
// root-selection groups, supplying neither, or naming an operation that
// cannot be located unambiguously is a construction error; no partial
// traverser is returned.
func New(opts Options) (*Traverser, error) {
	if opts.Schema == nil {
		return nil, errors.New("traverser: Schema is required")
	}

	groupA := opts.Document != nil || opts.OperationName != ""
	groupB := opts.Root != nil || opts.RootParentType != nil || opts.Fragments != nil
	switch {
	case groupA && groupB:
		return nil, errors.New("traverser: Document/OperationName and Root/RootParentType/Fragments are mutually exclusive")
	case !groupA && !groupB:
		return nil, errors.New("traverser: either a document or an explicit root selection must be supplied")
	}

	t := &Traverser{
		schema:    opts.Schema,
		variables: opts.Variables,
		maxDepth:  opts.MaxDepth,
	}

	if groupA {
		if opts.Document == nil {
			return nil, errors.New("traverser: OperationName given without a Document")
		}
		operation, err := selectOperation(opts.Document, opts.OperationName)
		if err != nil {
			return nil, err
		}
		rootType, err := rootTypeFor(opts.Schema, operation.Operation)
		if err != nil {
			return nil, err
		}
		t.fragments = make(map[string]*language.FragmentDefinition, len(opts.Document.Fragments))
		for _, frag := range opts.Document.Fragments {
			t.fragments[frag.Name] = frag
		}
		t.root = operation
		t.rootParentType = schema.NamedType(rootType.Name)
		return t, nil
	}

	if opts.Root == nil || opts.RootParentType == nil || opts.Fragments == nil {
		return nil, errors.New("traverser: Root, RootParentType and Fragments must all be supplied")
	}
	t.fragments = opts.Fragments
	t.root = opts.Root
	t.rootParentType = opts.RootParentType
	return t, nil
}

// VisitPreOrder visits every logical node before its children.
func (t *Traverser) VisitPreOrder(v Visitor) error {
	_, err := t.run(modePreOrder, v, nil, nil)
	return err
}

// VisitPostOrder visits every logical node after its children.
func (t *Traverser) VisitPostOrder(v Visitor) error {
	_, err := t.run(modePostOrder, v, nil, nil)
	return err
}

// VisitDepthFirst emits one enter and one leave event per logical node to
// the same visitor. The returned value is whatever the visitor last stored
// via Context().SetAccumulate, or nil if it never stored one.
func (t *Traverser) VisitDepthFirst(v Visitor) (any, error) {
	return t.run(modeDepthFirst, v, nil, nil)
}

// ReducePreOrder folds initial through reducer in pre-order, one call per
// visited field, and returns the final accumulator.
func (t *Traverser) ReducePreOrder(reducer Reducer, initial any) (any, error) {
	return t.run(modeReducePreOrder, nil, reducer, initial)
}

// ReducePostOrder folds initial through reducer in post-order, one call per
// visited field, and returns the final accumulator.
func (t *Traverser) ReducePostOrder(reducer Reducer, initial any) (any, error) {
	return t.run(modeReducePostOrder, nil, reducer, initial)
}

func selectOperation(doc *language.QueryDocument, name string) (*language.OperationDefinition, error) {
	if name == "" {
		switch len(doc.Operations) {
		case 0:
			return nil, errors.New("traverser: document contains no operations")
		case 1:
			return doc.Operations[0], nil
		default:
			return nil, errors.New("traverser: operation name required when the document contains multiple operations")
		}
	}
	for _, op := range doc.Operations {
		if op.Name == name {
			return op, nil
		}
	}
	return nil, fmt.Errorf("traverser: operation %q not found in document", name)
}

func rootTypeFor(s *schema.Schema, kind language.Operation) (*schema.Type, error) {
	var rootType *schema.Type
	switch kind {
	case language.Query:
		rootType = s.GetQueryType()
	case language.Mutation:
		rootType = s.GetMutationType()
	case language.Subscription:
		rootType = s.GetSubscriptionType()
	default:
		return nil, fmt.Errorf("traverser: unsupported operation type %q", kind)
	}
	if rootType == nil {
		return nil, fmt.Errorf("traverser: schema has no root type for %s operations", kind)
	}
	return rootType, nil
}
