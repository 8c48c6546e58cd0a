package traverser

import (
	"fmt"

	language "github.com/hanpama/gqltraverse/language"
	schema "github.com/hanpama/gqltraverse/schema"
)

// FieldEnvironment describes one field's position in the logical
// (fragment-expanded) selection tree. Environments are built per visit and
// must not be retained after the traversal call that produced them.
type FieldEnvironment struct {
	// Field is the AST node being visited.
	Field *language.Field

	// FieldDefinition is the resolved schema definition. For meta fields it is
	// a synthetic, type-only definition.
	FieldDefinition *schema.Field

	// ParentType is the type the field was selected on, exactly as declared at
	// that point: NonNull and List wrappers from the enclosing field's type are
	// preserved, not stripped.
	ParentType *schema.TypeRef

	// SelectionSetContainer is the AST node whose selection set holds this
	// field: an operation, field, inline fragment, or fragment definition.
	// Nil only when traversal was rooted at this very node.
	SelectionSetContainer any

	// Arguments holds the coerced argument values, including applied defaults.
	Arguments map[string]any

	// IsMetaField marks __typename, __schema and __type.
	IsMetaField bool

	// Parent is the environment of the enclosing field, nil at the top level.
	Parent *FieldEnvironment

	schema *schema.Schema
	ctx    *TraversalContext
}

// FieldsContainer returns the composite type that declares this field.
// Meta fields are not declared by any type, so requesting their container is
// an error; the error surfaces here, at the accessor, not during traversal.
func (e *FieldEnvironment) FieldsContainer() (*schema.Type, error) {
	if e.IsMetaField {
		return nil, fmt.Errorf("traverser: meta field %q has no fields container", e.Field.Name)
	}
	named := e.schema.Types[e.ParentType.GetNamedType()]
	if named == nil || !named.IsComposite() {
		return nil, fmt.Errorf("traverser: parent type %q of field %q is not a fields container", e.ParentType, e.Field.Name)
	}
	return named, nil
}

// Depth returns the length of the parent environment chain.
func (e *FieldEnvironment) Depth() int {
	n := 0
	for p := e.Parent; p != nil; p = p.Parent {
		n++
	}
	return n
}

func (e *FieldEnvironment) Context() *TraversalContext { return e.ctx }

// FragmentSpreadEnvironment describes a visited fragment spread together
// with the definition it resolved to.
type FragmentSpreadEnvironment struct {
	Spread     *language.FragmentSpread
	Definition *language.FragmentDefinition

	ctx *TraversalContext
}

func (e *FragmentSpreadEnvironment) Context() *TraversalContext { return e.ctx }

// InlineFragmentEnvironment describes a visited inline fragment.
type InlineFragmentEnvironment struct {
	InlineFragment *language.InlineFragment

	ctx *TraversalContext
}

func (e *InlineFragmentEnvironment) Context() *TraversalContext { return e.ctx }

// FragmentDefinitionEnvironment describes a fragment definition reached
// through one of its spreads.
type FragmentDefinitionEnvironment struct {
	FragmentDefinition *language.FragmentDefinition

	ctx *TraversalContext
}

func (e *FragmentDefinitionEnvironment) Context() *TraversalContext { return e.ctx }
