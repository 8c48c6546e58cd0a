package traverser

// Visitor receives one callback per visited logical node, with that node
// kind's environment. During a depth-first traversal the same visitor
// receives both events; consult Context().Phase() to tell them apart.
type Visitor interface {
	VisitField(*FieldEnvironment)
	VisitInlineFragment(*InlineFragmentEnvironment)
	VisitFragmentSpread(*FragmentSpreadEnvironment)
	VisitFragmentDefinition(*FragmentDefinitionEnvironment)
}

// VisitorStub is a no-op Visitor. Embed it to implement only the node kinds
// you care about.
type VisitorStub struct{}

func (VisitorStub) VisitField(*FieldEnvironment)                           {}
func (VisitorStub) VisitInlineFragment(*InlineFragmentEnvironment)         {}
func (VisitorStub) VisitFragmentSpread(*FragmentSpreadEnvironment)         {}
func (VisitorStub) VisitFragmentDefinition(*FragmentDefinitionEnvironment) {}

// Reducer folds an accumulator value through the traversal, invoked once per
// visited field. Fragment-related nodes are traversed for expansion but do
// not participate in the fold.
type Reducer func(env *FieldEnvironment, acc any) any
