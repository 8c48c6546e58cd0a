package traverser

import (
	"testing"

	language "github.com/hanpama/gqltraverse/language"
	schema "github.com/hanpama/gqltraverse/schema"
)

const testSDL = `
type Query {
  a: String
  b: String
  c: String
  d: String
  foo: Foo
  bar: String
  requiredFoo: Foo!
  foos: [Foo!]
  animal: Animal
  pet: Pet
  hello(name: String = "world", loud: Boolean): String
}

type Foo {
  subFoo: String
  bar: Bar
}

type Bar {
  baz: String
}

interface Animal {
  name: String
}

type Dog implements Animal {
  name: String
  barkVolume: Int
}

type Cat implements Animal {
  name: String
  meowVolume: Int
}

union Pet = Dog | Cat
`

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL(testSDL)
	if err != nil {
		t.Fatalf("schema build error: %v", err)
	}
	return s
}

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

func mustTraverser(t *testing.T, opts Options) *Traverser {
	t.Helper()
	tr, err := New(opts)
	if err != nil {
		t.Fatalf("traverser construction error: %v", err)
	}
	return tr
}

// recordingVisitor captures visited node names. fields holds field names
// only; events holds every callback tagged with its node kind (and, during
// depth-first traversals, its phase).
type recordingVisitor struct {
	VisitorStub
	withPhase bool
	fields    []string
	events    []string

	fieldEnvs map[string]*FieldEnvironment
}

func (v *recordingVisitor) record(env interface{ Context() *TraversalContext }, kind, name string) {
	e := kind + ":" + name
	if v.withPhase {
		e = env.Context().Phase().String() + " " + e
	}
	v.events = append(v.events, e)
}

func (v *recordingVisitor) VisitField(env *FieldEnvironment) {
	if !v.withPhase || env.Context().Phase() == PhaseEnter {
		v.fields = append(v.fields, env.Field.Name)
	}
	if v.fieldEnvs == nil {
		v.fieldEnvs = make(map[string]*FieldEnvironment)
	}
	v.fieldEnvs[env.Field.Name] = env
	v.record(env, "field", env.Field.Name)
}

func (v *recordingVisitor) VisitInlineFragment(env *InlineFragmentEnvironment) {
	v.record(env, "inline", env.InlineFragment.TypeCondition)
}

func (v *recordingVisitor) VisitFragmentSpread(env *FragmentSpreadEnvironment) {
	v.record(env, "spread", env.Spread.Name)
}

func (v *recordingVisitor) VisitFragmentDefinition(env *FragmentDefinitionEnvironment) {
	v.record(env, "fragment", env.FragmentDefinition.Name)
}
