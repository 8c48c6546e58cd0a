package traverser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hanpama/gqltraverse/astwalk"
)

func TestVisitPreOrder_ParentBeforeChild(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema:   testSchema(t),
		Document: mustParseQuery(t, `{ foo { subFoo } bar }`),
	})
	v := &recordingVisitor{}
	if err := tr.VisitPreOrder(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	want := []string{"foo", "subFoo", "bar"}
	if diff := cmp.Diff(want, v.fields); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitPostOrder_ChildBeforeParent(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema:   testSchema(t),
		Document: mustParseQuery(t, `{ foo { subFoo } bar }`),
	})
	v := &recordingVisitor{}
	if err := tr.VisitPostOrder(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	want := []string{"subFoo", "foo", "bar"}
	if diff := cmp.Diff(want, v.fields); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentSpread_PreservesDocumentOrderInterleaving(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema: testSchema(t),
		Document: mustParseQuery(t, `
			{ a ...F b }
			fragment F on Query { c d }
		`),
	})
	v := &recordingVisitor{}
	if err := tr.VisitPreOrder(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	want := []string{"a", "c", "d", "b"}
	if diff := cmp.Diff(want, v.fields); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitDepthFirst_EnterLeavePairing(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema: testSchema(t),
		Document: mustParseQuery(t, `
			{ foo { subFoo } ...F }
			fragment F on Query { bar }
		`),
	})
	v := &recordingVisitor{withPhase: true}
	if _, err := tr.VisitDepthFirst(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	want := []string{
		"enter field:foo",
		"enter field:subFoo",
		"leave field:subFoo",
		"leave field:foo",
		"enter spread:F",
		"enter fragment:F",
		"enter field:bar",
		"leave field:bar",
		"leave fragment:F",
		"leave spread:F",
	}
	if diff := cmp.Diff(want, v.events); diff != "" {
		t.Fatalf("event sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitDepthFirst_AccumulateValueReturned(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema:   testSchema(t),
		Document: mustParseQuery(t, `{ foo { subFoo } bar }`),
	})

	t.Run("last set value wins", func(t *testing.T) {
		v := &accumulatingVisitor{}
		got, err := tr.VisitDepthFirst(v)
		if err != nil {
			t.Fatalf("traversal error: %v", err)
		}
		// Three fields, each enter event increments once.
		if got != 3 {
			t.Fatalf("accumulate = %v, want 3", got)
		}
	})

	t.Run("never set yields nil", func(t *testing.T) {
		got, err := tr.VisitDepthFirst(&recordingVisitor{})
		if err != nil {
			t.Fatalf("traversal error: %v", err)
		}
		if got != nil {
			t.Fatalf("accumulate = %v, want nil", got)
		}
	})
}

type accumulatingVisitor struct{ VisitorStub }

func (accumulatingVisitor) VisitField(env *FieldEnvironment) {
	ctx := env.Context()
	if ctx.Phase() != PhaseEnter {
		return
	}
	n, _ := ctx.Accumulate().(int)
	ctx.SetAccumulate(n + 1)
}

func TestSkipSubtree_PrunesChildrenOnly(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema:   testSchema(t),
		Document: mustParseQuery(t, `{ foo { subFoo } bar }`),
	})
	v := &skipFooVisitor{}
	if err := tr.VisitPreOrder(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	want := []string{"foo", "bar"}
	if diff := cmp.Diff(want, v.fields); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

type skipFooVisitor struct {
	VisitorStub
	fields []string
}

func (v *skipFooVisitor) VisitField(env *FieldEnvironment) {
	v.fields = append(v.fields, env.Field.Name)
	if env.Field.Name == "foo" {
		env.Context().SkipSubtree()
	}
}

func TestAncestors_ExposedDuringVisit(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema:   testSchema(t),
		Document: mustParseQuery(t, `{ foo { subFoo } }`),
	})
	v := &ancestorVisitor{depths: map[string]int{}}
	if err := tr.VisitPreOrder(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	// foo is below the operation node, subFoo below operation and foo.
	if v.depths["foo"] != 1 || v.depths["subFoo"] != 2 {
		t.Fatalf("ancestor chain lengths = %v, want foo:1 subFoo:2", v.depths)
	}
}

type ancestorVisitor struct {
	VisitorStub
	depths map[string]int
}

func (v *ancestorVisitor) VisitField(env *FieldEnvironment) {
	v.depths[env.Field.Name] = len(env.Context().Ancestors())
}

func TestCyclicFragments_FailDeterministically(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema: testSchema(t),
		Document: mustParseQuery(t, `
			{ ...A }
			fragment A on Query { bar ...A }
		`),
		MaxDepth: 16,
	})
	err := tr.VisitPreOrder(&recordingVisitor{})
	if !errors.Is(err, astwalk.ErrMaxDepth) {
		t.Fatalf("error = %v, want ErrMaxDepth", err)
	}
}

func TestTraversal_IsIdempotent(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema: testSchema(t),
		Document: mustParseQuery(t, `
			{ a ...F foo { subFoo } }
			fragment F on Query { b }
		`),
	})
	first := &recordingVisitor{}
	second := &recordingVisitor{}
	if err := tr.VisitPreOrder(first); err != nil {
		t.Fatalf("first traversal error: %v", err)
	}
	if err := tr.VisitPreOrder(second); err != nil {
		t.Fatalf("second traversal error: %v", err)
	}
	if diff := cmp.Diff(first.events, second.events); diff != "" {
		t.Fatalf("traversals disagree (-first +second):\n%s", diff)
	}
}
