package traverser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func visitedFields(t *testing.T, query string, variables map[string]any) []string {
	t.Helper()
	tr := mustTraverser(t, Options{
		Schema:    testSchema(t),
		Document:  mustParseQuery(t, query),
		Variables: variables,
	})
	v := &recordingVisitor{}
	if err := tr.VisitPreOrder(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	return v.fields
}

func TestDirectives_SkipAndInclude(t *testing.T) {
	t.Run("literal skip excludes field", func(t *testing.T) {
		got := visitedFields(t, `{ a b @skip(if: true) c @include(if: false) }`, nil)
		if diff := cmp.Diff([]string{"a"}, got); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("excluded field drops its descendants", func(t *testing.T) {
		got := visitedFields(t, `{ foo @skip(if: true) { subFoo } bar }`, nil)
		if diff := cmp.Diff([]string{"bar"}, got); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("variable-bound skip", func(t *testing.T) {
		query := `query Q($f: Boolean!) { a @skip(if: $f) b }`
		if got := visitedFields(t, query, map[string]any{"f": true}); len(got) != 1 || got[0] != "b" {
			t.Fatalf("fields = %v, want [b]", got)
		}
		if got := visitedFields(t, query, map[string]any{"f": false}); len(got) != 2 {
			t.Fatalf("fields = %v, want [a b]", got)
		}
	})

	t.Run("skip takes precedence over include", func(t *testing.T) {
		cases := []struct {
			query string
			want  []string
		}{
			{`{ a @skip(if: true) @include(if: true) b }`, []string{"b"}},
			{`{ a @skip(if: false) @include(if: false) b }`, []string{"b"}},
			{`{ a @skip(if: false) @include(if: true) b }`, []string{"a", "b"}},
		}
		for _, tc := range cases {
			if got := visitedFields(t, tc.query, nil); cmp.Diff(tc.want, got) != "" {
				t.Fatalf("query %s: fields = %v, want %v", tc.query, got, tc.want)
			}
		}
	})

	t.Run("unbound variable is an error", func(t *testing.T) {
		tr := mustTraverser(t, Options{
			Schema:   testSchema(t),
			Document: mustParseQuery(t, `query Q($f: Boolean!) { a @skip(if: $f) }`),
		})
		err := tr.VisitPreOrder(&recordingVisitor{})
		if err == nil || !strings.Contains(err.Error(), "unbound variable") {
			t.Fatalf("error = %v, want unbound variable error", err)
		}
	})
}

func TestDirectives_OnFragments(t *testing.T) {
	t.Run("skipped fragment spread contributes nothing", func(t *testing.T) {
		tr := mustTraverser(t, Options{
			Schema: testSchema(t),
			Document: mustParseQuery(t, `
				{ a ...F @skip(if: true) }
				fragment F on Query { b }
			`),
		})
		v := &recordingVisitor{}
		if err := tr.VisitPreOrder(v); err != nil {
			t.Fatalf("traversal error: %v", err)
		}
		if diff := cmp.Diff([]string{"field:a"}, v.events); diff != "" {
			t.Fatalf("events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("skipped inline fragment contributes nothing", func(t *testing.T) {
		tr := mustTraverser(t, Options{
			Schema:   testSchema(t),
			Document: mustParseQuery(t, `{ a ... @skip(if: true) { b } }`),
		})
		v := &recordingVisitor{}
		if err := tr.VisitPreOrder(v); err != nil {
			t.Fatalf("traversal error: %v", err)
		}
		if diff := cmp.Diff([]string{"field:a"}, v.events); diff != "" {
			t.Fatalf("events mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUnknownFragmentSpread_SilentlySkipped(t *testing.T) {
	tr := mustTraverser(t, Options{
		Schema:   testSchema(t),
		Document: mustParseQuery(t, `{ a ...Missing b }`),
	})
	v := &recordingVisitor{}
	if err := tr.VisitPreOrder(v); err != nil {
		t.Fatalf("traversal error: %v", err)
	}
	want := []string{"field:a", "field:b"}
	if diff := cmp.Diff(want, v.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}
