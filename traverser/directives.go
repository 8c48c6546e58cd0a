package traverser

import (
	"fmt"

	language "github.com/hanpama/gqltraverse/language"
)

// shouldInclude decides whether a node belongs to the logical selection tree.
// @skip is evaluated first: if its `if` argument is true the node is excluded
// and @include is never consulted. Otherwise @include with a false `if`
// excludes the node. A node carrying neither directive is included.
//
// The function is pure; it reads only the directive list and the variables
// map. An `if` argument bound to a variable with no binding is an error, not
// a silent false.
func shouldInclude(directives language.DirectiveList, variables map[string]any) (bool, error) {
	if skip := directives.ForName("skip"); skip != nil {
		cond, err := directiveIfArgument(skip, variables)
		if err != nil {
			return false, err
		}
		if cond {
			return false, nil
		}
	}
	if include := directives.ForName("include"); include != nil {
		cond, err := directiveIfArgument(include, variables)
		if err != nil {
			return false, err
		}
		if !cond {
			return false, nil
		}
	}
	return true, nil
}

func directiveIfArgument(d *language.Directive, variables map[string]any) (bool, error) {
	arg := d.Arguments.ForName("if")
	if arg == nil {
		return false, fmt.Errorf("traverser: directive @%s is missing its \"if\" argument", d.Name)
	}
	switch arg.Value.Kind {
	case language.BooleanValue:
		return arg.Value.Raw == "true", nil
	case language.Variable:
		v, ok := variables[arg.Value.Raw]
		if !ok {
			return false, fmt.Errorf("traverser: directive @%s references unbound variable $%s", d.Name, arg.Value.Raw)
		}
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("traverser: variable $%s used by @%s is %T, want bool", arg.Value.Raw, d.Name, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("traverser: directive @%s has a non-boolean \"if\" argument", d.Name)
	}
}
