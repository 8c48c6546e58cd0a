// Package values converts AST value literals into runtime Go values and
// coerces them against declared input types. The traverser relies on
// CoerceArguments when building field environments; CoerceVariables is a
// convenience for embedders that still hold raw variable input.
package values

import (
	"fmt"
	"strconv"

	language "github.com/hanpama/gqltraverse/language"
	schema "github.com/hanpama/gqltraverse/schema"
)

// CoerceVariables coerces raw variable values against the operation's
// variable definitions, applying declared defaults. A missing or null value
// for a non-null variable is an error.
func CoerceVariables(
	s *schema.Schema,
	operation *language.OperationDefinition,
	variableValues map[string]any,
) (map[string]any, error) {
	coerced := make(map[string]any)
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		t := varDef.Type
		val, ok := variableValues[name]
		if !ok {
			if varDef.DefaultValue != nil {
				val, _ = FromAST(varDef.DefaultValue, nil)
			} else if t.NonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", name, t.String())
			} else {
				continue
			}
		}
		if val == nil && t.NonNull {
			return nil, fmt.Errorf("variable $%s of type %s cannot be null", name, t.String())
		}
		cv, err := Coerce(val, schema.TypeRefFromAST(t))
		if err != nil {
			return nil, fmt.Errorf("variable $%s of type %s cannot be coerced: %w", name, t.String(), err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// CoerceArguments coerces the literal arguments supplied on a field against
// the field definition's argument definitions, resolving variables through
// the supplied map and applying declared defaults. A required argument left
// unprovided (directly or through an unbound variable) is an error.
func CoerceArguments(
	def *schema.Field,
	arguments language.ArgumentList,
	variables map[string]any,
) (map[string]any, error) {
	coerced := make(map[string]any)
	for _, arg := range arguments {
		argDef := def.Argument(arg.Name)
		if argDef == nil {
			continue
		}
		val, ok := FromAST(arg.Value, variables)
		if !ok {
			// Unbound variable: treated as if the argument were omitted.
			continue
		}
		cv, err := Coerce(val, argDef.Type)
		if err != nil {
			return nil, fmt.Errorf("argument %q cannot be coerced: %w", arg.Name, err)
		}
		coerced[arg.Name] = cv
	}
	for _, argDef := range def.Arguments {
		if _, ok := coerced[argDef.Name]; ok {
			continue
		}
		if argDef.DefaultValue != nil {
			coerced[argDef.Name] = argDef.DefaultValue
		} else if schema.IsNonNull(argDef.Type) {
			return nil, fmt.Errorf("argument %q of required type %s was not provided", argDef.Name, argDef.Type)
		}
	}
	return coerced, nil
}

// FromAST converts an AST value to a runtime Go value, resolving variable
// references through the supplied map. The second return is false when the
// value is a variable with no binding.
func FromAST(value *language.Value, variables map[string]any) (any, bool) {
	if value == nil {
		return nil, true
	}
	switch value.Kind {
	case language.Variable:
		v, ok := variables[value.Raw]
		return v, ok
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv, true
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv, true
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw, true
	case language.BooleanValue:
		return value.Raw == "true", true
	case language.NullValue:
		return nil, true
	case language.ListValue:
		out := make([]any, 0, len(value.Children))
		for _, c := range value.Children {
			v, ok := FromAST(c.Value, variables)
			if !ok {
				continue
			}
			out = append(out, v)
		}
		return out, true
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, c := range value.Children {
			v, ok := FromAST(c.Value, variables)
			if !ok {
				continue
			}
			m[c.Name] = v
		}
		return m, true
	default:
		return nil, true
	}
}

// Coerce coerces a runtime value to the given GraphQL input type.
func Coerce(value any, targetType *schema.TypeRef) (any, error) {
	if schema.IsNonNull(targetType) {
		if value == nil {
			return nil, fmt.Errorf("cannot provide null for non-null type")
		}
		return Coerce(value, schema.Unwrap(targetType))
	}

	if value == nil {
		return nil, nil
	}

	if schema.IsList(targetType) {
		return coerceListValue(value, targetType)
	}

	switch schema.GetNamedType(targetType) {
	case "Int":
		return coerceToInt(value)
	case "Float":
		return coerceToFloat(value)
	case "String":
		return coerceToString(value)
	case "Boolean":
		return coerceToBoolean(value)
	case "ID":
		return coerceToID(value)
	default:
		// Custom scalars, enums and input objects pass through.
		return value, nil
	}
}

func coerceListValue(value any, listType *schema.TypeRef) (any, error) {
	innerType := schema.Unwrap(listType)
	if slice, ok := value.([]any); ok {
		coerced := make([]any, len(slice))
		for i, item := range slice {
			cv, err := Coerce(item, innerType)
			if err != nil {
				return nil, err
			}
			coerced[i] = cv
		}
		return coerced, nil
	}
	// A single value coerces to a list of one.
	cv, err := Coerce(value, innerType)
	if err != nil {
		return nil, err
	}
	return []any{cv}, nil
}

func coerceToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	case string:
		if iv, err := strconv.Atoi(v); err == nil {
			return iv, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to int", value, value)
}

func coerceToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if fv, err := strconv.ParseFloat(v, 64); err == nil {
			return fv, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to float", value, value)
}

func coerceToString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return fmt.Sprintf("%v", value), nil
}

func coerceToBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to boolean", value, value)
}

func coerceToID(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return fmt.Sprintf("%v", value), nil
	}
}
