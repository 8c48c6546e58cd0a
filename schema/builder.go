package schema

import (
	"fmt"
	"strconv"

	language "github.com/hanpama/gqltraverse/language"
)

// BuildFromSDL parses an SDL string and returns the corresponding Schema.
// Builtin scalars, the executable directives, and the introspection types are
// always registered. The document is assumed valid; this builder resolves
// structure, it does not re-validate.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	return BuildFromDocument(doc)
}

// MustBuildFromSDL is BuildFromSDL that panics on error, for tests and
// statically known schemas.
func MustBuildFromSDL(sdl string) *Schema {
	s, err := BuildFromSDL(sdl)
	if err != nil {
		panic(err)
	}
	return s
}

// BuildFromDocument builds a Schema from an already-parsed schema document.
func BuildFromDocument(doc *language.SchemaDocument) (*Schema, error) {
	s := NewSchema("")
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)
	s.AddDirective(includeDirective).
		AddDirective(skipDirective).
		AddDirective(deprecatedDirective)
	addIntrospectionTypes(s)

	for _, def := range doc.Definitions {
		t, err := buildDefinition(def)
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}
	for _, ext := range doc.Extensions {
		if err := mergeExtension(s, ext); err != nil {
			return nil, err
		}
	}

	applyRootOperationTypes(s, doc)
	computeInterfacePossibleTypes(s)
	return s, nil
}

func buildDefinition(def *language.Definition) (*Type, error) {
	t := NewType(def.Name, kindFromDefinition(def.Kind), def.Description)
	switch def.Kind {
	case language.Object, language.Interface:
		for _, name := range def.Interfaces {
			t.AddInterface(name)
		}
		for _, fd := range def.Fields {
			t.AddField(buildField(fd))
		}
	case language.Union:
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
	case language.Enum:
		for _, ev := range def.EnumValues {
			t.AddEnumValue(&EnumValue{Name: ev.Name, Description: ev.Description})
		}
	case language.InputObject:
		for _, fd := range def.Fields {
			t.AddInputField(&InputValue{
				Name:         fd.Name,
				Description:  fd.Description,
				Type:         TypeRefFromAST(fd.Type),
				DefaultValue: literalToGo(fd.DefaultValue),
			})
		}
	case language.Scalar:
		// Nothing beyond the name.
	default:
		return nil, fmt.Errorf("schema: unsupported definition kind %q for %q", def.Kind, def.Name)
	}
	return t, nil
}

func buildField(fd *language.FieldDefinition) *Field {
	f := &Field{
		Name:        fd.Name,
		Description: fd.Description,
		Type:        TypeRefFromAST(fd.Type),
	}
	for _, ad := range fd.Arguments {
		f.AddArgument(&InputValue{
			Name:         ad.Name,
			Description:  ad.Description,
			Type:         TypeRefFromAST(ad.Type),
			DefaultValue: literalToGo(ad.DefaultValue),
		})
	}
	if d := fd.Directives.ForName("deprecated"); d != nil {
		f.IsDeprecated = true
		if arg := d.Arguments.ForName("reason"); arg != nil {
			if reason, ok := literalToGo(arg.Value).(string); ok {
				f.DeprecationReason = reason
			}
		}
	}
	return f
}

func mergeExtension(s *Schema, ext *language.Definition) error {
	t := s.Types[ext.Name]
	if t == nil {
		var err error
		t, err = buildDefinition(ext)
		if err != nil {
			return err
		}
		s.AddType(t)
		return nil
	}
	for _, name := range ext.Interfaces {
		t.AddInterface(name)
	}
	for _, fd := range ext.Fields {
		t.AddField(buildField(fd))
	}
	for _, name := range ext.Types {
		t.AddPossibleType(name)
	}
	for _, ev := range ext.EnumValues {
		t.AddEnumValue(&EnumValue{Name: ev.Name, Description: ev.Description})
	}
	return nil
}

// applyRootOperationTypes picks the root operation types from the schema
// definition blocks, falling back to the conventional Query/Mutation/
// Subscription names.
func applyRootOperationTypes(s *Schema, doc *language.SchemaDocument) {
	for _, sd := range append(doc.Schema, doc.SchemaExtension...) {
		for _, ot := range sd.OperationTypes {
			switch ot.Operation {
			case language.Query:
				s.SetQueryType(ot.Type)
			case language.Mutation:
				s.SetMutationType(ot.Type)
			case language.Subscription:
				s.SetSubscriptionType(ot.Type)
			}
		}
	}
	if s.QueryType == "" && s.Types["Query"] != nil {
		s.SetQueryType("Query")
	}
	if s.MutationType == "" && s.Types["Mutation"] != nil {
		s.SetMutationType("Mutation")
	}
	if s.SubscriptionType == "" && s.Types["Subscription"] != nil {
		s.SetSubscriptionType("Subscription")
	}
}

func computeInterfacePossibleTypes(s *Schema) {
	for _, t := range s.Types {
		if t.Kind != TypeKindObject {
			continue
		}
		for _, ifaceName := range t.Interfaces {
			if iface := s.Types[ifaceName]; iface != nil && iface.Kind == TypeKindInterface {
				iface.AddPossibleType(t.Name)
			}
		}
	}
}

func kindFromDefinition(kind language.DefinitionKind) TypeKind {
	switch kind {
	case language.Object:
		return TypeKindObject
	case language.Interface:
		return TypeKindInterface
	case language.Union:
		return TypeKindUnion
	case language.Enum:
		return TypeKindEnum
	case language.InputObject:
		return TypeKindInputObject
	default:
		return TypeKindScalar
	}
}

// TypeRefFromAST converts an AST type reference into a TypeRef.
func TypeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(TypeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(TypeRefFromAST(t.Elem))
	}
	return nil
}

// literalToGo converts a literal AST value (no variables) to a Go value.
// Used for schema-side default values.
func literalToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = literalToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, c := range value.Children {
			m[c.Name] = literalToGo(c.Value)
		}
		return m
	default:
		return nil
	}
}
