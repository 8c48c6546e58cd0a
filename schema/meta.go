package schema

// Meta field names reserved by the type system itself. `__typename` is valid
// on any composite or union parent; `__schema` and `__type` only at the query
// root, which upstream validation is expected to have enforced.
const (
	TypenameMetaField = "__typename"
	SchemaMetaField   = "__schema"
	TypeMetaField     = "__type"
)

// IsMetaField reports whether name is one of the reserved introspection fields.
func IsMetaField(name string) bool {
	return name == TypenameMetaField || name == SchemaMetaField || name == TypeMetaField
}

var typenameFieldDef = &Field{
	Name:        TypenameMetaField,
	Description: "The name of the current Object type at runtime.",
	Type:        NonNullType(NamedType("String")),
}

var schemaFieldDef = &Field{
	Name:        SchemaMetaField,
	Description: "Access the current type schema of this server.",
	Type:        NonNullType(NamedType("__Schema")),
}

var typeFieldDef = &Field{
	Name:        TypeMetaField,
	Description: "Request the type information of a single type.",
	Arguments: []*InputValue{
		{
			Name:        "name",
			Description: "The name of the type to look up.",
			Type:        NonNullType(NamedType("String")),
		},
	},
	Type: NamedType("__Type"),
}

// MetaFieldDefinition returns the synthetic, type-only definition for a meta
// field, or nil when name is not a meta field. The returned definition is not
// declared by any composite type.
func MetaFieldDefinition(name string) *Field {
	switch name {
	case TypenameMetaField:
		return typenameFieldDef
	case SchemaMetaField:
		return schemaFieldDef
	case TypeMetaField:
		return typeFieldDef
	default:
		return nil
	}
}

// addIntrospectionTypes registers the introspection type definitions so that
// selection sets beneath `__schema` and `__type` resolve like any other field.
func addIntrospectionTypes(s *Schema) {
	s.AddType(introspectionSchemaType).
		AddType(introspectionTypeType).
		AddType(introspectionFieldType).
		AddType(introspectionInputValueType).
		AddType(introspectionEnumValueType).
		AddType(introspectionDirectiveType).
		AddType(introspectionTypeKindEnum).
		AddType(introspectionDirectiveLocationEnum)
}

var introspectionSchemaType = &Type{
	Name:        "__Schema",
	Kind:        TypeKindObject,
	Description: "A GraphQL Schema defines the capabilities of a GraphQL server.",
	Fields: []*Field{
		{Name: "description", Type: NamedType("String")},
		{Name: "types", Type: NonNullType(ListType(NonNullType(NamedType("__Type"))))},
		{Name: "queryType", Type: NonNullType(NamedType("__Type"))},
		{Name: "mutationType", Type: NamedType("__Type")},
		{Name: "subscriptionType", Type: NamedType("__Type")},
		{Name: "directives", Type: NonNullType(ListType(NonNullType(NamedType("__Directive"))))},
	},
}

var introspectionTypeType = &Type{
	Name:        "__Type",
	Kind:        TypeKindObject,
	Description: "The fundamental unit of the GraphQL type system.",
	Fields: []*Field{
		{Name: "kind", Type: NonNullType(NamedType("__TypeKind"))},
		{Name: "name", Type: NamedType("String")},
		{Name: "description", Type: NamedType("String")},
		{
			Name: "fields",
			Type: ListType(NonNullType(NamedType("__Field"))),
			Arguments: []*InputValue{
				{Name: "includeDeprecated", Type: NamedType("Boolean"), DefaultValue: false},
			},
		},
		{Name: "interfaces", Type: ListType(NonNullType(NamedType("__Type")))},
		{Name: "possibleTypes", Type: ListType(NonNullType(NamedType("__Type")))},
		{
			Name: "enumValues",
			Type: ListType(NonNullType(NamedType("__EnumValue"))),
			Arguments: []*InputValue{
				{Name: "includeDeprecated", Type: NamedType("Boolean"), DefaultValue: false},
			},
		},
		{Name: "inputFields", Type: ListType(NonNullType(NamedType("__InputValue")))},
		{Name: "ofType", Type: NamedType("__Type")},
		{Name: "specifiedByURL", Type: NamedType("String")},
	},
}

var introspectionFieldType = &Type{
	Name:        "__Field",
	Kind:        TypeKindObject,
	Description: "Object and Interface types are described by a list of Fields.",
	Fields: []*Field{
		{Name: "name", Type: NonNullType(NamedType("String"))},
		{Name: "description", Type: NamedType("String")},
		{Name: "args", Type: NonNullType(ListType(NonNullType(NamedType("__InputValue"))))},
		{Name: "type", Type: NonNullType(NamedType("__Type"))},
		{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
		{Name: "deprecationReason", Type: NamedType("String")},
	},
}

var introspectionInputValueType = &Type{
	Name:        "__InputValue",
	Kind:        TypeKindObject,
	Description: "Arguments and input object fields are represented as Input Values.",
	Fields: []*Field{
		{Name: "name", Type: NonNullType(NamedType("String"))},
		{Name: "description", Type: NamedType("String")},
		{Name: "type", Type: NonNullType(NamedType("__Type"))},
		{Name: "defaultValue", Type: NamedType("String")},
	},
}

var introspectionEnumValueType = &Type{
	Name:        "__EnumValue",
	Kind:        TypeKindObject,
	Description: "One of the possible values of an Enum.",
	Fields: []*Field{
		{Name: "name", Type: NonNullType(NamedType("String"))},
		{Name: "description", Type: NamedType("String")},
		{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
		{Name: "deprecationReason", Type: NamedType("String")},
	},
}

var introspectionDirectiveType = &Type{
	Name:        "__Directive",
	Kind:        TypeKindObject,
	Description: "A Directive provides a way to describe alternate runtime behavior.",
	Fields: []*Field{
		{Name: "name", Type: NonNullType(NamedType("String"))},
		{Name: "description", Type: NamedType("String")},
		{Name: "locations", Type: NonNullType(ListType(NonNullType(NamedType("__DirectiveLocation"))))},
		{Name: "args", Type: NonNullType(ListType(NonNullType(NamedType("__InputValue"))))},
		{Name: "isRepeatable", Type: NonNullType(NamedType("Boolean"))},
	},
}

var introspectionTypeKindEnum = &Type{
	Name:        "__TypeKind",
	Kind:        TypeKindEnum,
	Description: "An enum describing what kind of type a given `__Type` is.",
	EnumValues: []*EnumValue{
		{Name: "SCALAR"}, {Name: "OBJECT"}, {Name: "INTERFACE"}, {Name: "UNION"},
		{Name: "ENUM"}, {Name: "INPUT_OBJECT"}, {Name: "LIST"}, {Name: "NON_NULL"},
	},
}

var introspectionDirectiveLocationEnum = &Type{
	Name:        "__DirectiveLocation",
	Kind:        TypeKindEnum,
	Description: "A Directive can be adjacent to many parts of the GraphQL language.",
	EnumValues: []*EnumValue{
		{Name: "QUERY"}, {Name: "MUTATION"}, {Name: "SUBSCRIPTION"}, {Name: "FIELD"},
		{Name: "FRAGMENT_DEFINITION"}, {Name: "FRAGMENT_SPREAD"}, {Name: "INLINE_FRAGMENT"},
		{Name: "VARIABLE_DEFINITION"}, {Name: "SCHEMA"}, {Name: "SCALAR"}, {Name: "OBJECT"},
		{Name: "FIELD_DEFINITION"}, {Name: "ARGUMENT_DEFINITION"}, {Name: "INTERFACE"},
		{Name: "UNION"}, {Name: "ENUM"}, {Name: "ENUM_VALUE"}, {Name: "INPUT_OBJECT"},
		{Name: "INPUT_FIELD_DEFINITION"},
	},
}
