// Package tracing records a traversal on an OpenTelemetry span: one span per
// traversal call, one span event per visited node. Wrap the consumer's
// visitor, run the traversal, then call the returned finish function.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hanpama/gqltraverse/traverser"
)

const instrumentationName = "github.com/hanpama/gqltraverse/tracing"

// Visitor wraps another traverser.Visitor and mirrors every callback onto an
// OpenTelemetry span before delegating.
type Visitor struct {
	next traverser.Visitor
	span trace.Span
}

// Start opens a traversal span and returns the wrapping visitor together
// with a finish function that ends the span. A nil tracer falls back to the
// globally registered tracer provider.
func Start(ctx context.Context, tracer trace.Tracer, next traverser.Visitor) (*Visitor, func()) {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	_, span := tracer.Start(ctx, "gqltraverse.traverse")
	return &Visitor{next: next, span: span}, func() { span.End() }
}

func (v *Visitor) VisitField(env *traverser.FieldEnvironment) {
	v.span.AddEvent("field", trace.WithAttributes(
		attribute.String("graphql.field.name", env.Field.Name),
		attribute.String("graphql.field.type", env.FieldDefinition.Type.String()),
		attribute.String("graphql.parent.type", env.ParentType.String()),
		attribute.Int("graphql.field.depth", env.Depth()),
		attribute.Bool("graphql.field.meta", env.IsMetaField),
	))
	v.next.VisitField(env)
}

func (v *Visitor) VisitInlineFragment(env *traverser.InlineFragmentEnvironment) {
	v.span.AddEvent("inline_fragment", trace.WithAttributes(
		attribute.String("graphql.type_condition", env.InlineFragment.TypeCondition),
	))
	v.next.VisitInlineFragment(env)
}

func (v *Visitor) VisitFragmentSpread(env *traverser.FragmentSpreadEnvironment) {
	v.span.AddEvent("fragment_spread", trace.WithAttributes(
		attribute.String("graphql.fragment.name", env.Spread.Name),
	))
	v.next.VisitFragmentSpread(env)
}

func (v *Visitor) VisitFragmentDefinition(env *traverser.FragmentDefinitionEnvironment) {
	v.span.AddEvent("fragment_definition", trace.WithAttributes(
		attribute.String("graphql.fragment.name", env.FragmentDefinition.Name),
		attribute.String("graphql.type_condition", env.FragmentDefinition.TypeCondition),
	))
	v.next.VisitFragmentDefinition(env)
}
