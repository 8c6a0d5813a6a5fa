package resolver

import (
	"context"
	"fmt"

	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// Resolver builds modifiers from the factories of a sealed registry. It keeps
// no state between calls, so one Resolver may serve many goroutines once the
// formula state is complete.
type Resolver struct {
	formulas *formula.Manager
	registry *registry.Registry
}

// New creates a Resolver over the shared formula state and registry.
func New(formulas *formula.Manager, reg *registry.Registry) *Resolver {
	return &Resolver{formulas: formulas, registry: reg}
}

// Formulas returns the formula state modifiers are built against.
func (r *Resolver) Formulas() *formula.Manager { return r.formulas }

// Resolve builds the modifier registered as identifier for format and
// injects the references its instructions contain. Errors from the factory
// and from the dependency walk are returned unchanged.
func Resolve[T any](
	ctx context.Context,
	r *Resolver,
	identifier string,
	instructions string,
	contexts formula.ContextFactory,
	scope *formula.Scope,
	format valuetype.Format[T],
) (modifier.Modifier[T], error) {
	factory, ok := registry.Lookup[T](r.registry, format, identifier)
	if !ok {
		return nil, &UnknownModifierTypeError{TypeName: format.Name(), Identifier: identifier}
	}

	mod, err := factory.NewModifier(instructions, contexts, r.formulas, scope, format)
	if err != nil {
		return nil, err
	}

	dc := contexts.DependencyContext(r.formulas, nil).
		WithScope(scope).
		WithVariableStrategy(formula.IgnoreVariables{}).
		WithReferences(formula.NewReferenceSink())
	if err := mod.Dependencies(dc); err != nil {
		return nil, err
	}
	mod.AddReferences(dc.References().References())

	ctxlog.FromContext(ctx).Debug("Resolved modifier.",
		"format", format.Name(),
		"identifier", identifier,
		"instructions", instructions,
		"references", len(mod.References()),
	)
	return mod, nil
}

// ResolveAny is Resolve for a value type only known at runtime. It supports
// the built-in Integer, Number, String and Boolean formats.
func (r *Resolver) ResolveAny(
	ctx context.Context,
	identifier string,
	instructions string,
	contexts formula.ContextFactory,
	scope *formula.Scope,
	format valuetype.Descriptor,
) (modifier.Descriptor, error) {
	switch f := format.(type) {
	case valuetype.Format[int64]:
		return asDescriptor(Resolve(ctx, r, identifier, instructions, contexts, scope, f))
	case valuetype.Format[float64]:
		return asDescriptor(Resolve(ctx, r, identifier, instructions, contexts, scope, f))
	case valuetype.Format[string]:
		return asDescriptor(Resolve(ctx, r, identifier, instructions, contexts, scope, f))
	case valuetype.Format[bool]:
		return asDescriptor(Resolve(ctx, r, identifier, instructions, contexts, scope, f))
	default:
		return nil, fmt.Errorf("unsupported value type %T for modifier %s", format, identifier)
	}
}

func asDescriptor[T any](mod modifier.Modifier[T], err error) (modifier.Descriptor, error) {
	if err != nil {
		return nil, err
	}
	return mod, nil
}
