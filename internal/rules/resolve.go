package rules

import (
	"context"
	"fmt"

	"github.com/specialistvlad/rulesmith/internal/config"
	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/resolver"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
	"golang.org/x/sync/errgroup"
)

// ResolvedModifier is a modifier definition after resolution.
type ResolvedModifier struct {
	// Variable is the variable the modifier changes.
	Variable formula.VariableID
	// Scope is where the modifier's formula is resolved.
	Scope    *formula.Scope
	Source   config.Source
	Modifier modifier.Descriptor
	// DependsOn lists the variables the formula reads. It is filled in by
	// validation.
	DependsOn []formula.VariableID
}

// resolveModifiers resolves every definition concurrently. The formula state
// is complete and the registry sealed, so the resolver calls share nothing
// mutable. The first failure cancels the rest.
func (l *Loader) resolveModifiers(ctx context.Context, fm *formula.Manager, defs []*config.Modifier) ([]*ResolvedModifier, error) {
	res := resolver.New(fm, l.registry)
	out := make([]*ResolvedModifier, len(defs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, def := range defs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rm, err := l.resolveModifier(gctx, res, def)
			if err != nil {
				return &DefinitionError{Source: def.Source, Kind: "modify", Name: def.Variable, Err: err}
			}
			out[i] = rm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Loader) resolveModifier(ctx context.Context, res *resolver.Resolver, def *config.Modifier) (*ResolvedModifier, error) {
	id, format, scope, err := target(res.Formulas(), def)
	if err != nil {
		return nil, err
	}
	mod, err := res.ResolveAny(ctx, def.Identifier, def.Value, l.contexts, scope, format)
	if err != nil {
		return nil, err
	}
	return &ResolvedModifier{Variable: id, Scope: scope, Source: def.Source, Modifier: mod}, nil
}

// target finds the variable a definition modifies and the scope its formula
// is resolved in. Without an explicit scope the variable's own scope is used,
// which requires the name to be declared exactly once.
func target(fm *formula.Manager, def *config.Modifier) (formula.VariableID, valuetype.Descriptor, *formula.Scope, error) {
	if def.Scope != "" {
		scope, err := lookupScope(fm, def.Scope)
		if err != nil {
			return formula.VariableID{}, nil, nil, err
		}
		id, format, ok := fm.Variables().Lookup(scope, def.Variable)
		if !ok {
			return formula.VariableID{}, nil, nil, fmt.Errorf("variable %q is not visible from scope %s", def.Variable, scope.FullName())
		}
		return id, format, scope, nil
	}

	var found []formula.VariableID
	for _, id := range fm.Variables().All() {
		if id.Name == def.Variable {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return formula.VariableID{}, nil, nil, fmt.Errorf("variable %q is not declared", def.Variable)
	case 1:
		format, _ := fm.Variables().Format(found[0])
		return found[0], format, found[0].Scope, nil
	default:
		return formula.VariableID{}, nil, nil, fmt.Errorf("%w: %v", errAmbiguousVariable, found)
	}
}
