package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/rulesmith/internal/config"
	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// Build turns a decoded model into a Catalog: it builds the formula state,
// resolves every modifier and validates the result.
func (l *Loader) Build(ctx context.Context, model *config.Model) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	fm := formula.NewManager(l.functions...)
	if err := buildScopes(fm, model.Scopes); err != nil {
		return nil, err
	}
	if err := declareVariables(fm, model.Variables); err != nil {
		return nil, err
	}
	if err := addObjects(fm, model.Objects); err != nil {
		return nil, err
	}
	logger.Debug("Formula state built.",
		"scopes", len(fm.Scopes().All()),
		"variables", len(fm.Variables().All()),
		"object_categories", len(fm.Objects().Categories()),
	)

	resolved, err := l.resolveModifiers(ctx, fm, model.Modifiers)
	if err != nil {
		return nil, err
	}
	logger.Debug("Modifiers resolved.", "count", len(resolved))

	graph, err := l.validate(ctx, fm, resolved)
	if err != nil {
		return nil, err
	}
	order, err := graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	logger.Info("Rule set loaded.", "variables", len(fm.Variables().All()), "modifiers", len(resolved))
	return &Catalog{
		Formulas:  fm,
		Modifiers: resolved,
		Graph:     graph,
		Order:     order,
	}, nil
}

// buildScopes adds scopes in dependency order, so a child may be defined
// before its parent. Duplicate names are reported first, in source order,
// so the error points at the later definition.
func buildScopes(fm *formula.Manager, scopes []*config.Scope) error {
	seen := map[string]*config.Scope{formula.GlobalScopeName: nil}
	for _, s := range scopes {
		if first, ok := seen[s.Name]; ok {
			err := errors.New("scope already defined")
			if first != nil {
				err = fmt.Errorf("scope already defined at %s", first.Source)
			}
			return &DefinitionError{Source: s.Source, Kind: "scope", Name: s.Name, Err: err}
		}
		seen[s.Name] = s
	}

	pending := append([]*config.Scope(nil), scopes...)
	for len(pending) > 0 {
		var next []*config.Scope
		for _, s := range pending {
			parent := s.Parent
			if parent == "" {
				parent = formula.GlobalScopeName
			}
			if _, ok := fm.Scopes().Get(parent); !ok {
				next = append(next, s)
				continue
			}
			if _, err := fm.Scopes().Add(s.Name, parent); err != nil {
				return &DefinitionError{Source: s.Source, Kind: "scope", Name: s.Name, Err: err}
			}
		}
		if len(next) == len(pending) {
			// No progress: every remaining parent is missing or part of a loop.
			s := next[0]
			return &DefinitionError{Source: s.Source, Kind: "scope", Name: s.Name, Err: fmt.Errorf("unknown parent scope %q", s.Parent)}
		}
		pending = next
	}
	return nil
}

func declareVariables(fm *formula.Manager, variables []*config.Variable) error {
	for _, v := range variables {
		format, ok := valuetype.Lookup(v.Format)
		if !ok {
			return &DefinitionError{Source: v.Source, Kind: "variable", Name: v.Name, Err: unknownFormat(v.Format)}
		}
		scope, err := lookupScope(fm, v.Scope)
		if err != nil {
			return &DefinitionError{Source: v.Source, Kind: "variable", Name: v.Name, Err: err}
		}
		if _, err := fm.Variables().Declare(scope, v.Name, format); err != nil {
			return &DefinitionError{Source: v.Source, Kind: "variable", Name: v.Name, Err: err}
		}
	}
	return nil
}

func addObjects(fm *formula.Manager, objects []*config.Object) error {
	for _, o := range objects {
		if err := fm.Objects().Add(o.Category, o.Key); err != nil {
			return &DefinitionError{Source: o.Source, Kind: "object", Name: o.Category + "." + o.Key, Err: err}
		}
	}
	return nil
}

func lookupScope(fm *formula.Manager, name string) (*formula.Scope, error) {
	if name == "" {
		return fm.Scopes().Global(), nil
	}
	scope, ok := fm.Scopes().Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown scope %q", name)
	}
	return scope, nil
}

func unknownFormat(name string) error {
	tags := valuetype.Tags()
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, string(t))
	}
	return fmt.Errorf("unknown format %q, must be one of %s", name, strings.Join(names, ", "))
}

var errAmbiguousVariable = errors.New("variable is declared in several scopes; set the modifier's scope")
