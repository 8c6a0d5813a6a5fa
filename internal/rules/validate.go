package rules

import (
	"context"
	"fmt"

	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/dag"
	"github.com/specialistvlad/rulesmith/internal/formula"
)

// validate checks every reference against the complete formula state and
// builds the variable dependency graph. Unlike resolution, this walk binds
// names with formula.TrackVariables, so undefined names are errors here.
func (l *Loader) validate(ctx context.Context, fm *formula.Manager, mods []*ResolvedModifier) (*dag.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	var problems []error

	for _, category := range fm.Objects().Categories() {
		if fm.Variables().Declared(category) {
			problems = append(problems, fmt.Errorf("object category %q has the same name as a variable", category))
		}
	}

	graph := dag.New()
	for _, id := range fm.Variables().All() {
		graph.AddNode(id.String())
	}

	for _, rm := range mods {
		vars := formula.NewVariableSink()
		dc := l.contexts.DependencyContext(fm, nil).
			WithScope(rm.Scope).
			WithVariableStrategy(formula.TrackVariables{}).
			WithVariables(vars)
		if err := rm.Modifier.Dependencies(dc); err != nil {
			problems = append(problems, definitionError(rm, err))
			continue
		}

		rm.DependsOn = vars.Variables()
		for _, dep := range rm.DependsOn {
			if err := graph.AddEdge(dep.String(), rm.Variable.String()); err != nil {
				problems = append(problems, definitionError(rm, err))
			}
		}
	}

	if len(problems) == 0 {
		if err := graph.DetectCycles(); err != nil {
			problems = append(problems, err)
		}
	}

	if len(problems) > 0 {
		logger.Debug("Rule set validation failed.", "problems", len(problems))
		return nil, &IntegrityError{Problems: problems}
	}
	return graph, nil
}

func definitionError(rm *ResolvedModifier, err error) error {
	return &DefinitionError{Source: rm.Source, Kind: "modify", Name: rm.Variable.Name, Err: err}
}
