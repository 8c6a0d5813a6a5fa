package rules

import (
	"sort"

	"github.com/specialistvlad/rulesmith/internal/dag"
	"github.com/specialistvlad/rulesmith/internal/formula"
)

// Catalog is a loaded, validated rule set.
type Catalog struct {
	// Files are the rule files the catalog was loaded from.
	Files []string
	// Formulas is the formula state. It is read-only.
	Formulas *formula.Manager
	// Modifiers holds every resolved modifier in source order.
	Modifiers []*ResolvedModifier
	// Graph holds an edge a -> b for every modifier of b that reads a.
	Graph *dag.Graph
	// Order lists every variable, by its id string, after all variables it
	// depends on.
	Order []string
}

// ModifiersOf returns the modifiers of id in the order they apply: by
// priority, then by source order.
func (c *Catalog) ModifiersOf(id formula.VariableID) []*ResolvedModifier {
	var out []*ResolvedModifier
	for _, rm := range c.Modifiers {
		if rm.Variable == id {
			out = append(out, rm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Modifier.Priority() < out[j].Modifier.Priority()
	})
	return out
}
