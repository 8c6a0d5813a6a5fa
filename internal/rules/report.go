package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/rulesmith/internal/formula"
)

// Report is the serializable summary of a Catalog.
type Report struct {
	Files           []string            `json:"files"`
	Scopes          []string            `json:"scopes"`
	Objects         map[string][]string `json:"objects"`
	Variables       []VariableReport    `json:"variables"`
	EvaluationOrder []string            `json:"evaluation_order"`
}

// VariableReport describes one variable and the modifiers applied to it.
type VariableReport struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Scope     string           `json:"scope"`
	Format    string           `json:"format"`
	DependsOn []string         `json:"depends_on"`
	Modifiers []ModifierReport `json:"modifiers"`
}

// ModifierReport describes one resolved modifier.
type ModifierReport struct {
	Identifier string   `json:"identifier"`
	Value      string   `json:"value"`
	Priority   int      `json:"priority"`
	Scope      string   `json:"scope"`
	References []string `json:"references"`
	Source     string   `json:"source"`
}

// Report summarizes the catalog. Variables are listed in evaluation order.
func (c *Catalog) Report() *Report {
	fm := c.Formulas
	r := &Report{
		Files:           c.Files,
		Objects:         make(map[string][]string),
		EvaluationOrder: c.Order,
	}
	for _, s := range fm.Scopes().All() {
		r.Scopes = append(r.Scopes, s.FullName())
	}
	for _, category := range fm.Objects().Categories() {
		r.Objects[category] = fm.Objects().Keys(category)
	}

	byID := make(map[string]formula.VariableID)
	for _, id := range fm.Variables().All() {
		byID[id.String()] = id
	}
	for _, key := range c.Order {
		id := byID[key]
		format, _ := fm.Variables().Format(id)
		deps, _ := c.Graph.Dependencies(key)
		vr := VariableReport{
			ID:        key,
			Name:      id.Name,
			Scope:     id.Scope.FullName(),
			Format:    format.Name(),
			DependsOn: nonNil(deps),
			Modifiers: []ModifierReport{},
		}
		for _, rm := range c.ModifiersOf(id) {
			refs := rm.Modifier.References()
			keys := make([]string, 0, len(refs))
			for _, ref := range refs {
				keys = append(keys, ref.Key)
			}
			vr.Modifiers = append(vr.Modifiers, ModifierReport{
				Identifier: rm.Modifier.Identifier(),
				Value:      rm.Modifier.Instructions(),
				Priority:   rm.Modifier.Priority(),
				Scope:      rm.Scope.FullName(),
				References: keys,
				Source:     rm.Source.String(),
			})
		}
		r.Variables = append(r.Variables, vr)
	}
	return r
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes the report in a compact human-readable form.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Loaded %d rule file(s), %d variable(s).\n", len(r.Files), len(r.Variables))
	for _, v := range r.Variables {
		fmt.Fprintf(&b, "%s (%s)", v.ID, v.Format)
		if len(v.DependsOn) > 0 {
			fmt.Fprintf(&b, " <- %s", strings.Join(v.DependsOn, ", "))
		}
		b.WriteString("\n")
		for _, m := range v.Modifiers {
			fmt.Fprintf(&b, "  %-8s %s", m.Identifier, m.Value)
			if len(m.References) > 0 {
				fmt.Fprintf(&b, "  [%s]", strings.Join(m.References, ", "))
			}
			fmt.Fprintf(&b, "  (%s)\n", m.Source)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
