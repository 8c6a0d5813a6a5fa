package formula

import (
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// formulaFilename is the pseudo file name HCL diagnostics report.
const formulaFilename = "<formula>"

// Formula is a parsed formula.
type Formula struct {
	text      string
	expr      hclsyntax.Expression
	functions []string
}

// Parse parses text as an HCL expression, e.g. `3+VAR1`.
func Parse(text string) (*Formula, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyFormula
	}
	expr, diags := hclsyntax.ParseExpression([]byte(text), formulaFilename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, &SyntaxError{Text: text, Diags: diags}
	}
	return newFormula(text, expr), nil
}

// ParseTemplate parses text as an HCL template, so literal text is kept
// as-is and `${...}` sequences are formulas, e.g. `Hello ${NAME}`.
func ParseTemplate(text string) (*Formula, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyFormula
	}
	expr, diags := hclsyntax.ParseTemplate([]byte(text), formulaFilename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, &SyntaxError{Text: text, Diags: diags}
	}
	return newFormula(text, expr), nil
}

func newFormula(text string, expr hclsyntax.Expression) *Formula {
	return &Formula{text: text, expr: expr, functions: calledFunctions(expr)}
}

// Text returns the source text of the formula.
func (f *Formula) Text() string { return f.text }

// CalledFunctions returns the unique names of the functions the formula
// calls, sorted.
func (f *Formula) CalledFunctions() []string { return f.functions }

// IsConstant reports whether the formula refers to no external names.
func (f *Formula) IsConstant() bool { return len(f.expr.Variables()) == 0 }

// Dependencies walks the formula's traversals. Every traversal is recorded in
// the context's reference sink, then handed to its variable strategy. Nothing
// is evaluated.
func (f *Formula) Dependencies(dc *DependencyContext) error {
	for _, traversal := range f.expr.Variables() {
		if dc.references != nil {
			dc.references.Add(NewReference(traversal))
		}
		if dc.strategy == nil {
			continue
		}
		if err := dc.strategy.AddVariable(dc, traversal); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate computes the formula's value.
func (f *Formula) Evaluate(ec *EvaluationContext) (cty.Value, error) {
	val, diags := f.expr.Value(ec.evalContext())
	if diags.HasErrors() {
		return cty.NilVal, &EvaluationError{Text: f.text, Diags: diags}
	}
	return val, nil
}

// calledFunctions walks the syntax tree looking only for function calls,
// which Variables() does not report.
func calledFunctions(expr hclsyntax.Expression) []string {
	seen := make(map[string]struct{})
	hclsyntax.VisitAll(expr, func(node hclsyntax.Node) hcl.Diagnostics {
		if call, ok := node.(*hclsyntax.FunctionCallExpr); ok {
			seen[call.Name] = struct{}{}
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names) // Sort for deterministic output
	return names
}
