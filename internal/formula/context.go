package formula

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ContextFactory produces the contexts used to analyze formulas. Modifier
// factories and the resolver receive one so callers can substitute their own.
type ContextFactory interface {
	// DependencyContext creates a fresh dependency context over fm.
	DependencyContext(fm *Manager, scope *Scope) *DependencyContext
	// SemanticsContext creates a context that checks a formula is usable
	// for a value of the given format.
	SemanticsContext(fm *Manager, scope *Scope, format valuetype.Descriptor) *SemanticsContext
}

// DefaultContextFactory is the ContextFactory used by the loader.
type DefaultContextFactory struct{}

func (DefaultContextFactory) DependencyContext(fm *Manager, scope *Scope) *DependencyContext {
	return NewDependencyContext(fm, scope)
}

func (DefaultContextFactory) SemanticsContext(fm *Manager, scope *Scope, format valuetype.Descriptor) *SemanticsContext {
	return &SemanticsContext{manager: fm, scope: scope, format: format}
}

// SemanticsContext checks a parsed formula before a modifier is built from it.
type SemanticsContext struct {
	manager *Manager
	scope   *Scope
	format  valuetype.Descriptor
}

func (sc *SemanticsContext) Scope() *Scope                { return sc.scope }
func (sc *SemanticsContext) Format() valuetype.Descriptor { return sc.format }

// Validate checks that every called function exists. A constant formula is
// also evaluated and converted to the target format; its value is returned so
// the caller can apply stricter, typed checks. For any other formula the
// returned value is cty.NilVal.
func (sc *SemanticsContext) Validate(f *Formula) (cty.Value, error) {
	for _, name := range f.CalledFunctions() {
		if !sc.manager.HasFunction(name) {
			return cty.NilVal, &UnknownFunctionError{Name: name, Text: f.Text()}
		}
	}
	if !f.IsConstant() {
		return cty.NilVal, nil
	}

	val, err := f.Evaluate(NewEvaluationContext(sc.manager, nil))
	if err != nil {
		return cty.NilVal, err
	}
	converted, err := convert.Convert(val, sc.format.Type())
	if err != nil {
		return cty.NilVal, fmt.Errorf("formula %q does not produce a %s: %w", f.Text(), sc.format.Name(), err)
	}
	return converted, nil
}

// EvaluationContext supplies the values a formula is evaluated against.
type EvaluationContext struct {
	manager *Manager
	values  map[string]cty.Value
}

// NewEvaluationContext creates a context over fm. values maps variable names
// to their current values. Declared objects are always available: the
// formula `skill.Balance` evaluates to the string "Balance".
func NewEvaluationContext(fm *Manager, values map[string]cty.Value) *EvaluationContext {
	return &EvaluationContext{manager: fm, values: values}
}

func (ec *EvaluationContext) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(ec.values))
	objects := ec.manager.Objects()
	for _, category := range objects.Categories() {
		keys := make(map[string]cty.Value)
		for _, key := range objects.Keys(category) {
			keys[key] = cty.StringVal(key)
		}
		vars[category] = cty.ObjectVal(keys)
	}
	for name, val := range ec.values {
		vars[name] = val
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: ec.manager.Functions(),
	}
}
