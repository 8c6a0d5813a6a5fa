package formula

import (
	"sort"

	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Manager is the formula state shared by every modifier of a rule set.
//
// A Manager is populated during the load phase and must be treated as
// read-only afterwards. It holds no locks: concurrent readers are safe only
// once population has finished.
type Manager struct {
	scopes    *ScopeTree
	variables *VariableLibrary
	objects   *ObjectRegistry
	functions map[string]function.Function
}

// Option configures a Manager.
type Option func(*Manager)

// WithFunction adds or replaces a function available to formulas.
func WithFunction(name string, fn function.Function) Option {
	return func(m *Manager) {
		m.functions[name] = fn
	}
}

// NewManager creates formula state with an empty scope tree (global scope
// only), no variables, no objects and the default function table.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		scopes:    NewScopeTree(),
		variables: NewVariableLibrary(),
		objects:   NewObjectRegistry(),
		functions: DefaultFunctions(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultFunctions returns the functions formulas may call out of the box.
func DefaultFunctions() map[string]function.Function {
	return map[string]function.Function{
		"abs":    stdlib.AbsoluteFunc,
		"ceil":   stdlib.CeilFunc,
		"floor":  stdlib.FloorFunc,
		"max":    stdlib.MaxFunc,
		"min":    stdlib.MinFunc,
		"pow":    stdlib.PowFunc,
		"signum": stdlib.SignumFunc,
		"upper":  stdlib.UpperFunc,
		"lower":  stdlib.LowerFunc,
		"strlen": stdlib.StrlenFunc,
	}
}

func (m *Manager) Scopes() *ScopeTree          { return m.scopes }
func (m *Manager) Variables() *VariableLibrary { return m.variables }
func (m *Manager) Objects() *ObjectRegistry    { return m.objects }

// Functions returns the function table. Callers must not modify it.
func (m *Manager) Functions() map[string]function.Function { return m.functions }

// HasFunction reports whether formulas may call name.
func (m *Manager) HasFunction(name string) bool {
	_, ok := m.functions[name]
	return ok
}

// FunctionNames returns the function table's names in sorted order.
func (m *Manager) FunctionNames() []string {
	out := make([]string, 0, len(m.functions))
	for name := range m.functions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
