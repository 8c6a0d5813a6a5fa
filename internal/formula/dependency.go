package formula

import (
	"github.com/hashicorp/hcl/v2"
)

// DependencyContext configures a dependency walk. The With* methods return a
// new context and never modify the receiver.
type DependencyContext struct {
	manager    *Manager
	scope      *Scope
	strategy   VariableStrategy
	references *ReferenceSink
	variables  *VariableSink
}

// NewDependencyContext creates a context over fm. A nil scope means the walk
// has not been bound to a scope yet.
func NewDependencyContext(fm *Manager, scope *Scope) *DependencyContext {
	return &DependencyContext{manager: fm, scope: scope}
}

// WithScope returns a copy bound to scope.
func (dc *DependencyContext) WithScope(scope *Scope) *DependencyContext {
	c := *dc
	c.scope = scope
	return &c
}

// WithVariableStrategy returns a copy that hands traversals to strategy.
func (dc *DependencyContext) WithVariableStrategy(strategy VariableStrategy) *DependencyContext {
	c := *dc
	c.strategy = strategy
	return &c
}

// WithReferences returns a copy that records references into sink.
func (dc *DependencyContext) WithReferences(sink *ReferenceSink) *DependencyContext {
	c := *dc
	c.references = sink
	return &c
}

// WithVariables returns a copy that records bound variables into sink.
func (dc *DependencyContext) WithVariables(sink *VariableSink) *DependencyContext {
	c := *dc
	c.variables = sink
	return &c
}

func (dc *DependencyContext) Manager() *Manager                  { return dc.manager }
func (dc *DependencyContext) Scope() *Scope                      { return dc.scope }
func (dc *DependencyContext) VariableStrategy() VariableStrategy { return dc.strategy }
func (dc *DependencyContext) References() *ReferenceSink         { return dc.references }
func (dc *DependencyContext) Variables() *VariableSink           { return dc.variables }

// VariableStrategy decides what a dependency walk does with each traversal
// beyond recording it as a reference.
type VariableStrategy interface {
	AddVariable(dc *DependencyContext, traversal hcl.Traversal) error
}

// IgnoreVariables never resolves names. It is the strategy used while rule
// files are still loading and variables may not be declared yet.
type IgnoreVariables struct{}

func (IgnoreVariables) AddVariable(*DependencyContext, hcl.Traversal) error { return nil }

// TrackVariables binds each traversal to a variable visible from the
// context's scope, or to a declared object, and fails on anything else.
type TrackVariables struct{}

func (TrackVariables) AddVariable(dc *DependencyContext, traversal hcl.Traversal) error {
	scope := dc.scope
	if scope == nil {
		scope = dc.manager.Scopes().Global()
	}
	ref := NewReference(traversal)
	root := traversal.RootName()

	if id, _, ok := dc.manager.Variables().Lookup(scope, root); ok {
		if len(traversal) > 1 {
			return &UndefinedReferenceError{Reference: ref, Scope: scope.FullName(), Reason: "variable " + root + " has no attributes"}
		}
		if dc.variables != nil {
			dc.variables.Add(id)
		}
		return nil
	}

	objects := dc.manager.Objects()
	if objects.HasCategory(root) {
		if len(traversal) < 2 {
			return &UndefinedReferenceError{Reference: ref, Scope: scope.FullName(), Reason: "object reference must name a key, e.g. " + root + ".Key"}
		}
		attr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			return &UndefinedReferenceError{Reference: ref, Scope: scope.FullName(), Reason: "object reference must name a key, e.g. " + root + ".Key"}
		}
		if !objects.Has(root, attr.Name) {
			return &UndefinedReferenceError{Reference: ref, Scope: scope.FullName(), Reason: "no " + root + " object named " + attr.Name}
		}
		return nil
	}

	return &UndefinedReferenceError{Reference: ref, Scope: scope.FullName(), Reason: "not a variable visible from this scope or a declared object"}
}
