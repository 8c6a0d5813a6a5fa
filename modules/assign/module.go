// Package assign provides the SET modifier for every built-in value type.
package assign

import (
	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// Identifier is the name rule files use for this modifier.
const Identifier = "SET"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Set returns the operation that replaces the current value with the operand.
func Set[T any]() modifier.Operation[T] {
	return modifier.Operation[T]{
		Identifier: Identifier,
		Priority:   modifier.PrioritySet,
		Apply:      func(_, operand T) (T, error) { return operand, nil },
	}
}

// Register registers a SET factory for each value type.
func (m *Module) Register(r *registry.Registry) {
	registry.Register[int64](r, modifier.NewOperationFactory[int64](valuetype.Integer, Set[int64]()))
	registry.Register[float64](r, modifier.NewOperationFactory[float64](valuetype.Number, Set[float64]()))
	registry.Register[string](r, modifier.NewOperationFactory[string](valuetype.String, Set[string]()))
	registry.Register[bool](r, modifier.NewOperationFactory[bool](valuetype.Boolean, Set[bool]()))
}
