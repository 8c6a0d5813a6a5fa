// Package bounds provides the MAX and MIN modifiers, which clamp a numeric
// variable. MAX raises the value to at least the operand; MIN lowers it to at
// most the operand.
package bounds

import (
	"cmp"

	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Max returns the operation keeping the larger of the value and the operand.
func Max[T cmp.Ordered]() modifier.Operation[T] {
	return modifier.Operation[T]{
		Identifier: "MAX",
		Priority:   modifier.PriorityMax,
		Apply:      func(input, operand T) (T, error) { return max(input, operand), nil },
	}
}

// Min returns the operation keeping the smaller of the value and the operand.
func Min[T cmp.Ordered]() modifier.Operation[T] {
	return modifier.Operation[T]{
		Identifier: "MIN",
		Priority:   modifier.PriorityMin,
		Apply:      func(input, operand T) (T, error) { return min(input, operand), nil },
	}
}

// Register registers MAX and MIN for Integer and Number.
func (m *Module) Register(r *registry.Registry) {
	registry.Register[int64](r, modifier.NewOperationFactory[int64](valuetype.Integer, Max[int64]()))
	registry.Register[int64](r, modifier.NewOperationFactory[int64](valuetype.Integer, Min[int64]()))
	registry.Register[float64](r, modifier.NewOperationFactory[float64](valuetype.Number, Max[float64]()))
	registry.Register[float64](r, modifier.NewOperationFactory[float64](valuetype.Number, Min[float64]()))
}
