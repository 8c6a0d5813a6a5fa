// Package arithmetic provides the ADD, SUBTRACT, MULTIPLY and DIVIDE
// modifiers. Integer variables only support ADD and SUBTRACT; scaling a whole
// number is done through a Number variable.
package arithmetic

import (
	"errors"
	"math"

	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

var (
	// ErrDivideByZero is returned by DIVIDE when its operand is 0.
	ErrDivideByZero = errors.New("division by zero")
	// ErrOverflow is returned when an Integer result does not fit in 64 bits.
	ErrOverflow = errors.New("integer overflow")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// AddInteger adds the operand, failing on overflow.
var AddInteger = modifier.Operation[int64]{
	Identifier: "ADD",
	Priority:   modifier.PriorityAdd,
	Apply: func(input, operand int64) (int64, error) {
		if (operand > 0 && input > math.MaxInt64-operand) || (operand < 0 && input < math.MinInt64-operand) {
			return input, ErrOverflow
		}
		return input + operand, nil
	},
}

// SubtractInteger subtracts the operand, failing on overflow.
var SubtractInteger = modifier.Operation[int64]{
	Identifier: "SUBTRACT",
	Priority:   modifier.PrioritySubtract,
	Apply: func(input, operand int64) (int64, error) {
		if (operand < 0 && input > math.MaxInt64+operand) || (operand > 0 && input < math.MinInt64+operand) {
			return input, ErrOverflow
		}
		return input - operand, nil
	},
}

// AddNumber adds the operand.
var AddNumber = modifier.Operation[float64]{
	Identifier: "ADD",
	Priority:   modifier.PriorityAdd,
	Apply:      func(input, operand float64) (float64, error) { return input + operand, nil },
}

// SubtractNumber subtracts the operand.
var SubtractNumber = modifier.Operation[float64]{
	Identifier: "SUBTRACT",
	Priority:   modifier.PrioritySubtract,
	Apply:      func(input, operand float64) (float64, error) { return input - operand, nil },
}

// MultiplyNumber multiplies by the operand.
var MultiplyNumber = modifier.Operation[float64]{
	Identifier: "MULTIPLY",
	Priority:   modifier.PriorityMultiply,
	Apply:      func(input, operand float64) (float64, error) { return input * operand, nil },
}

// DivideNumber divides by the operand. A constant 0 operand is rejected when
// the modifier is built.
var DivideNumber = modifier.Operation[float64]{
	Identifier: "DIVIDE",
	Priority:   modifier.PriorityDivide,
	Apply: func(input, operand float64) (float64, error) {
		if operand == 0 {
			return input, ErrDivideByZero
		}
		return input / operand, nil
	},
	Check: func(operand float64) error {
		if operand == 0 {
			return ErrDivideByZero
		}
		return nil
	},
}

// Register registers the arithmetic factories with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Register[int64](r, modifier.NewOperationFactory[int64](valuetype.Integer, AddInteger))
	registry.Register[int64](r, modifier.NewOperationFactory[int64](valuetype.Integer, SubtractInteger))
	registry.Register[float64](r, modifier.NewOperationFactory[float64](valuetype.Number, AddNumber))
	registry.Register[float64](r, modifier.NewOperationFactory[float64](valuetype.Number, SubtractNumber))
	registry.Register[float64](r, modifier.NewOperationFactory[float64](valuetype.Number, MultiplyNumber))
	registry.Register[float64](r, modifier.NewOperationFactory[float64](valuetype.Number, DivideNumber))
}
