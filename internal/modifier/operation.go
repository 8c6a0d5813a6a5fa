package modifier

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// Operation is the arithmetic behind a modifier identifier.
type Operation[T any] struct {
	Identifier string
	Priority   int
	// Apply combines the current value with the evaluated operand.
	Apply func(input, operand T) (T, error)
	// Check, if set, rejects constant operands while the modifier is built,
	// e.g. DIVIDE by 0.
	Check func(operand T) error
}

// OperationFactory is a Factory backed by an Operation. Every modifier it
// builds is a formula modifier.
type OperationFactory[T any] struct {
	op     Operation[T]
	format valuetype.Format[T]
}

// NewOperationFactory creates a factory for op on values of format.
func NewOperationFactory[T any](format valuetype.Format[T], op Operation[T]) *OperationFactory[T] {
	if op.Identifier == "" {
		panic("modifier: operation identifier cannot be empty")
	}
	if op.Apply == nil {
		panic(fmt.Sprintf("modifier: operation %s has no Apply function", op.Identifier))
	}
	return &OperationFactory[T]{op: op, format: format}
}

func (f *OperationFactory[T]) Identifier() string          { return f.op.Identifier }
func (f *OperationFactory[T]) Format() valuetype.Format[T] { return f.format }

// NewModifier parses instructions and checks them against the formula state.
// String instructions are parsed as templates, everything else as
// expressions.
func (f *OperationFactory[T]) NewModifier(
	instructions string,
	contexts formula.ContextFactory,
	fm *formula.Manager,
	scope *formula.Scope,
	format valuetype.Format[T],
) (Modifier[T], error) {
	if strings.TrimSpace(instructions) == "" {
		return nil, fmt.Errorf("%s %s: %w", format.Name(), f.op.Identifier, formula.ErrEmptyFormula)
	}

	parse := formula.Parse
	if format.Tag() == valuetype.TagString {
		parse = formula.ParseTemplate
	}
	parsed, err := parse(instructions)
	if err != nil {
		return nil, err
	}

	constant, err := contexts.SemanticsContext(fm, scope, format).Validate(parsed)
	if err != nil {
		return nil, err
	}
	if parsed.IsConstant() {
		operand, err := format.FromValue(constant)
		if err != nil {
			return nil, fmt.Errorf("%s %s %q: %w", format.Name(), f.op.Identifier, instructions, err)
		}
		if f.op.Check != nil {
			if err := f.op.Check(operand); err != nil {
				return nil, fmt.Errorf("%s %s %q: %w", format.Name(), f.op.Identifier, instructions, err)
			}
		}
	}

	return &formulaModifier[T]{
		op:           f.op,
		format:       format,
		instructions: instructions,
		formula:      parsed,
	}, nil
}
