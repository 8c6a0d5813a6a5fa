package modifier

import (
	"fmt"

	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// formulaModifier applies an Operation to the value of a formula.
type formulaModifier[T any] struct {
	op           Operation[T]
	format       valuetype.Format[T]
	instructions string
	formula      *formula.Formula

	refs     []formula.Reference
	refsDone bool
}

func (m *formulaModifier[T]) Identifier() string           { return m.op.Identifier }
func (m *formulaModifier[T]) Instructions() string         { return m.instructions }
func (m *formulaModifier[T]) Format() valuetype.Descriptor { return m.format }
func (m *formulaModifier[T]) Priority() int                { return m.op.Priority }

func (m *formulaModifier[T]) Dependencies(dc *formula.DependencyContext) error {
	return m.formula.Dependencies(dc)
}

func (m *formulaModifier[T]) AddReferences(refs []formula.Reference) {
	if m.refsDone {
		panic(fmt.Sprintf("modifier: references for %s already added", m))
	}
	m.refs = append([]formula.Reference(nil), refs...)
	m.refsDone = true
}

func (m *formulaModifier[T]) References() []formula.Reference {
	return append([]formula.Reference(nil), m.refs...)
}

func (m *formulaModifier[T]) Process(ec *formula.EvaluationContext, input T) (T, error) {
	val, err := m.formula.Evaluate(ec)
	if err != nil {
		return input, err
	}
	operand, err := m.format.FromValue(val)
	if err != nil {
		return input, fmt.Errorf("%s: %w", m, err)
	}
	out, err := m.op.Apply(input, operand)
	if err != nil {
		return input, fmt.Errorf("%s: %w", m, err)
	}
	return out, nil
}

// String renders the modifier as "Integer ADD 3+VAR1".
func (m *formulaModifier[T]) String() string {
	return fmt.Sprintf("%s %s %s", m.format.Name(), m.op.Identifier, m.instructions)
}
