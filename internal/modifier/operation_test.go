package modifier_test

import (
	"errors"
	"testing"

	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

var errNegative = errors.New("operand must not be negative")

func addFactory() *modifier.OperationFactory[int64] {
	return modifier.NewOperationFactory(valuetype.Integer, modifier.Operation[int64]{
		Identifier: "ADD",
		Priority:   3,
		Apply:      func(input, operand int64) (int64, error) { return input + operand, nil },
		Check: func(operand int64) error {
			if operand < 0 {
				return errNegative
			}
			return nil
		},
	})
}

func build(t *testing.T, instructions string) (modifier.Modifier[int64], error) {
	t.Helper()
	fm := formula.NewManager()
	return addFactory().NewModifier(instructions, formula.DefaultContextFactory{}, fm, fm.Scopes().Global(), valuetype.Integer)
}

func TestOperationFactory_NewModifier(t *testing.T) {
	// --- Arrange ---
	factory := addFactory()

	// --- Act ---
	mod, err := build(t, "3+VAR1")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "ADD", factory.Identifier())
	assert.Equal(t, valuetype.TagInteger, factory.Format().Tag())
	assert.Equal(t, "ADD", mod.Identifier())
	assert.Equal(t, "3+VAR1", mod.Instructions())
	assert.Equal(t, 3, mod.Priority())
	assert.Equal(t, valuetype.TagInteger, mod.Format().Tag())
	assert.Empty(t, mod.References(), "references are only known after AddReferences")
}

func TestOperationFactory_NewModifier_Errors(t *testing.T) {
	testCases := []struct {
		name         string
		instructions string
		check        func(t *testing.T, err error)
	}{
		{
			name:         "empty",
			instructions: "  ",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, formula.ErrEmptyFormula)
				require.ErrorContains(t, err, "Integer ADD")
			},
		},
		{
			name:         "syntax",
			instructions: "3 +* 4",
			check: func(t *testing.T, err error) {
				var syntaxErr *formula.SyntaxError
				require.ErrorAs(t, err, &syntaxErr)
			},
		},
		{
			name:         "unknown function",
			instructions: "roll(6)",
			check: func(t *testing.T, err error) {
				var fnErr *formula.UnknownFunctionError
				require.ErrorAs(t, err, &fnErr)
			},
		},
		{
			name:         "constant is not whole",
			instructions: "5 / 2",
			check: func(t *testing.T, err error) {
				var convErr *valuetype.ConversionError
				require.ErrorAs(t, err, &convErr)
			},
		},
		{
			name:         "constant rejected by check",
			instructions: "-1",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errNegative)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mod, err := build(t, tc.instructions)
			require.Nil(t, mod)
			tc.check(t, err)
		})
	}
}

func TestFormulaModifier_AddReferencesOnce(t *testing.T) {
	mod, err := build(t, "VAR1")
	require.NoError(t, err)

	refs := []formula.Reference{{Root: "VAR1", Key: "VAR1"}}
	mod.AddReferences(refs)
	refs[0].Key = "mutated"

	assert.Equal(t, []formula.Reference{{Root: "VAR1", Key: "VAR1"}}, mod.References())
	assert.Panics(t, func() { mod.AddReferences(nil) })
}

func TestFormulaModifier_Process(t *testing.T) {
	fm := formula.NewManager()
	mod, err := addFactory().NewModifier("3+VAR1", formula.DefaultContextFactory{}, fm, fm.Scopes().Global(), valuetype.Integer)
	require.NoError(t, err)

	out, err := mod.Process(formula.NewEvaluationContext(fm, map[string]cty.Value{"VAR1": cty.NumberIntVal(4)}), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(17), out)

	out, err = mod.Process(formula.NewEvaluationContext(fm, map[string]cty.Value{"VAR1": cty.NumberFloatVal(0.5)}), 10)
	require.Error(t, err)
	assert.Equal(t, int64(10), out, "input is returned unchanged on error")
}

func TestNewOperationFactory_PanicsOnIncompleteOperation(t *testing.T) {
	assert.Panics(t, func() {
		modifier.NewOperationFactory(valuetype.Number, modifier.Operation[float64]{Apply: func(a, b float64) (float64, error) { return a, nil }})
	})
	assert.Panics(t, func() {
		modifier.NewOperationFactory(valuetype.Number, modifier.Operation[float64]{Identifier: "SET"})
	})
}
