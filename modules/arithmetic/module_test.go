package arithmetic_test

import (
	"math"
	"testing"

	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
	"github.com/specialistvlad/rulesmith/modules/arithmetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestModule_Register(t *testing.T) {
	r := registry.New()
	(&arithmetic.Module{}).Register(r)

	assert.Equal(t, []string{"ADD", "SUBTRACT"}, r.Identifiers(valuetype.TagInteger))
	assert.Equal(t, []string{"ADD", "DIVIDE", "MULTIPLY", "SUBTRACT"}, r.Identifiers(valuetype.TagNumber))
	_, ok := registry.Lookup[int64](r, valuetype.Integer, "MULTIPLY")
	assert.False(t, ok)
}

func TestIntegerOperations(t *testing.T) {
	testCases := []struct {
		name    string
		apply   func(int64, int64) (int64, error)
		input   int64
		operand int64
		want    int64
		wantErr error
	}{
		{name: "add", apply: arithmetic.AddInteger.Apply, input: 10, operand: 3, want: 13},
		{name: "add negative", apply: arithmetic.AddInteger.Apply, input: 10, operand: -13, want: -3},
		{name: "add overflow", apply: arithmetic.AddInteger.Apply, input: math.MaxInt64, operand: 1, want: math.MaxInt64, wantErr: arithmetic.ErrOverflow},
		{name: "subtract", apply: arithmetic.SubtractInteger.Apply, input: 10, operand: 3, want: 7},
		{name: "subtract underflow", apply: arithmetic.SubtractInteger.Apply, input: math.MinInt64, operand: 1, want: math.MinInt64, wantErr: arithmetic.ErrOverflow},
		{name: "subtract negative overflow", apply: arithmetic.SubtractInteger.Apply, input: math.MaxInt64, operand: -1, want: math.MaxInt64, wantErr: arithmetic.ErrOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.apply(tc.input, tc.operand)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDivide(t *testing.T) {
	// --- Arrange ---
	r := registry.New()
	(&arithmetic.Module{}).Register(r)
	fm := formula.NewManager()
	factory, ok := registry.Lookup[float64](r, valuetype.Number, "DIVIDE")
	require.True(t, ok)

	// --- Act & Assert ---
	_, err := factory.NewModifier("1 - 1", formula.DefaultContextFactory{}, fm, fm.Scopes().Global(), valuetype.Number)
	require.ErrorIs(t, err, arithmetic.ErrDivideByZero, "constant zero is rejected while building")

	mod, err := factory.NewModifier("DIVISOR", formula.DefaultContextFactory{}, fm, fm.Scopes().Global(), valuetype.Number)
	require.NoError(t, err)

	got, err := mod.Process(formula.NewEvaluationContext(fm, map[string]cty.Value{"DIVISOR": cty.NumberIntVal(4)}), 10)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	_, err = mod.Process(formula.NewEvaluationContext(fm, map[string]cty.Value{"DIVISOR": cty.Zero}), 10)
	require.ErrorIs(t, err, arithmetic.ErrDivideByZero)
}

func TestMultiplyNumber(t *testing.T) {
	got, err := arithmetic.MultiplyNumber.Apply(1.5, 3)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got)
}
