package resolver_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/resolver"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFactory wraps a factory and counts how often it builds a modifier.
type countingFactory[T any] struct {
	modifier.Factory[T]
	calls atomic.Int32
}

func (f *countingFactory[T]) NewModifier(
	instructions string,
	contexts formula.ContextFactory,
	fm *formula.Manager,
	scope *formula.Scope,
	format valuetype.Format[T],
) (modifier.Modifier[T], error) {
	f.calls.Add(1)
	return f.Factory.NewModifier(instructions, contexts, fm, scope, format)
}

// failingFactory rejects every instruction with the same error value.
type failingFactory struct {
	err error
}

func (f *failingFactory) Identifier() string               { return "SET" }
func (f *failingFactory) Format() valuetype.Format[string] { return valuetype.String }
func (f *failingFactory) NewModifier(string, formula.ContextFactory, *formula.Manager, *formula.Scope, valuetype.Format[string]) (modifier.Modifier[string], error) {
	return nil, f.err
}

func addOp() modifier.Operation[int64] {
	return modifier.Operation[int64]{
		Identifier: "ADD",
		Priority:   3,
		Apply:      func(input, operand int64) (int64, error) { return input + operand, nil },
	}
}

type fixture struct {
	resolver *resolver.Resolver
	fm       *formula.Manager
	add      *countingFactory[int64]
	set      *failingFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fm := formula.NewManager()
	reg := registry.New()

	add := &countingFactory[int64]{Factory: modifier.NewOperationFactory(valuetype.Integer, addOp())}
	registry.Register[int64](reg, add)
	registry.Register[float64](reg, modifier.NewOperationFactory(valuetype.Number, modifier.Operation[float64]{
		Identifier: "MULTIPLY",
		Priority:   1,
		Apply:      func(input, operand float64) (float64, error) { return input * operand, nil },
	}))
	set := &failingFactory{err: errors.New("instructions rejected")}
	registry.Register[string](reg, set)
	reg.Seal()

	return &fixture{resolver: resolver.New(fm, reg), fm: fm, add: add, set: set}
}

func (f *fixture) resolveInteger(t *testing.T, identifier, instructions string) (modifier.Modifier[int64], error) {
	t.Helper()
	return resolver.Resolve(context.Background(), f.resolver, identifier, instructions,
		formula.DefaultContextFactory{}, f.fm.Scopes().Global(), valuetype.Format[int64](valuetype.Integer))
}

func keys(refs []formula.Reference) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Key)
	}
	return out
}

func TestResolve_AddWithVariable(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)

	// --- Act ---
	mod, err := f.resolveInteger(t, "ADD", "3+VAR1")

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, mod)
	assert.Equal(t, "ADD", mod.Identifier())
	assert.Equal(t, valuetype.TagInteger, mod.Format().Tag())
	assert.Equal(t, []string{"VAR1"}, keys(mod.References()))
	assert.Panics(t, func() { mod.AddReferences(nil) }, "references are injected exactly once")
}

func TestResolve_UnknownModifierType(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)

	// --- Act ---
	mod, err := f.resolveInteger(t, "MULTIPLY", "2")

	// --- Assert ---
	require.Nil(t, mod)
	require.ErrorIs(t, err, resolver.ErrUnknownModifierType)
	var unknown *resolver.UnknownModifierTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Integer", unknown.TypeName)
	assert.Equal(t, "MULTIPLY", unknown.Identifier)
	assert.EqualError(t, err, "requested unknown modifier type: Integer MULTIPLY")
	assert.Zero(t, f.add.calls.Load(), "no factory may be invoked")
}

func TestResolve_IdentifierIsExactMatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolveInteger(t, "add", "1")

	require.ErrorIs(t, err, resolver.ErrUnknownModifierType)
	assert.Zero(t, f.add.calls.Load())
}

func TestResolve_EmptyInstructionsPropagated(t *testing.T) {
	f := newFixture(t)

	mod, err := f.resolveInteger(t, "ADD", "")

	require.Nil(t, mod)
	require.ErrorIs(t, err, formula.ErrEmptyFormula)
	assert.Equal(t, int32(1), f.add.calls.Load())
}

func TestResolve_FactoryErrorReturnedUnchanged(t *testing.T) {
	f := newFixture(t)

	mod, err := resolver.Resolve(context.Background(), f.resolver, "SET", "whatever",
		formula.DefaultContextFactory{}, f.fm.Scopes().Global(), valuetype.Format[string](valuetype.String))

	require.Nil(t, mod)
	assert.Same(t, f.set.err, err)
}

func TestResolve_UndefinedVariableStillResolves(t *testing.T) {
	f := newFixture(t)
	require.False(t, f.fm.Variables().Declared("UNDECLARED"))

	mod, err := f.resolveInteger(t, "ADD", "UNDECLARED * 2")

	require.NoError(t, err)
	assert.Equal(t, []string{"UNDECLARED"}, keys(mod.References()))
}

func TestResolve_ReferencesAreExact(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.fm.Objects().Add("skill", "Balance"))

	testCases := []struct {
		instructions string
		want         []string
	}{
		{instructions: "3", want: []string{}},
		{instructions: "3+VAR1+VAR1", want: []string{"VAR1"}},
		{instructions: "max(STR, DEX) + floor(CON / 2)", want: []string{"CON", "DEX", "STR"}},
		{instructions: "skill.Balance + VAR1", want: []string{"VAR1", "skill.Balance"}},
	}

	for _, tc := range testCases {
		t.Run(tc.instructions, func(t *testing.T) {
			mod, err := f.resolveInteger(t, "ADD", tc.instructions)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, keys(mod.References())); diff != "" {
				t.Errorf("references mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	f := newFixture(t)

	first, err := f.resolveInteger(t, "ADD", "VAR2 + 3 + VAR1")
	require.NoError(t, err)
	second, err := f.resolveInteger(t, "ADD", "VAR2 + 3 + VAR1")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.References(), second.References())
	assert.Equal(t, first.Instructions(), second.Instructions())
	assert.Equal(t, first.Priority(), second.Priority())
}

func TestResolveAny(t *testing.T) {
	f := newFixture(t)
	global := f.fm.Scopes().Global()

	mod, err := f.resolver.ResolveAny(context.Background(), "MULTIPLY", "1.5 * WEIGHT", formula.DefaultContextFactory{}, global, valuetype.Number)
	require.NoError(t, err)
	assert.Equal(t, "MULTIPLY", mod.Identifier())
	assert.Equal(t, []string{"WEIGHT"}, keys(mod.References()))

	mod, err = f.resolver.ResolveAny(context.Background(), "MULTIPLY", "2", formula.DefaultContextFactory{}, global, valuetype.Integer)
	require.Nil(t, mod)
	require.ErrorIs(t, err, resolver.ErrUnknownModifierType)
	assert.Contains(t, err.Error(), "Integer")
	assert.Contains(t, err.Error(), "MULTIPLY")

	_, err = f.resolver.ResolveAny(context.Background(), "SET", "x", formula.DefaultContextFactory{}, global, unsupported{})
	require.ErrorContains(t, err, "unsupported value type")
}

type unsupported struct{ valuetype.Descriptor }
