package bounds_test

import (
	"testing"

	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
	"github.com/specialistvlad/rulesmith/modules/bounds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestMaxMin(t *testing.T) {
	got, _ := bounds.Max[int64]().Apply(3, 10)
	assert.Equal(t, int64(10), got)
	got, _ = bounds.Max[int64]().Apply(12, 10)
	assert.Equal(t, int64(12), got)
	got, _ = bounds.Min[int64]().Apply(12, 10)
	assert.Equal(t, int64(10), got)

	f, _ := bounds.Min[float64]().Apply(0.5, 1)
	assert.Equal(t, 0.5, f)
}

func TestModule_ProcessThroughRegistry(t *testing.T) {
	// --- Arrange ---
	r := registry.New()
	(&bounds.Module{}).Register(r)
	fm := formula.NewManager()
	factory, ok := registry.Lookup[int64](r, valuetype.Integer, "MIN")
	require.True(t, ok)

	// --- Act ---
	mod, err := factory.NewModifier("CAP * 2", formula.DefaultContextFactory{}, fm, fm.Scopes().Global(), valuetype.Integer)
	require.NoError(t, err)
	got, err := mod.Process(formula.NewEvaluationContext(fm, map[string]cty.Value{"CAP": cty.NumberIntVal(9)}), 25)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, int64(18), got)
	assert.Equal(t, []string{"MAX", "MIN"}, r.Identifiers(valuetype.TagNumber))
	assert.Empty(t, r.Identifiers(valuetype.TagString))
}
