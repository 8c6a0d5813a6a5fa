package rules_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/specialistvlad/rulesmith/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_WriteText(t *testing.T) {
	// --- Arrange ---
	catalog, err := newLoader(t).Load(context.Background(), "testdata/hcl")
	require.NoError(t, err)
	var buf bytes.Buffer

	// --- Act ---
	err = catalog.Report().WriteText(&buf)

	// --- Assert ---
	require.NoError(t, err)
	want := `Loaded 2 rule file(s), 4 variable(s).
NAME@GLOBAL (String)
  SET      Master of ${skill.Balance}  [skill.Balance]  (testdata/hcl/variables.hcl:39)
VAR1@GLOBAL (Integer)
  SET      2  (testdata/hcl/variables.hcl:28)
STR@GLOBAL (Integer) <- VAR1@GLOBAL
  SET      10  (testdata/hcl/variables.hcl:23)
  ADD      3+VAR1  [VAR1]  (testdata/hcl/variables.hcl:18)
WEIGHT@GLOBAL.CHARACTER.EQUIPMENT (Number) <- STR@GLOBAL
  MULTIPLY STR*0.5  [STR]  (testdata/hcl/variables.hcl:33)
`
	assert.Equal(t, want, buf.String())
}

func TestReport_WriteJSON(t *testing.T) {
	// --- Arrange ---
	catalog, err := newLoader(t).Load(context.Background(), "testdata/yaml")
	require.NoError(t, err)
	var buf bytes.Buffer

	// --- Act ---
	err = catalog.Report().WriteJSON(&buf)

	// --- Assert ---
	require.NoError(t, err)
	var decoded rules.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, catalog.Report(), &decoded)
	assert.Contains(t, buf.String(), `"evaluation_order": [`)
	assert.Contains(t, buf.String(), `"source": "testdata/yaml/variables.yml:8"`)
}

func TestCatalog_ModifiersOf(t *testing.T) {
	// --- Arrange ---
	catalog, err := newLoader(t).Load(context.Background(), "testdata/hcl")
	require.NoError(t, err)
	id, _, ok := catalog.Formulas.Variables().Lookup(catalog.Formulas.Scopes().Global(), "STR")
	require.True(t, ok)

	// --- Act ---
	mods := catalog.ModifiersOf(id)

	// --- Assert ---
	require.Len(t, mods, 2)
	assert.Equal(t, "SET", mods[0].Modifier.Identifier())
	assert.Equal(t, "ADD", mods[1].Modifier.Identifier())
	require.Len(t, mods[1].DependsOn, 1)
	assert.Equal(t, "VAR1@GLOBAL", mods[1].DependsOn[0].String())
}
