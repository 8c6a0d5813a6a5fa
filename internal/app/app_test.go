package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/rulesmith/internal/app"
	"github.com/specialistvlad/rulesmith/internal/rules"
	"github.com/specialistvlad/rulesmith/internal/testutil"
	"github.com/specialistvlad/rulesmith/modules/arithmetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `
variable "VAR1" {
  format = "INTEGER"
}

variable "STR" {
  format = "INTEGER"
}

modify "STR" {
  identifier = "ADD"
  value      = "3+VAR1"
}
`

func writeRules(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	return dir
}

func testConfig(paths ...string) *app.Config {
	cfg := app.DefaultConfig()
	cfg.RulesPaths = paths
	cfg.LogLevel = "debug"
	cfg.Workers = 2
	return &cfg
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	// --- Act ---
	a, err := app.NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, testConfig("unused"))

	// --- Assert ---
	require.NoError(t, err)
	reg := a.Registry()
	assert.True(t, reg.Sealed())
	assert.Equal(t, []string{"ADD", "MAX", "MIN", "SET", "SUBTRACT"}, reg.Identifiers("INTEGER"))
	assert.Equal(t, []string{"ADD", "DIVIDE", "MAX", "MIN", "MULTIPLY", "SET", "SUBTRACT"}, reg.Identifiers("NUMBER"))
}

func TestNewApp_InvalidRegistryPanics(t *testing.T) {
	// --- Arrange ---
	// A module that registers arithmetic without SET leaves the registry unusable.
	onlyArithmetic := &arithmetic.Module{}

	// --- Act & Assert ---
	assert.PanicsWithError(t,
		"registry validation failed:\n- value type 'INTEGER': no SET factory registered\n- value type 'NUMBER': no SET factory registered",
		func() {
			_, _ = app.NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, testConfig("unused"), onlyArithmetic)
		})
}

func TestNewApp_InvalidLogger(t *testing.T) {
	// --- Arrange ---
	cfg := testConfig("unused")
	cfg.LogFormat = "xml"

	// --- Act ---
	_, err := app.NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, cfg)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestRun_WritesTextReport(t *testing.T) {
	// --- Arrange ---
	dir := writeRules(t, "main.hcl", sampleRules)
	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a, err := app.NewApp(out, logs, testConfig(dir))
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Loaded 1 rule file(s), 2 variable(s).")
	assert.Contains(t, out.String(), "STR@GLOBAL (Integer) <- VAR1@GLOBAL")
	assert.Contains(t, out.String(), "ADD      3+VAR1  [VAR1]")
	assert.Contains(t, logs.String(), "Rule set loaded.")
}

func TestRun_WritesJSONReport(t *testing.T) {
	// --- Arrange ---
	dir := writeRules(t, "main.hcl", sampleRules)
	out := &bytes.Buffer{}
	cfg := testConfig(dir)
	cfg.Output = "json"
	a, err := app.NewApp(out, &testutil.SafeBuffer{}, cfg)
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	var report rules.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, []string{"VAR1@GLOBAL", "STR@GLOBAL"}, report.EvaluationOrder)
}

func TestRun_OutputNone(t *testing.T) {
	// --- Arrange ---
	dir := writeRules(t, "main.hcl", sampleRules)
	out := &bytes.Buffer{}
	cfg := testConfig(dir)
	cfg.Output = "none"
	a, err := app.NewApp(out, &testutil.SafeBuffer{}, cfg)
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRun_LoadFailure(t *testing.T) {
	// --- Arrange ---
	dir := writeRules(t, "main.hcl", `
variable "STR" {
  format = "INTEGER"
}

modify "STR" {
  identifier = "MULTIPLY"
  value      = "2"
}
`)
	a, err := app.NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, testConfig(dir))
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
	assert.Contains(t, err.Error(), "requested unknown modifier type: Integer MULTIPLY")
}

func TestRun_CustomModules(t *testing.T) {
	// --- Arrange ---
	dir := writeRules(t, "main.hcl", sampleRules)
	counting := &testutil.CountingModule{}
	a, err := app.NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, testConfig(dir), counting)
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 1, counting.Created("ADD"))
	assert.Equal(t, 0, counting.Created("SET"))
}
