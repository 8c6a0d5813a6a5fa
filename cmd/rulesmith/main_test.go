package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/rulesmith/internal/cli"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0600), "failed to set up test file")
	return filePath
}

func TestRun_LoadsRules(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	filePath := writeRules(t, `
variable "Strength" {
  format = "NUMBER"
}

modify "Strength" {
  identifier = "MULTIPLY"
  value      = "1.5"
}
`)
	emptyConfig := filepath.Join(t.TempDir(), "rulesmith.yaml")
	require.NoError(t, os.WriteFile(emptyConfig, nil, 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"-config", emptyConfig, filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Strength@GLOBAL (Number)")
	require.Contains(t, out.String(), "MULTIPLY 1.5")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Missing closing brace.
	filePath := writeRules(t, `
variable "Strength" {
  format = "NUMBER"
`)
	emptyConfig := filepath.Join(t.TempDir(), "rulesmith.yaml")
	require.NoError(t, os.WriteFile(emptyConfig, nil, 0600))

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", emptyConfig, filePath})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
	var exitErr *cli.ExitError
	require.NotErrorAs(t, err, &exitErr, "load failures exit with the generic code")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
