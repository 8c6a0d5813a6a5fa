package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/rulesmith/internal/app"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/rules"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Catalog   *rules.Catalog
}

// RunLoadTest provides a standardized harness for loading a rule set using a
// default background context.
func RunLoadTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunLoadTestWithContext(context.Background(), t, files, modules...)
}

// RunLoadTestWithContext writes files (relative path to content) into a
// temporary rules directory and loads it through a fresh App. Without
// modules the App installs its core modules.
func RunLoadTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	rulesDir := filepath.Join(t.TempDir(), "rules")
	require.NoError(t, os.Mkdir(rulesDir, 0755))
	for name, content := range files {
		filePath := filepath.Join(rulesDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg := app.DefaultConfig()
	cfg.RulesPaths = []string{rulesDir}
	cfg.LogLevel = "debug"
	cfg.Workers = 4

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var startErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("RULESMITH_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				startErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		testApp, startErr = app.NewApp(&bytes.Buffer{}, logBuffer, &cfg, modules...)
	}()
	if startErr != nil {
		return &HarnessResult{LogOutput: logBuffer.String(), Err: startErr}
	}

	catalog, err := testApp.Load(ctx)

	if os.Getenv("RULESMITH_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
		Catalog:   catalog,
	}
}
