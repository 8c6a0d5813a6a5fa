package testutil

import (
	"testing"

	"github.com/specialistvlad/rulesmith/internal/rules"
	"github.com/stretchr/testify/require"
)

// AssertModifierResolved checks that the loaded catalog holds a modifier with
// the given identifier on the variable with the given report ID (for
// example "STR@GLOBAL") and returns its report entry.
func AssertModifierResolved(t *testing.T, result *HarnessResult, variableID, identifier string) rules.ModifierReport {
	t.Helper()
	require.NoError(t, result.Err, "rule set failed to load")
	require.NotNil(t, result.Catalog)

	for _, v := range result.Catalog.Report().Variables {
		if v.ID != variableID {
			continue
		}
		for _, m := range v.Modifiers {
			if m.Identifier == identifier {
				return m
			}
		}
		require.Failf(t, "modifier not found", "variable %s has no %s modifier", variableID, identifier)
	}
	require.Failf(t, "variable not found", "variable %s is not in the catalog", variableID)
	return rules.ModifierReport{}
}

// RequireIntegrityProblems asserts that loading failed with a rules.IntegrityError
// and returns its individual problems.
func RequireIntegrityProblems(t *testing.T, result *HarnessResult) []error {
	t.Helper()
	require.Error(t, result.Err)
	var integrity *rules.IntegrityError
	require.ErrorAs(t, result.Err, &integrity)
	return integrity.Problems
}
