// Package integration_tests holds end-to-end tests that load rule files
// through the full application stack.
package integration_tests
