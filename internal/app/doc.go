// Package app wires a rulesmith run together: it installs the modifier
// modules into a sealed registry and drives loading and reporting. It does
// not know about flags or process exit codes.
package app
