// Package cli turns command-line arguments and an optional YAML config file
// into an app.Config. Usage problems are reported as ExitError values.
package cli
