// Package config defines the format-agnostic model of a rule set, along with
// the Decoder interface that turns a rule file into it.
//
// The `config.Model` is the single source of truth for the rules package.
// Concrete decoders, such as for HCL and YAML, are provided in separate
// packages.
package config
