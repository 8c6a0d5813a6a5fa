// Package rules loads a rule set from disk into a Catalog.
//
// Loading runs in four phases:
//
//  1. Decode: every rule file is decoded concurrently into a config.Model,
//     and the models are merged in a stable order.
//  2. Build: scopes, variables and objects are added to a fresh
//     formula.Manager. After this phase the formula state is read-only.
//  3. Resolve: every modifier definition is resolved concurrently into a
//     modifier with its references.
//  4. Validate: every reference must name a variable visible from the
//     modifier's scope or a declared object, and the variable dependency
//     graph must be acyclic. All problems are reported together.
//
// Every error names the rule source it came from, e.g.
// `rules.hcl:12: modify "STR": requested unknown modifier type: Integer MULTIPLY`.
package rules
