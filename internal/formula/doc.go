// Package formula holds the shared formula state of a rule set and the
// contexts used to analyze and evaluate formulas against it.
//
// # Core Concepts
//
//   - Manager: the formula state. It owns the scope tree, the variable library,
//     the object registry and the function table. It is populated while rule
//     files are loaded and is read-only afterwards.
//
//   - Formula: an HCL expression (or template) parsed from modifier
//     instructions, e.g. `3+VAR1` or `max(STR, skill.Balance)`.
//
//   - DependencyContext: a short-lived, append-only configuration bag used to
//     walk a formula and collect what it refers to. It carries a scope, a
//     VariableStrategy and the sinks that receive results.
//
// # Two passes
//
// References are discovered structurally, from the syntax tree alone, when a
// modifier is resolved. At that point variables may not be declared yet, so
// the resolver uses IgnoreVariables, which never looks a name up. Once every
// rule file is loaded, the same walk runs again with TrackVariables to bind
// each name to a declared variable or object and report the ones that do not
// exist.
package formula
