// Package modifier defines what a modifier is and how one is built.
//
// A modifier changes the value of a variable: `ADD 3+VAR1` on an Integer
// variable adds the value of the formula `3+VAR1` to whatever the variable
// held before. Modifiers are produced by a Factory registered for one
// (value type, identifier) pair, and are built in two phases:
//
//  1. Factory.NewModifier parses and checks the instructions.
//  2. The caller walks Dependencies and injects the discovered references
//     exactly once with AddReferences.
//
// After the second phase the modifier is immutable.
package modifier
