// Package valuetype defines the value types a modifier can produce.
//
// A value type is described twice. The non-generic Descriptor is what rule
// files name (`format = "NUMBER"`) and what registries use as a lookup key.
// The generic Format[T] adds the typed bridge between the cty values that
// formulas evaluate to and the Go values modifiers operate on, which is what
// keeps modifier resolution type-safe at compile time.
package valuetype
