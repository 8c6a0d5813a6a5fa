// Package registry provides the central "glue" for the modifier system.
//
// The Registry maps a (value type, identifier) pair, e.g. (Integer, "ADD"),
// to the compiled Go factory that builds modifiers for it. Modules in the
// modules/ tree populate it at startup through the Module interface. Once the
// application has installed every module it seals the registry, after which it
// is read-only and safe to share between goroutines.
//
// Registering the same pair twice, or registering after Seal, is a
// programming error and panics.
package registry
