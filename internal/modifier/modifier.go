package modifier

import (
	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// Descriptor is the part of a modifier that does not depend on the type of
// value it modifies.
type Descriptor interface {
	// Identifier is the operation name, e.g. "ADD".
	Identifier() string
	// Instructions is the operand text the modifier was built from.
	Instructions() string
	// Format is the type of value the modifier applies to.
	Format() valuetype.Descriptor
	// Priority orders modifiers of the same variable; lower runs first.
	Priority() int
	// Dependencies walks the modifier's formula.
	Dependencies(dc *formula.DependencyContext) error
	// AddReferences injects the references found by Dependencies. It must be
	// called exactly once.
	AddReferences(refs []formula.Reference)
	// References returns what AddReferences injected.
	References() []formula.Reference
}

// Modifier is a descriptor that can be applied to a value of type T.
type Modifier[T any] interface {
	Descriptor
	// Process evaluates the formula against ec and applies the operation to
	// input.
	Process(ec *formula.EvaluationContext, input T) (T, error)
}

// Factory builds modifiers of one identifier for one value type.
type Factory[T any] interface {
	Identifier() string
	Format() valuetype.Format[T]
	NewModifier(
		instructions string,
		contexts formula.ContextFactory,
		fm *formula.Manager,
		scope *formula.Scope,
		format valuetype.Format[T],
	) (Modifier[T], error)
}
