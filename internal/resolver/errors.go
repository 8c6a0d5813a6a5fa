package resolver

import (
	"errors"
	"fmt"
)

// ErrUnknownModifierType matches every *UnknownModifierTypeError via errors.Is.
var ErrUnknownModifierType = errors.New("unknown modifier type")

// UnknownModifierTypeError reports a (value type, identifier) pair with no
// registered factory. It is an authoring error in the rule files.
type UnknownModifierTypeError struct {
	TypeName   string
	Identifier string
}

func (e *UnknownModifierTypeError) Error() string {
	return fmt.Sprintf("requested unknown modifier type: %s %s", e.TypeName, e.Identifier)
}

func (e *UnknownModifierTypeError) Is(target error) bool {
	return target == ErrUnknownModifierType
}
