package rules

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/rulesmith/internal/config"
)

// DefinitionError ties an error to the rule definition that caused it.
type DefinitionError struct {
	Source config.Source
	// Kind is the block type, e.g. "modify".
	Kind string
	// Name is the block's label, e.g. the modified variable.
	Name string
	Err  error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", e.Source, e.Kind, e.Name, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// IntegrityError lists every referential problem found in a rule set.
type IntegrityError struct {
	Problems []error
}

func (e *IntegrityError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return fmt.Sprintf("rule set validation failed:\n- %s", strings.Join(msgs, "\n- "))
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *IntegrityError) Unwrap() []error {
	return e.Problems
}
