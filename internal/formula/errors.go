package formula

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// ErrEmptyFormula is returned when instructions contain no formula at all.
var ErrEmptyFormula = errors.New("formula is empty")

// SyntaxError reports instructions that are not a valid formula.
type SyntaxError struct {
	Text  string
	Diags hcl.Diagnostics
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid formula %q: %s", e.Text, e.Diags.Error())
}

func (e *SyntaxError) Unwrap() error {
	return e.Diags
}

// UnknownFunctionError reports a call to a function missing from the
// function table.
type UnknownFunctionError struct {
	Name string
	Text string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("formula %q calls unknown function %q", e.Text, e.Name)
}

// UndefinedReferenceError reports a reference that names neither a variable
// visible from the scope nor a declared object.
type UndefinedReferenceError struct {
	Reference Reference
	Scope     string
	Reason    string
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("reference %q in scope %s: %s", e.Reference.Key, e.Scope, e.Reason)
}

// EvaluationError reports a formula that failed to produce a value.
type EvaluationError struct {
	Text  string
	Diags hcl.Diagnostics
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating formula %q: %s", e.Text, e.Diags.Error())
}

func (e *EvaluationError) Unwrap() error {
	return e.Diags
}
