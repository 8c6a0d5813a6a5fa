package formula

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// VariableID identifies a declared variable: a name within a scope.
type VariableID struct {
	Scope *Scope
	Name  string
}

// String renders the id as "NAME@SCOPE.PATH", which is also its graph key.
func (id VariableID) String() string {
	return id.Name + "@" + id.Scope.FullName()
}

// VariableConflictError reports a declaration that clashes with an existing one.
type VariableConflictError struct {
	Name   string
	Scope  string
	Reason string
}

func (e *VariableConflictError) Error() string {
	return fmt.Sprintf("variable %q in scope %s: %s", e.Name, e.Scope, e.Reason)
}

// VariableLibrary records the format of every declared variable.
type VariableLibrary struct {
	byScope map[*Scope]map[string]valuetype.Descriptor
}

// NewVariableLibrary creates an empty library.
func NewVariableLibrary() *VariableLibrary {
	return &VariableLibrary{byScope: make(map[*Scope]map[string]valuetype.Descriptor)}
}

// Declare records a variable. Declaring the same variable again with the same
// format is a no-op. A name may not be visible twice along a scope chain, so
// it is rejected when an ancestor or a descendant of scope already declares it.
func (l *VariableLibrary) Declare(scope *Scope, name string, format valuetype.Descriptor) (VariableID, error) {
	id := VariableID{Scope: scope, Name: name}
	if !hclsyntax.ValidIdentifier(name) {
		return id, &VariableConflictError{Name: name, Scope: scope.FullName(), Reason: "not a valid identifier"}
	}

	if existing, ok := l.byScope[scope][name]; ok {
		if existing.Tag() != format.Tag() {
			return id, &VariableConflictError{
				Name:   name,
				Scope:  scope.FullName(),
				Reason: fmt.Sprintf("already declared as %s, cannot redeclare as %s", existing.Name(), format.Name()),
			}
		}
		return id, nil
	}

	for s, vars := range l.byScope {
		if s == scope {
			continue
		}
		if _, ok := vars[name]; !ok {
			continue
		}
		if s.Contains(scope) {
			return id, &VariableConflictError{Name: name, Scope: scope.FullName(), Reason: "already declared in enclosing scope " + s.FullName()}
		}
		if scope.Contains(s) {
			return id, &VariableConflictError{Name: name, Scope: scope.FullName(), Reason: "already declared in nested scope " + s.FullName()}
		}
	}

	if l.byScope[scope] == nil {
		l.byScope[scope] = make(map[string]valuetype.Descriptor)
	}
	l.byScope[scope][name] = format
	return id, nil
}

// Lookup resolves name from scope outwards through its parents.
func (l *VariableLibrary) Lookup(scope *Scope, name string) (VariableID, valuetype.Descriptor, bool) {
	for s := scope; s != nil; s = s.Parent() {
		if format, ok := l.byScope[s][name]; ok {
			return VariableID{Scope: s, Name: name}, format, true
		}
	}
	return VariableID{}, nil, false
}

// Format returns the declared format of id.
func (l *VariableLibrary) Format(id VariableID) (valuetype.Descriptor, bool) {
	format, ok := l.byScope[id.Scope][id.Name]
	return format, ok
}

// Declared reports whether name is declared in any scope.
func (l *VariableLibrary) Declared(name string) bool {
	for _, vars := range l.byScope {
		if _, ok := vars[name]; ok {
			return true
		}
	}
	return false
}

// All returns every declared variable sorted by its string form.
func (l *VariableLibrary) All() []VariableID {
	var out []VariableID
	for s, vars := range l.byScope {
		for name := range vars {
			out = append(out, VariableID{Scope: s, Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
