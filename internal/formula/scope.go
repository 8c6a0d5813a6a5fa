package formula

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// GlobalScopeName is the name of the root scope every tree starts with.
const GlobalScopeName = "GLOBAL"

// Scope is a namespace in which formula names are resolved. Names declared in
// a scope are visible from all of its descendants.
type Scope struct {
	name   string
	parent *Scope
}

// Name returns the scope's own name, e.g. "EQUIPMENT".
func (s *Scope) Name() string { return s.name }

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// FullName returns the dotted path from the root, e.g. "GLOBAL.EQUIPMENT".
func (s *Scope) FullName() string {
	if s.parent == nil {
		return s.name
	}
	return s.parent.FullName() + "." + s.name
}

// Contains reports whether other is s or one of its descendants.
func (s *Scope) Contains(other *Scope) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == s {
			return true
		}
	}
	return false
}

func (s *Scope) String() string { return s.FullName() }

// ScopeTree holds every scope of a rule set, keyed by name.
type ScopeTree struct {
	global *Scope
	byName map[string]*Scope
}

// NewScopeTree creates a tree containing only the global scope.
func NewScopeTree() *ScopeTree {
	global := &Scope{name: GlobalScopeName}
	return &ScopeTree{
		global: global,
		byName: map[string]*Scope{GlobalScopeName: global},
	}
}

// Global returns the root scope.
func (t *ScopeTree) Global() *Scope { return t.global }

// Add creates a scope under the named parent, given by its own or its full
// dotted name. Scope names are unique across the whole tree.
func (t *ScopeTree) Add(name, parentName string) (*Scope, error) {
	if !hclsyntax.ValidIdentifier(name) {
		return nil, fmt.Errorf("invalid scope name %q", name)
	}
	if _, exists := t.byName[name]; exists {
		return nil, fmt.Errorf("scope %q already defined", name)
	}
	if parentName == "" {
		parentName = GlobalScopeName
	}
	parent, ok := t.Get(parentName)
	if !ok {
		return nil, fmt.Errorf("unknown parent scope %q", parentName)
	}
	s := &Scope{name: name, parent: parent}
	t.byName[name] = s
	return s, nil
}

// Get finds a scope by its own name or by its full dotted name.
func (t *ScopeTree) Get(name string) (*Scope, bool) {
	if s, ok := t.byName[name]; ok {
		return s, true
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		if s, ok := t.byName[name[i+1:]]; ok && s.FullName() == name {
			return s, true
		}
	}
	return nil, false
}

// All returns every scope ordered by full name, so parents precede children.
func (t *ScopeTree) All() []*Scope {
	out := make([]*Scope, 0, len(t.byName))
	for _, s := range t.byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}
