package formula

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// ObjectRegistry records the game objects formulas may refer to, grouped by
// category. A formula names an object as `category.key`, e.g. `skill.Balance`.
type ObjectRegistry struct {
	categories map[string]map[string]struct{}
}

// NewObjectRegistry creates an empty registry.
func NewObjectRegistry() *ObjectRegistry {
	return &ObjectRegistry{categories: make(map[string]map[string]struct{})}
}

// Add declares an object. Both parts must be identifiers so the object can be
// written as a traversal.
func (r *ObjectRegistry) Add(category, key string) error {
	if !hclsyntax.ValidIdentifier(category) {
		return fmt.Errorf("invalid object category %q", category)
	}
	if !hclsyntax.ValidIdentifier(key) {
		return fmt.Errorf("invalid key %q for object category %q", key, category)
	}
	if r.categories[category] == nil {
		r.categories[category] = make(map[string]struct{})
	}
	r.categories[category][key] = struct{}{}
	return nil
}

// HasCategory reports whether any object of category was declared.
func (r *ObjectRegistry) HasCategory(category string) bool {
	_, ok := r.categories[category]
	return ok
}

// Has reports whether the object category.key was declared.
func (r *ObjectRegistry) Has(category, key string) bool {
	_, ok := r.categories[category][key]
	return ok
}

// Categories returns the declared categories in sorted order.
func (r *ObjectRegistry) Categories() []string {
	out := make([]string, 0, len(r.categories))
	for c := range r.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Keys returns the keys declared for category in sorted order.
func (r *ObjectRegistry) Keys(category string) []string {
	keys := r.categories[category]
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
