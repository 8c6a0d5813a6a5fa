package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the modifier factories of a single application instance.
type Registry struct {
	// factories holds a modifier.Factory[T] per identifier per value type.
	factories map[valuetype.Tag]map[string]any
	formats   map[valuetype.Tag]valuetype.Descriptor
	sealed    atomic.Bool
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		factories: make(map[valuetype.Tag]map[string]any),
		formats:   make(map[valuetype.Tag]valuetype.Descriptor),
	}
}

// Register adds a factory under its format and identifier.
func Register[T any](r *Registry, factory modifier.Factory[T]) {
	format := factory.Format()
	identifier := factory.Identifier()
	if r.sealed.Load() {
		panic(fmt.Sprintf("modifier factory %s %s registered after the registry was sealed", format.Name(), identifier))
	}
	if _, exists := r.factories[format.Tag()][identifier]; exists {
		panic(fmt.Sprintf("modifier factory %s %s already registered", format.Name(), identifier))
	}
	slog.Debug("Registering modifier factory.", "format", format.Name(), "identifier", identifier)
	if r.factories[format.Tag()] == nil {
		r.factories[format.Tag()] = make(map[string]any)
		r.formats[format.Tag()] = format
	}
	r.factories[format.Tag()][identifier] = factory
}

// Lookup returns the factory registered for format and identifier. The
// identifier must match exactly.
func Lookup[T any](r *Registry, format valuetype.Format[T], identifier string) (modifier.Factory[T], bool) {
	entry, ok := r.factories[format.Tag()][identifier]
	if !ok {
		return nil, false
	}
	factory, ok := entry.(modifier.Factory[T])
	return factory, ok
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Identifiers returns the identifiers registered for tag in sorted order.
func (r *Registry) Identifiers(tag valuetype.Tag) []string {
	out := make([]string, 0, len(r.factories[tag]))
	for id := range r.factories[tag] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Formats returns the value types that have at least one factory, sorted by tag.
func (r *Registry) Formats() []valuetype.Descriptor {
	out := make([]valuetype.Descriptor, 0, len(r.formats))
	for _, f := range r.formats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag() < out[j].Tag() })
	return out
}
