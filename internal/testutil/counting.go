package testutil

import (
	"sync"

	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/modifier"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
	"github.com/specialistvlad/rulesmith/modules/arithmetic"
	"github.com/specialistvlad/rulesmith/modules/assign"
)

// CountingModule registers Integer SET and ADD and records how many
// modifiers each factory builds. It is safe for concurrent loads.
type CountingModule struct {
	mu     sync.Mutex
	counts map[string]int
}

// Register implements registry.Module.
func (m *CountingModule) Register(r *registry.Registry) {
	registry.Register[int64](r, &countingFactory{
		Factory: modifier.NewOperationFactory[int64](valuetype.Integer, assign.Set[int64]()),
		module:  m,
	})
	registry.Register[int64](r, &countingFactory{
		Factory: modifier.NewOperationFactory[int64](valuetype.Integer, arithmetic.AddInteger),
		module:  m,
	})
}

// Created returns how many modifiers the factory for identifier has built.
func (m *CountingModule) Created(identifier string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[identifier]
}

func (m *CountingModule) record(identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[identifier]++
}

type countingFactory struct {
	modifier.Factory[int64]
	module *CountingModule
}

func (f *countingFactory) NewModifier(
	instructions string,
	contexts formula.ContextFactory,
	fm *formula.Manager,
	scope *formula.Scope,
	format valuetype.Format[int64],
) (modifier.Modifier[int64], error) {
	f.module.record(f.Identifier())
	return f.Factory.NewModifier(instructions, contexts, fm, scope, format)
}
