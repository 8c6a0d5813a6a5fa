// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"fmt"
	"sort"
)

// Model is the unified, format-agnostic representation of one or more rule
// files.
type Model struct {
	Scopes    []*Scope
	Variables []*Variable
	Objects   []*Object
	Modifiers []*Modifier
}

// Source locates a definition in a rule file.
type Source struct {
	File string
	Line int
}

func (s Source) String() string {
	if s.Line == 0 {
		return s.File
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Scope is the format-agnostic representation of a `scope` block.
type Scope struct {
	Name string
	// Parent is the enclosing scope's name; empty means GLOBAL.
	Parent string
	Source Source
}

// Variable is the format-agnostic representation of a `variable` block.
type Variable struct {
	Name string
	// Format is a value type name such as "INTEGER" or "Number".
	Format string
	// Scope is the declaring scope's name; empty means GLOBAL.
	Scope  string
	Source Source
}

// Object is the format-agnostic representation of an `object` block.
type Object struct {
	Category string
	Key      string
	Source   Source
}

// Modifier is the format-agnostic representation of a `modify` block.
type Modifier struct {
	// Variable is the name of the modified variable.
	Variable   string
	Identifier string
	Value      string
	// Scope is where the formula is resolved; empty means the scope the
	// variable is declared in.
	Scope  string
	Source Source
}

// Merge appends every definition of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Scopes = append(m.Scopes, other.Scopes...)
	m.Variables = append(m.Variables, other.Variables...)
	m.Objects = append(m.Objects, other.Objects...)
	m.Modifiers = append(m.Modifiers, other.Modifiers...)
}

// Sort orders every definition by source location, so a model merged from
// files decoded concurrently is always the same.
func (m *Model) Sort() {
	sort.SliceStable(m.Scopes, func(i, j int) bool { return less(m.Scopes[i].Source, m.Scopes[j].Source) })
	sort.SliceStable(m.Variables, func(i, j int) bool { return less(m.Variables[i].Source, m.Variables[j].Source) })
	sort.SliceStable(m.Objects, func(i, j int) bool { return less(m.Objects[i].Source, m.Objects[j].Source) })
	sort.SliceStable(m.Modifiers, func(i, j int) bool { return less(m.Modifiers[i].Source, m.Modifiers[j].Source) })
}

func less(a, b Source) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	return a.Line < b.Line
}
