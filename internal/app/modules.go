package app

import (
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/modules/arithmetic"
	"github.com/specialistvlad/rulesmith/modules/assign"
	"github.com/specialistvlad/rulesmith/modules/bounds"
)

// coreModules is the definitive list of all modules that are compiled into
// the rulesmith binary.
var coreModules = []registry.Module{
	&assign.Module{},
	&arithmetic.Module{},
	&bounds.Module{},
}
