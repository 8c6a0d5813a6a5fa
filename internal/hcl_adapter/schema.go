package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// rootSchema lists the top-level blocks a rule file may contain.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "scope", LabelNames: []string{"name"}},
		{Type: "variable", LabelNames: []string{"name"}},
		{Type: "object", LabelNames: []string{"category", "key"}},
		{Type: "modify", LabelNames: []string{"variable"}},
	},
}

// ScopeBlock is the body of a `scope "NAME" {}` block.
type ScopeBlock struct {
	Parent string `hcl:"parent,optional"`
}

// VariableBlock is the body of a `variable "NAME" {}` block.
type VariableBlock struct {
	Format string `hcl:"format"`
	Scope  string `hcl:"scope,optional"`
}

// ObjectBlock is the body of an `object "CATEGORY" "KEY" {}` block.
type ObjectBlock struct{}

// ModifyBlock is the body of a `modify "VARIABLE" {}` block.
type ModifyBlock struct {
	Identifier string `hcl:"identifier"`
	Value      string `hcl:"value"`
	Scope      string `hcl:"scope,optional"`
}
