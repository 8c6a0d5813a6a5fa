// This file translates decoded HCL blocks into the format-agnostic
// configuration model defined in the config package.

package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/rulesmith/internal/config"
)

func decodeBlock(block *hcl.Block, source config.Source, target any) error {
	if diags := gohcl.DecodeBody(block.Body, nil, target); diags.HasErrors() {
		return fmt.Errorf("%s: %s %q: %w", source, block.Type, block.Labels[0], diags)
	}
	return nil
}

func (d *Decoder) translateScope(block *hcl.Block, source config.Source, model *config.Model) error {
	var b ScopeBlock
	if err := decodeBlock(block, source, &b); err != nil {
		return err
	}
	model.Scopes = append(model.Scopes, &config.Scope{
		Name:   block.Labels[0],
		Parent: b.Parent,
		Source: source,
	})
	return nil
}

func (d *Decoder) translateVariable(block *hcl.Block, source config.Source, model *config.Model) error {
	var b VariableBlock
	if err := decodeBlock(block, source, &b); err != nil {
		return err
	}
	model.Variables = append(model.Variables, &config.Variable{
		Name:   block.Labels[0],
		Format: b.Format,
		Scope:  b.Scope,
		Source: source,
	})
	return nil
}

func (d *Decoder) translateObject(block *hcl.Block, source config.Source, model *config.Model) error {
	var b ObjectBlock
	if err := decodeBlock(block, source, &b); err != nil {
		return err
	}
	model.Objects = append(model.Objects, &config.Object{
		Category: block.Labels[0],
		Key:      block.Labels[1],
		Source:   source,
	})
	return nil
}

func (d *Decoder) translateModifier(block *hcl.Block, source config.Source, model *config.Model) error {
	var b ModifyBlock
	if err := decodeBlock(block, source, &b); err != nil {
		return err
	}
	model.Modifiers = append(model.Modifiers, &config.Modifier{
		Variable:   block.Labels[0],
		Identifier: b.Identifier,
		Value:      b.Value,
		Scope:      b.Scope,
		Source:     source,
	})
	return nil
}
