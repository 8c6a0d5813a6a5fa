package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/rulesmith/internal/config"
	"github.com/specialistvlad/rulesmith/internal/ctxlog"
)

// Decoder is the HCL-specific implementation of the config.Decoder interface.
type Decoder struct{}

// NewDecoder creates a new HCL rule file decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Extensions implements config.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".hcl"}
}

// Decode parses one HCL rule file and translates every block into the model.
// A Decoder keeps no state, so Decode may run concurrently for different files.
func (d *Decoder) Decode(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)

	// A parser caches the files it has seen, so each call gets its own.
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	model := &config.Model{}
	for _, block := range content.Blocks {
		source := config.Source{File: filename, Line: block.DefRange.Start.Line}
		var err error
		switch block.Type {
		case "scope":
			err = d.translateScope(block, source, model)
		case "variable":
			err = d.translateVariable(block, source, model)
		case "object":
			err = d.translateObject(block, source, model)
		case "modify":
			err = d.translateModifier(block, source, model)
		}
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL rule file decoded.",
		"scopes", len(model.Scopes),
		"variables", len(model.Variables),
		"objects", len(model.Objects),
		"modifiers", len(model.Modifiers),
	)
	return model, nil
}
