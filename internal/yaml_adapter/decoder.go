package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/rulesmith/internal/config"
	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// document is the top level of a rule file. Entries stay yaml.Nodes until
// translated so each keeps its line number.
type document struct {
	Scopes    []yaml.Node `yaml:"scopes"`
	Variables []yaml.Node `yaml:"variables"`
	Objects   []yaml.Node `yaml:"objects"`
	Modifiers []yaml.Node `yaml:"modifiers"`
}

type scopeEntry struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
}

type variableEntry struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
	Scope  string `yaml:"scope"`
}

type objectEntry struct {
	Category string `yaml:"category"`
	Key      string `yaml:"key"`
}

type modifierEntry struct {
	Variable   string `yaml:"variable"`
	Identifier string `yaml:"identifier"`
	Value      string `yaml:"value"`
	Scope      string `yaml:"scope"`
}

// Decoder is the YAML-specific implementation of the config.Decoder interface.
type Decoder struct{}

// NewDecoder creates a new YAML rule file decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Extensions implements config.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Decode parses one YAML rule file. Unknown keys are errors, and an empty
// file yields an empty model.
func (d *Decoder) Decode(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	model := &config.Model{}
	for i := range doc.Scopes {
		var e scopeEntry
		source, err := decodeEntry(filename, &doc.Scopes[i], "scope", &e)
		if err != nil {
			return nil, err
		}
		if e.Name == "" {
			return nil, fmt.Errorf("%s: scope: name is required", source)
		}
		model.Scopes = append(model.Scopes, &config.Scope{Name: e.Name, Parent: e.Parent, Source: source})
	}
	for i := range doc.Variables {
		var e variableEntry
		source, err := decodeEntry(filename, &doc.Variables[i], "variable", &e)
		if err != nil {
			return nil, err
		}
		if e.Name == "" || e.Format == "" {
			return nil, fmt.Errorf("%s: variable %q: name and format are required", source, e.Name)
		}
		model.Variables = append(model.Variables, &config.Variable{Name: e.Name, Format: e.Format, Scope: e.Scope, Source: source})
	}
	for i := range doc.Objects {
		var e objectEntry
		source, err := decodeEntry(filename, &doc.Objects[i], "object", &e)
		if err != nil {
			return nil, err
		}
		if e.Category == "" || e.Key == "" {
			return nil, fmt.Errorf("%s: object: category and key are required", source)
		}
		model.Objects = append(model.Objects, &config.Object{Category: e.Category, Key: e.Key, Source: source})
	}
	for i := range doc.Modifiers {
		var e modifierEntry
		source, err := decodeEntry(filename, &doc.Modifiers[i], "modifier", &e)
		if err != nil {
			return nil, err
		}
		if e.Variable == "" || e.Identifier == "" {
			return nil, fmt.Errorf("%s: modify %q: variable and identifier are required", source, e.Variable)
		}
		model.Modifiers = append(model.Modifiers, &config.Modifier{
			Variable:   e.Variable,
			Identifier: e.Identifier,
			Value:      e.Value,
			Scope:      e.Scope,
			Source:     source,
		})
	}

	logger.Debug("YAML rule file decoded.",
		"scopes", len(model.Scopes),
		"variables", len(model.Variables),
		"objects", len(model.Objects),
		"modifiers", len(model.Modifiers),
	)
	return model, nil
}

// decodeEntry decodes one list item, rejecting keys the entry does not know.
func decodeEntry(filename string, node *yaml.Node, kind string, target any) (config.Source, error) {
	source := config.Source{File: filename, Line: node.Line}
	if node.Kind != yaml.MappingNode {
		return source, fmt.Errorf("%s: %s entry must be a mapping", source, kind)
	}

	// Re-encode through a strict decoder; yaml.Node.Decode has no KnownFields.
	raw, err := yaml.Marshal(node)
	if err != nil {
		return source, fmt.Errorf("%s: %s: %w", source, kind, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		return source, fmt.Errorf("%s: %s: %w", source, kind, err)
	}
	return source, nil
}
