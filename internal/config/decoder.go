package config

import "context"

// Decoder is the interface for a format-specific rule file decoder.
type Decoder interface {
	// Extensions lists the file name suffixes the decoder handles, e.g. ".hcl".
	Extensions() []string
	// Decode translates the contents of one rule file into the
	// format-agnostic model. filename is only used for diagnostics.
	Decode(ctx context.Context, filename string, src []byte) (*Model, error)
}
