package rules

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/specialistvlad/rulesmith/internal/config"
	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/formula"
	"github.com/specialistvlad/rulesmith/internal/fsutil"
	"github.com/specialistvlad/rulesmith/internal/hcl_adapter"
	"github.com/specialistvlad/rulesmith/internal/registry"
	"github.com/specialistvlad/rulesmith/internal/yaml_adapter"
	"golang.org/x/sync/errgroup"
)

// Loader turns rule files into a Catalog. A Loader may be reused; each Load
// builds fresh formula state.
type Loader struct {
	registry  *registry.Registry
	decoders  map[string]config.Decoder
	contexts  formula.ContextFactory
	functions []formula.Option
	workers   int
}

// Option configures a Loader.
type Option func(*Loader)

// WithWorkers bounds how many files are decoded, and how many modifiers are
// resolved, at the same time. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithDecoder adds or replaces the decoder for the extensions it reports.
func WithDecoder(d config.Decoder) Option {
	return func(l *Loader) {
		for _, ext := range d.Extensions() {
			l.decoders[ext] = d
		}
	}
}

// WithContextFactory replaces formula.DefaultContextFactory.
func WithContextFactory(cf formula.ContextFactory) Option {
	return func(l *Loader) {
		l.contexts = cf
	}
}

// WithFormulaOptions passes options, such as extra functions, to every
// formula.Manager the loader builds.
func WithFormulaOptions(opts ...formula.Option) Option {
	return func(l *Loader) {
		l.functions = append(l.functions, opts...)
	}
}

// NewLoader creates a Loader over a sealed registry. HCL and YAML decoders are
// installed by default.
func NewLoader(reg *registry.Registry, opts ...Option) *Loader {
	if !reg.Sealed() {
		panic("rules: the registry must be sealed before loading")
	}
	l := &Loader{
		registry: reg,
		decoders: make(map[string]config.Decoder),
		contexts: formula.DefaultContextFactory{},
		workers:  runtime.GOMAXPROCS(0),
	}
	WithDecoder(hcl_adapter.NewDecoder())(l)
	WithDecoder(yaml_adapter.NewDecoder())(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load finds every rule file under paths, which may be files or directories,
// and builds the Catalog.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.findFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered rule files.", "count", len(files))

	model, err := l.decodeFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	catalog, err := l.Build(ctx, model)
	if err != nil {
		return nil, err
	}
	catalog.Files = files
	return catalog, nil
}

func (l *Loader) findFiles(paths []string) ([]string, error) {
	extensions := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		extensions = append(extensions, ext)
	}

	var files []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range found {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no rule files found in %v", paths)
	}
	return files, nil
}

// decodeFiles decodes files concurrently and merges the results in source
// order.
func (l *Loader) decodeFiles(ctx context.Context, files []string) (*config.Model, error) {
	models := make([]*config.Model, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decoder, ok := l.decoderFor(file)
			if !ok {
				return fmt.Errorf("no decoder for rule file %s", file)
			}
			src, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read rule file %s: %w", file, err)
			}
			model, err := decoder.Decode(gctx, file, src)
			if err != nil {
				return err
			}
			models[i] = model
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &config.Model{}
	for _, m := range models {
		merged.Merge(m)
	}
	merged.Sort()
	return merged, nil
}

func (l *Loader) decoderFor(file string) (config.Decoder, bool) {
	for ext, d := range l.decoders {
		if strings.HasSuffix(file, ext) {
			return d, true
		}
	}
	return nil, false
}
