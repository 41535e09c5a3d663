package generator

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/routetable/routegen/internal/assembler"
	"github.com/routetable/routegen/internal/config"
	"github.com/routetable/routegen/internal/deriver"
	"github.com/routetable/routegen/internal/logging"
	"github.com/routetable/routegen/internal/patch"
	"github.com/routetable/routegen/internal/progress"
	"github.com/routetable/routegen/internal/scanner"
)

// Generator wires scan, derive, assemble and serialize into one run. Every
// run recomputes the full route set from the directory's present state; a
// failed run never touches the existing output artifact.
type Generator struct {
	config *config.Root
	fsys   fs.FS // route source directory; defaults to os.DirFS(config.Source.Dir)
	dryRun io.Writer
	diff   bool
	log    *logging.Logger
	bar    *progress.Bar
}

// Result summarizes a successful run.
type Result struct {
	Sources    int    // route sources discovered
	Entries    int    // entries in the document, base entries included
	OutputPath string // empty on dry runs
	Changed    bool   // output differs from the previous artifact
	Diff       string // unified diff against the previous artifact, if requested
}

func New(conf *config.Root) *Generator {
	return &Generator{config: conf, log: logging.NewNopLogger()}
}

func (g *Generator) WithLogger(log *logging.Logger) *Generator {
	g.log = log
	return g
}

func (g *Generator) WithProgress(bar *progress.Bar) *Generator {
	g.bar = bar
	return g
}

// WithFS overrides the route source filesystem. Used by tests.
func (g *Generator) WithFS(fsys fs.FS) *Generator {
	g.fsys = fsys
	return g
}

// WithDryRun renders the document to w instead of writing the artifact.
func (g *Generator) WithDryRun(w io.Writer) *Generator {
	g.dryRun = w
	return g
}

// WithDiff requests a unified diff of the previous artifact against the new
// rendering in the result.
func (g *Generator) WithDiff(diff bool) *Generator {
	g.diff = diff
	return g
}

// Run executes the pipeline once and reports the outcome. The stages are
// sequential and all I/O is local, so ctx is consulted only between stages.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	doc, sources, err := g.assemble(ctx)
	if err != nil {
		return nil, err
	}

	if g.dryRun == nil && g.config.Output.Path == "" {
		return nil, config.ErrMissingOutput
	}

	serializer := patch.NewSerializer(g.config.Output.Path)
	bs, err := serializer.Render(doc)
	if err != nil {
		return nil, err
	}

	result := Result{
		Sources: sources,
		Entries: len(doc.Entries()),
	}

	// Dry runs still honor a diff request so the rendering can be reviewed
	// against the artifact that a real run would replace.
	if g.dryRun == nil || g.diff {
		diff, changed, err := serializer.Diff(bs)
		if err != nil {
			return nil, err
		}
		result.Changed = changed
		if g.diff {
			result.Diff = diff
		}
	}

	if g.dryRun != nil {
		if _, err := g.dryRun.Write(bs); err != nil {
			return nil, err
		}
		g.bar.Add(1)
		return &result, nil
	}

	if err := serializer.Write(bs); err != nil {
		return nil, err
	}
	g.bar.Add(1)

	result.OutputPath = g.config.Output.Path
	g.log.Infof("wrote %d route entries to %s", result.Entries, result.OutputPath)
	return &result, nil
}

// Routes runs the pipeline up to assembly and returns the ordered entries
// without touching the output artifact. Backs the `routes` listing command.
func (g *Generator) Routes(ctx context.Context) ([]patch.RouteEntry, error) {
	doc, _, err := g.assemble(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Entries(), nil
}

func (g *Generator) assemble(ctx context.Context) (*patch.Document, int, error) {
	conf := g.config
	conf.SetDefaults()
	if err := conf.Check(); err != nil {
		return nil, 0, err
	}

	fsys := g.fsys
	if fsys == nil {
		fsys = os.DirFS(conf.Source.Dir)
	}

	sources, err := scanner.New(fsys).
		WithDir(conf.Source.Dir).
		WithSuffix(conf.Source.Suffix).
		WithExtensions(conf.Source.Extensions).
		Scan()
	if err != nil {
		return nil, 0, err
	}
	g.log.Debugf("discovered %d route sources in %s", len(sources), conf.Source.Dir)
	g.bar.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	derived, err := deriver.New(conf.DerivationRule()).
		WithManifests(fsys).
		WithStrict(conf.Strict).
		WithLogger(g.log).
		Derive(sources)
	if err != nil {
		return nil, 0, err
	}
	g.bar.Add(1)

	doc, err := assembler.New(conf.Selector(), conf.Target.Field).
		WithBase(conf.BaseEntries()).
		Assemble(derived)
	if err != nil {
		return nil, 0, err
	}
	g.bar.Add(1)

	return doc, len(sources), nil
}
