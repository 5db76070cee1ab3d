// Package driver runs a whole generation: parse every ITL input into one
// table, assemble the module tree, run both backends into memory and only
// then commit the result.
package driver

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/config"
	"github.com/teranos/itl2py/display"
	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/itl"
	"github.com/teranos/itl2py/logger"
	"github.com/teranos/itl2py/typegen"
	"github.com/teranos/itl2py/typegen/cpp"
	"github.com/teranos/itl2py/typegen/python"
	"github.com/teranos/itl2py/version"
)

// Result describes one run.
type Result struct {
	RunID  string
	Root   *ast.Module
	Output *typegen.Output
	// Written are the paths committed to disk; empty for dry and check runs.
	Written []string
	// ManifestPath is set when a manifest was written.
	ManifestPath string
	Check        *typegen.CheckResult
}

// Options converts a finalized config to backend options.
func Options(cfg *config.Config) typegen.Options {
	return typegen.Options{
		PackageName:       cfg.PackageName,
		NativePackageName: cfg.NativePackageName,
		DefaultEncoding:   cfg.DefaultEncoding,
		IDLNames:          cfg.IDLNames,
		MinOpenDDSVersion: cfg.OpenDDSVersion(),
	}
}

// Generators returns the backends in the order they run.
func Generators(opts typegen.Options) []typegen.Generator {
	return []typegen.Generator{
		python.NewGenerator(opts),
		cpp.NewGenerator(opts),
	}
}

// Driver holds what a run needs besides the config.
type Driver struct {
	// Stdout receives dry-run output and AST dumps.
	Stdout io.Writer
	logger *zap.SugaredLogger
}

// New creates a driver printing to stdout.
func New(stdout io.Writer) *Driver {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Driver{Stdout: stdout}
}

func (d *Driver) start(ctx context.Context) (context.Context, string) {
	runID := uuid.NewString()
	ctx = logger.WithComponent(logger.WithRunID(ctx, runID), "driver")
	d.logger = logger.LoggerFromContext(ctx)
	return ctx, runID
}

// Compute parses, assembles and generates without touching the output
// directory.
func (d *Driver) Compute(ctx context.Context, cfg *config.Config) (*Result, error) {
	ctx, runID := d.start(ctx)
	return d.compute(ctx, runID, cfg)
}

func (d *Driver) compute(ctx context.Context, runID string, cfg *config.Config) (*Result, error) {
	result := &Result{RunID: runID}

	parser := itl.NewParser(ast.NewTable())
	for _, path := range cfg.ITLFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		started := time.Now()
		d.logger.Infow("parsing", logger.FieldFile, path)
		if err := parser.ParseFile(path); err != nil {
			return nil, err
		}
		d.logger.Debugw("parsed",
			logger.FieldFile, path,
			logger.FieldCount, parser.Table().Len(),
			logger.FieldDurationMS, time.Since(started).Milliseconds())
	}

	root, err := ast.Assemble(parser.Table())
	if err != nil {
		return nil, err
	}
	result.Root = root

	if cfg.JustDumpAST {
		return result, nil
	}

	opts := Options(cfg)
	out := &typegen.Output{}
	for _, gen := range Generators(opts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		started := time.Now()
		generated, err := gen.Generate(root)
		if err != nil {
			return nil, errors.Wrapf(err, "%s backend", gen.Language())
		}
		d.logger.Debugw("backend finished",
			logger.FieldBackend, gen.Language(),
			logger.FieldCount, len(generated.Files),
			logger.FieldDurationMS, time.Since(started).Milliseconds())
		out.Merge(generated)
	}
	result.Output = out

	for _, gap := range out.Degraded {
		d.logger.Infow("degraded field",
			logger.FieldBackend, gap.Backend,
			logger.FieldType, gap.Type,
			logger.FieldField, gap.Field,
			logger.FieldReason, gap.Reason)
	}
	return result, nil
}

// Run is the generate command: compute everything, optionally dump the
// tree, then write the files (or print them for a dry run).
func (d *Driver) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	ctx, runID := d.start(ctx)
	result, err := d.compute(ctx, runID, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DumpAST {
		if err := display.Dump(d.Stdout, result.Root, cfg.DumpFormat); err != nil {
			return nil, err
		}
	}
	if cfg.JustDumpAST {
		return result, nil
	}

	if cfg.DryRun {
		if err := typegen.Print(d.Stdout, result.Output); err != nil {
			return nil, errors.Wrap(err, "failed to print dry run")
		}
		return result, nil
	}

	written, err := typegen.Commit(result.Output, cfg.Output)
	result.Written = written
	if err != nil {
		return result, err
	}
	d.logger.Infow("generated", logger.FieldOutput, cfg.Output, logger.FieldCount, len(written))

	if cfg.Manifest {
		m := typegen.NewManifest(runID, Options(cfg), cfg.ITLFiles, result.Output)
		if err := typegen.WriteManifest(cfg.ManifestPath(), m); err != nil {
			return result, err
		}
		result.ManifestPath = cfg.ManifestPath()
	}
	return result, nil
}

// Check regenerates in memory and compares with the output directory.
func (d *Driver) Check(ctx context.Context, cfg *config.Config) (*Result, error) {
	ctx, runID := d.start(ctx)
	checkCfg := *cfg
	checkCfg.JustDumpAST = false
	result, err := d.compute(ctx, runID, &checkCfg)
	if err != nil {
		return nil, err
	}
	check, err := typegen.Compare(result.Output, cfg.Output, cfg.PackageName)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(cfg.ManifestPath()); statErr == nil {
		m, err := typegen.ReadManifest(cfg.ManifestPath())
		if err != nil {
			return nil, err
		}
		check.GeneratedBy = m.Generator
		check.OtherGenerator = !version.Get().SameGenerator(m.Generator)
		if check.OtherGenerator {
			d.logger.Infow("output written by another itl2py build",
				"generator", m.Generator,
				logger.FieldOutput, cfg.Output)
		}
	}
	result.Check = check
	d.logger.Infow("checked",
		logger.FieldOutput, cfg.Output,
		logger.FieldCount, len(check.Files()))
	return result, nil
}
