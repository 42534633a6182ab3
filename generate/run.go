package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Defaults for Options.
const (
	DefaultOutput   = "fieldops_gen.go"
	DefaultDeclFile = "fieldops.yaml"
)

// Options control Run.
type Options struct {
	// Output is the name of the generated file in the package directory.
	Output string
	// DeclFile is the name of the declaration file in the package
	// directory. It is optional; a missing file is not an error.
	DeclFile string
	// DryRun writes the generated source to Stdout instead of the
	// package directory.
	DryRun bool
	Stdout io.Writer
	Logger *zap.Logger
}

func (o *Options) fill() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.DeclFile == "" {
		o.DeclFile = DefaultDeclFile
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Run generates the operator methods for the package in dir.
func Run(ctx context.Context, dir string, opts Options) error {
	opts.fill()
	logger := opts.Logger.With(zap.String("dir", dir))

	pkg, err := Load(dir, opts.Output, logger)
	if err != nil {
		return err
	}
	decls := pkg.Decls()
	fileDecls, err := LoadDeclFile(filepath.Join(dir, opts.DeclFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		logger.Debug("read declaration file", zap.String("file", opts.DeclFile), zap.Int("decls", len(fileDecls)))
		decls = append(decls, fileDecls...)
	}
	if err := checkUnique(decls); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outPath := filepath.Join(dir, opts.Output)
	if len(decls) == 0 {
		if opts.DryRun {
			return nil
		}
		removed, err := removeGenerated(outPath)
		if removed {
			logger.Info("removed stale output", zap.String("file", opts.Output))
		}
		return err
	}

	var (
		plans []*Plan
		errs  []error
	)
	for _, d := range decls {
		p, err := Check(pkg, d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Debug("checked", zap.String("type", d.Type), zap.Int("fields", len(p.values)),
			zap.Strings("methods", d.methodNames()))
		plans = append(plans, p)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	src, err := Generate(pkg.Name, plans)
	if err != nil {
		return fmt.Errorf("%s: %w", dir, err)
	}
	if opts.DryRun {
		_, err := opts.Stdout.Write(src)
		return err
	}
	if err := writeFile(outPath, src); err != nil {
		return err
	}
	logger.Info("generated", zap.String("file", opts.Output), zap.Int("types", len(plans)))
	return nil
}

// checkUnique rejects a type declared more than once, whether by two
// directives, a directive and the declaration file, or twice in the file.
func checkUnique(decls []Decl) error {
	first := map[string]Decl{}
	for _, d := range decls {
		if prev, ok := first[d.Type]; ok {
			return fmt.Errorf("%s: %s already declared at %s", d.Pos, d.Type, prev.Pos)
		}
		first[d.Type] = d
	}
	return nil
}
