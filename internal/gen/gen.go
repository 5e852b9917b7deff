// Package gen drives one appprops-gen run: load a package, extract its
// annotated types, render the loaders and write the output file.
package gen

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/tools/go/packages"

	"github.com/Azhovan/appprops/internal/annotation"
	"github.com/Azhovan/appprops/internal/loadergen"
)

// DefaultOutput is the file written when Options.Output is empty.
const DefaultOutput = "appprops_gen.go"

// Options configures a generator run.
type Options struct {
	// Dir is the package directory. Default: ".".
	Dir string

	// Output is the generated file name, relative to Dir. Default: DefaultOutput.
	Output string

	// Types restricts generation to the named annotated types. Empty = all.
	Types []string

	// Tags are build tags used when loading the package.
	Tags []string

	// FS reads source documents and receives the output. Default: the OS filesystem.
	FS afero.Fs

	// Logger receives progress events. Default: disabled.
	Logger *zerolog.Logger
}

func (o *Options) setDefaults() error {
	if o.Dir == "" {
		o.Dir = "."
	}
	dir, err := filepath.Abs(o.Dir)
	if err != nil {
		return fmt.Errorf("resolve package directory %s: %w", o.Dir, err)
	}
	o.Dir = dir

	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if filepath.Base(o.Output) != o.Output {
		return fmt.Errorf("output %q must be a file name inside the package directory", o.Output)
	}
	if !strings.HasSuffix(o.Output, ".go") || strings.HasSuffix(o.Output, "_test.go") {
		return fmt.Errorf("output %q must be a non-test .go file", o.Output)
	}

	if o.FS == nil {
		o.FS = afero.NewOsFs()
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return nil
}

// Run generates loaders for the package in opts.Dir and returns the path of
// the written file. On any extraction error nothing is written.
func Run(ctx context.Context, opts Options) (string, error) {
	if err := opts.setDefaults(); err != nil {
		return "", err
	}
	log := opts.Logger

	// Step 1: Parse the package (syntax only; the previous output may not type-check)
	pkg, err := loadPackage(ctx, opts)
	if err != nil {
		return "", err
	}
	log.Debug().Str("package", pkg.PkgPath).Int("files", len(pkg.Syntax)).Msg("loaded package")

	// Step 2: Drop previous output so its declarations do not collide
	files := sourceFiles(pkg, opts.Output)

	// Step 3: Extract descriptors
	descs, err := annotation.Extract(annotation.Input{
		Fset:  pkg.Fset,
		Files: files,
		Dir:   opts.Dir,
		FS:    opts.FS,
	})
	if err != nil {
		return "", err
	}

	// Step 4: Apply the type filter
	descs, err = filterTypes(descs, opts.Types)
	if err != nil {
		return "", err
	}

	// Step 5: Render
	src, err := loadergen.Generate(opts.Output, pkg.Name, descs)
	if err != nil {
		if errors.Is(err, loadergen.ErrNoLoaders) {
			return "", fmt.Errorf("package %s: %w (add //appprops:load src=<file> to a struct type)", pkg.PkgPath, err)
		}
		return "", err
	}

	// Step 6: Write
	target := filepath.Join(opts.Dir, opts.Output)
	if err := afero.WriteFile(opts.FS, target, src, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}

	for _, d := range descs {
		log.Info().
			Str("type", d.Target).
			Str("src", d.Src).
			Str("format", d.Format.String()).
			Str("output", opts.Output).
			Msg("generated loader")
	}

	return target, nil
}

func loadPackage(ctx context.Context, opts Options) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
		Dir:     opts.Dir,
	}
	if len(opts.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(opts.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("load package %s: %w", opts.Dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("load package %s: expected 1 package, found %d", opts.Dir, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		return nil, fmt.Errorf("load package %s: %w", opts.Dir, errors.Join(errs...))
	}
	return pkg, nil
}

// sourceFiles returns the package files that were not written by us.
func sourceFiles(pkg *packages.Package, output string) []*ast.File {
	files := make([]*ast.File, 0, len(pkg.Syntax))
	for _, f := range pkg.Syntax {
		name := pkg.Fset.File(f.Pos()).Name()
		if filepath.Base(name) == output || isGenerated(f) {
			continue
		}
		files = append(files, f)
	}
	return files
}

// isGenerated reports whether f starts with loadergen.Header.
func isGenerated(f *ast.File) bool {
	for _, group := range f.Comments {
		if group.Pos() >= f.Package {
			return false
		}
		for _, c := range group.List {
			if c.Text == loadergen.Header {
				return true
			}
		}
	}
	return false
}

func filterTypes(descs []annotation.Descriptor, types []string) ([]annotation.Descriptor, error) {
	if len(types) == 0 {
		return descs, nil
	}

	byName := make(map[string]annotation.Descriptor, len(descs))
	for _, d := range descs {
		byName[d.Target] = d
	}

	out := make([]annotation.Descriptor, 0, len(types))
	for _, d := range descs {
		for _, t := range types {
			if d.Target == t {
				out = append(out, d)
				break
			}
		}
	}
	for _, t := range types {
		if _, ok := byName[t]; !ok {
			return nil, fmt.Errorf("type %s is not annotated with //appprops:load", t)
		}
	}
	return out, nil
}
