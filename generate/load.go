package generate

import (
	"fmt"
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// A Package is a parsed and typechecked package directory.
type Package struct {
	Dir  string
	Name string

	fset  *token.FileSet
	files []*ast.File
	tpkg  *types.Package
	// Decls from directives in the source, in file order.
	decls []Decl
	// Soft type errors. The package may call methods that only the
	// previous generated file defined, so these do not stop generation.
	typeErrors []error
}

// Decls returns the declarations found in source directives.
func (p *Package) Decls() []Decl { return p.decls }

// Load parses the Go files of dir that match the default build context,
// skipping tests and the file named output, and typechecks them.
func Load(dir, output string, logger *zap.Logger) (*Package, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fset := token.NewFileSet()
	filter := func(fi fs.FileInfo) bool {
		name := fi.Name()
		if strings.HasSuffix(name, "_test.go") || name == output {
			return false
		}
		ok, err := build.Default.MatchFile(dir, name)
		return err == nil && ok
	}
	pkgs, err := parser.ParseDir(fset, dir, filter, parser.ParseComments|parser.AllErrors)
	if err != nil {
		return nil, err
	}
	var apkg *ast.Package
	switch len(pkgs) {
	case 0:
		return nil, fmt.Errorf("no Go files in %s", dir)
	case 1:
		for _, p := range pkgs {
			apkg = p
		}
	default:
		pkgName := filepath.Base(dir)
		apkg = pkgs[pkgName]
		if apkg == nil {
			return nil, fmt.Errorf("can't find package %q in directory %q", pkgName, dir)
		}
	}

	// Sort by filename so directive order and errors are stable.
	var filenames []string
	for filename := range apkg.Files {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)
	p := &Package{Dir: dir, Name: apkg.Name, fset: fset}
	for _, filename := range filenames {
		file := apkg.Files[filename]
		p.files = append(p.files, file)
		ds, err := parseDirectives(fset, file)
		if err != nil {
			return nil, err
		}
		p.decls = append(p.decls, ds...)
	}
	if err := p.typecheck(); err != nil {
		return nil, err
	}
	for _, err := range p.typeErrors {
		logger.Debug("ignoring type error", zap.String("dir", dir), zap.Error(err))
	}
	return p, nil
}

func (p *Package) typecheck() error {
	config := &types.Config{
		Importer:                 newImporter(p.fset),
		DisableUnusedImportCheck: true,
		Error:                    func(err error) { p.typeErrors = append(p.typeErrors, err) },
	}
	// With Error set, Check keeps going after errors and the package is
	// still populated.
	tpkg, _ := config.Check(p.Name, p.fset, p.files, nil)
	if tpkg == nil {
		return fmt.Errorf("typechecker on %s: no package", p.Dir)
	}
	p.tpkg = tpkg
	return nil
}

type compiledThenSourceImporter struct {
	defaultImporter types.Importer
	sourceImporter  types.Importer
}

func (c compiledThenSourceImporter) Import(path string) (*types.Package, error) {
	p, err := c.defaultImporter.Import(path)
	if err != nil {
		p, err = c.sourceImporter.Import(path)
		if err != nil {
			return nil, fmt.Errorf("importer: %v", err)
		}
	}
	return p, nil
}

func newImporter(fset *token.FileSet) types.Importer {
	return compiledThenSourceImporter{
		importer.Default(),
		importer.ForCompiler(fset, "source", nil),
	}
}
