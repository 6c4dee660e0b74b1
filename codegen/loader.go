package codegen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"sync"

	"github.com/TheVova/Merger/debug"
	"golang.org/x/tools/go/packages"
)

// LoadedPackage is a type-checked package ready for extraction.
type LoadedPackage struct {
	Fset  *token.FileSet
	Files []*ast.File
	Types *types.Package
}

// PackageLoader loads and caches Go packages.
type PackageLoader struct {
	cache     map[string]*LoadedPackage
	mu        sync.RWMutex
	buildTags []string
}

// NewPackageLoader creates a new PackageLoader.
func NewPackageLoader(buildTags ...string) *PackageLoader {
	return &PackageLoader{
		cache:     make(map[string]*LoadedPackage),
		buildTags: buildTags,
	}
}

// LoadPackage loads the package in dir. The file at output, if any, is
// replaced by an empty file of the same package so that previously generated
// code does not take part in type checking. Type errors are tolerated; list
// and parse errors are not.
func (l *PackageLoader) LoadPackage(dir, pkgName, output string) (*LoadedPackage, error) {
	l.mu.RLock()
	if pkg, ok := l.cache[dir]; ok {
		l.mu.RUnlock()
		return pkg, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Check again in case it was loaded while we were waiting for the lock
	if pkg, ok := l.cache[dir]; ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  dir,
	}
	if len(l.buildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.buildTags, ",")}
	}
	if output != "" {
		cfg.Overlay = map[string][]byte{
			output: []byte("package " + pkgName + "\n"),
		}
	}
	if debug.Load() {
		debug.Logf("loading package in %s (overlay %q)\n", dir, output)
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %q: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package found in %q", dir)
	}

	pkg := pkgs[0]
	// Calls into merge code that is not generated yet are type errors.
	var fatal []error
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError {
			if debug.Load() {
				debug.Logf("ignoring type error in %s: %v\n", pkg.PkgPath, e)
			}
			continue
		}
		fatal = append(fatal, e)
	}
	if len(fatal) > 0 {
		return nil, fmt.Errorf("failed to load package %q: %w", pkg.PkgPath, errors.Join(fatal...))
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("package %q has no type information", pkg.PkgPath)
	}

	loaded := &LoadedPackage{
		Fset:  pkg.Fset,
		Files: pkg.Syntax,
		Types: pkg.Types,
	}
	l.cache[dir] = loaded
	return loaded, nil
}
