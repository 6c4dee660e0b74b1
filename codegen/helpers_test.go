package codegen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

// checkSource parses and type-checks src as the single file of package
// "test". Imports are resolved from source.
func checkSource(t *testing.T, src string) (*token.FileSet, []*ast.File, *types.Package) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("example.com/test", fset, []*ast.File{file}, nil)
	if err != nil {
		t.Fatalf("failed to type-check: %v", err)
	}
	return fset, []*ast.File{file}, pkg
}

func extract(t *testing.T, src string) (*types.Package, []*TypeInfo) {
	t.Helper()
	fset, files, pkg := checkSource(t, src)
	infos, err := ExtractTypes(fset, files, pkg)
	if err != nil {
		t.Fatalf("failed to extract types: %v", err)
	}
	return pkg, infos
}

// generate derives merge code for src and type-checks it together with src.
func generate(t *testing.T, src string) string {
	t.Helper()
	pkg, infos := extract(t, src)
	code, err := Generate(pkg, infos, nil)
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}
	checkGenerated(t, src, string(code))
	return string(code)
}

// checkGenerated type-checks src and the generated code as one package.
func checkGenerated(t *testing.T, src, code string) {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for _, f := range []struct{ name, src string }{
		{"test.go", src},
		{"test_merge_gen.go", code},
	} {
		file, err := parser.ParseFile(fset, f.name, f.src, parser.ParseComments)
		if err != nil {
			t.Fatalf("failed to parse %s: %v\n%s", f.name, err, f.src)
		}
		files = append(files, file)
	}
	var errs []string
	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			errs = append(errs, err.Error())
		},
	}
	conf.Check("example.com/test", fset, files, nil)
	if len(errs) > 0 {
		t.Fatalf("generated code does not type-check:\n%s\n%s", strings.Join(errs, "\n"), code)
	}
}

func assertContains(t *testing.T, code string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q\n%s", want, code)
		}
	}
}

func assertNotContains(t *testing.T, code string, unwanted ...string) {
	t.Helper()
	for _, s := range unwanted {
		if strings.Contains(code, s) {
			t.Errorf("generated code unexpectedly contains %q\n%s", s, code)
		}
	}
}
