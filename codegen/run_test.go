package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProcessPackage(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("testdata", "shapes"))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "shapes_merge_gen.go")
	config := &CodegenConfig{OutputFile: out}
	pkg := &PackageInfo{Dir: dir, Name: "shapes"}

	res, err := ProcessPackage(NewPackageLoader(), config, pkg)
	if err != nil {
		t.Fatalf("failed to process package: %v", err)
	}
	if res.Output != out {
		t.Errorf("expected output %q, got %q", out, res.Output)
	}
	if len(res.Types) != 2 {
		t.Fatalf("expected 2 derived types, got %d", len(res.Types))
	}
	assertContains(t, string(res.Code),
		"func MergeShape(self *Shape, other Shape) {",
		"func (s *Canvas) MergeFrom(other Canvas) {",
		"merge.Slice(&s.Shapes, other.Shapes)",
		"MergeShape(&s.Main, other.Main)",
		"merge.Pointer(&s.Scale, other.Scale, merge.Scalar[float64])",
	)
	src, err := os.ReadFile(filepath.Join(dir, "shapes.go"))
	if err != nil {
		t.Fatal(err)
	}
	checkGenerated(t, string(src), string(res.Code))

	stale, err := res.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if !stale {
		t.Error("missing output should be stale")
	}
	if err := res.Write(); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	stale, err = res.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if stale {
		t.Error("freshly written output should not be stale")
	}
	if err := os.WriteFile(out, []byte("package shapes\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if stale, _ := res.Stale(); !stale {
		t.Error("modified output should be stale")
	}
}

func TestProcessPackageCallingGeneratedCode(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("testdata", "settings"))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "settings_merge_gen.go")
	pkg := &PackageInfo{Dir: dir, Name: "settings"}
	res, err := ProcessPackage(NewPackageLoader(), &CodegenConfig{OutputFile: out}, pkg)
	if err != nil {
		t.Fatalf("calls to not yet generated methods should not break loading: %v", err)
	}
	assertContains(t, string(res.Code),
		"func (s *Conf) MergeFrom(other Conf) {",
		"merge.Scalar(&s.N, other.N)",
		"merge.Slice(&s.Tags, other.Tags)",
	)

	src, err := os.ReadFile(filepath.Join(dir, "settings.go"))
	if err != nil {
		t.Fatal(err)
	}
	checkGenerated(t, string(src), string(res.Code))
}

func TestLoadIgnoresStaleOutput(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("testdata", "stale"))
	if err != nil {
		t.Fatal(err)
	}
	pkg := &PackageInfo{Dir: dir, Name: "stale"}
	res, err := ProcessPackage(NewPackageLoader(), &CodegenConfig{}, pkg)
	if err != nil {
		t.Fatalf("stale generated code should not break loading: %v", err)
	}
	if res.Output != filepath.Join(dir, "stale_merge_gen.go") {
		t.Errorf("unexpected output path %q", res.Output)
	}
	assertContains(t, string(res.Code), "merge.Scalar(&s.Y, other.Y)")
	assertNotContains(t, string(res.Code), "Removed")

	stale, err := res.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if !stale {
		t.Error("checked in output should be stale")
	}
}

func TestDiff(t *testing.T) {
	if d := Diff("a\nb\n", "a\nb\n"); d != "" {
		t.Errorf("expected no diff, got %q", d)
	}
	d := Diff("a\nb\nc\n", "a\nB\nc\n")
	for _, want := range []string{" a\n", "-b\n", "+B\n", " c\n"} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}
}

func TestDiscoverPackages(t *testing.T) {
	pkgs, err := DiscoverPackages(filepath.Join("testdata", "shapes"), false)
	if err != nil {
		t.Fatalf("failed to discover packages: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Name != "shapes" {
		t.Fatalf("expected only the shapes package, got %d", len(pkgs))
	}
	if len(pkgs[0].Files) != 1 || filepath.Base(pkgs[0].Files[0]) != "shapes.go" {
		t.Errorf("unexpected files %v", pkgs[0].Files)
	}

	// plain has no directive
	pkgs, err = DiscoverPackages("testdata", true)
	if err != nil {
		t.Fatalf("failed to discover packages: %v", err)
	}
	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"settings", "shapes", "stale"}, names); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}

	pkgs, err = DiscoverPackages("testdata", false)
	if err != nil {
		t.Fatalf("failed to discover packages: %v", err)
	}
	if len(pkgs) != 0 {
		t.Errorf("expected no packages without recursion, got %d", len(pkgs))
	}
}
