package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Result is the outcome of processing one package.
type Result struct {
	// Package is the processed package
	Package *PackageInfo

	// Output is the path of the generated file
	Output string

	// Types holds the derived types, empty when the package has none
	Types []*TypeInfo

	// Code is the generated source, nil when there is nothing to derive
	Code []byte
}

// Stale reports whether the file at Output differs from Code. A missing file
// is stale when there is code to write.
func (r *Result) Stale() (bool, error) {
	old, err := os.ReadFile(r.Output)
	if errors.Is(err, os.ErrNotExist) {
		return r.Code != nil, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", r.Output, err)
	}
	return !bytes.Equal(old, r.Code), nil
}

// Write writes Code to Output. It does nothing without code.
func (r *Result) Write() error {
	if r.Code == nil {
		return nil
	}
	if err := os.WriteFile(r.Output, r.Code, 0644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", r.Output, err)
	}
	return nil
}

// ProcessPackage loads pkg, extracts its derivable types and generates their
// merge code.
func ProcessPackage(loader *PackageLoader, config *CodegenConfig, pkg *PackageInfo) (*Result, error) {
	res := &Result{
		Package: pkg,
		Output:  config.OutputPath(pkg),
	}
	loaded, err := loader.LoadPackage(pkg.Dir, pkg.Name, res.Output)
	if err != nil {
		return nil, err
	}
	infos, err := ExtractTypes(loaded.Fset, loaded.Files, loaded.Types)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return res, nil
	}
	res.Types = infos
	code, err := Generate(loaded.Types, infos, config)
	if err != nil {
		return nil, err
	}
	res.Code = code
	return res, nil
}

// Diff renders a line diff from old to new with "-" and "+" prefixes and
// returns "" when they are equal.
func Diff(old, new string) string {
	if old == new {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String()
}
