package codegen

import (
	"bytes"
	"fmt"
	"go/build"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverPackages finds the Go packages under dir that contain a
// //merge:derive directive. If recursive is true, it scans subdirectories
// too, skipping hidden, underscore, vendor and testdata directories below dir.
func DiscoverPackages(dir string, recursive bool, buildTags ...string) ([]*PackageInfo, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}

	ctx := build.Default
	ctx.BuildTags = append(ctx.BuildTags, buildTags...)

	var packages []*PackageInfo
	err = filepath.WalkDir(absDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != absDir {
			base := entry.Name()
			if !recursive || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata" {
				return filepath.SkipDir
			}
		}

		pkg, err := ctx.ImportDir(path, 0)
		if err != nil || len(pkg.GoFiles) == 0 {
			return nil
		}
		files := make([]string, 0, len(pkg.GoFiles))
		for _, f := range pkg.GoFiles {
			files = append(files, filepath.Join(path, f))
		}
		marked, err := hasDirective(files)
		if err != nil {
			return err
		}
		if !marked {
			return nil
		}
		packages = append(packages, &PackageInfo{
			Path:  pkg.ImportPath,
			Dir:   path,
			Name:  pkg.Name,
			Files: files,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, err)
	}
	return packages, nil
}

// hasDirective is a textual prefilter sparing the type checker packages that
// derive nothing.
func hasDirective(files []string) (bool, error) {
	needle := []byte(directivePrefix + "derive")
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return false, fmt.Errorf("failed to read %q: %w", f, err)
		}
		for _, line := range bytes.Split(data, []byte("\n")) {
			if bytes.HasPrefix(bytes.TrimSpace(line), needle) {
				return true, nil
			}
		}
	}
	return false, nil
}
