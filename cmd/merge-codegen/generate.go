package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TheVova/Merger/codegen"
	"github.com/scott-cotton/cli"
)

func (cfg *config) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	return cfg.generate(cc.Out)
}

// generate processes every discovered package, writing generated files or,
// with -check, printing diffs of the stale ones to out.
func (cfg *config) generate(out io.Writer) error {
	fc, err := loadFileConfig(cfg.ConfigFile)
	if err != nil {
		return err
	}
	cfg.apply(fc)

	dir := cfg.Dir
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	pkgs, err := codegen.DiscoverPackages(dir, fc.Recursive, fc.Tags...)
	if err != nil {
		return fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("no packages with //merge:derive types found in %q", dir)
	}

	gen := &codegen.CodegenConfig{
		OutputFile: fc.Output,
		Dir:        dir,
		Recursive:  fc.Recursive,
		BuildTags:  fc.Tags,
		Header:     fc.Header,
	}
	loader := codegen.NewPackageLoader(fc.Tags...)
	colors := cfg.colors(out)

	var stale []string
	for _, pkg := range pkgs {
		theLog.Info("processing package", "package", pkg.Name, "dir", pkg.Dir)
		gen.Package = pkg
		res, err := codegen.ProcessPackage(loader, gen, pkg)
		if err != nil {
			return fmt.Errorf("failed to process package %q: %w", pkg.Path, err)
		}
		if res.Code == nil {
			continue
		}
		if !cfg.Check {
			if err := res.Write(); err != nil {
				return err
			}
			theLog.Info("wrote", "file", res.Output, "types", len(res.Types))
			continue
		}
		isStale, err := res.Stale()
		if err != nil {
			return err
		}
		if !isStale {
			continue
		}
		stale = append(stale, res.Output)
		if err := writeDiff(out, colors, res); err != nil {
			return err
		}
	}

	if len(stale) > 0 {
		return fmt.Errorf("%w: %s", errStale, strings.Join(stale, ", "))
	}
	return nil
}

func writeDiff(out io.Writer, colors *diffColors, res *codegen.Result) error {
	old, err := os.ReadFile(res.Output)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %q: %w", res.Output, err)
	}
	fmt.Fprintln(out, colors.title("--- "+res.Output))
	fmt.Fprintln(out, colors.title("+++ "+res.Output+" (generated)"))
	sc := bufio.NewScanner(strings.NewReader(codegen.Diff(string(old), string(res.Code))))
	for sc.Scan() {
		fmt.Fprintln(out, colors.line(sc.Text()))
	}
	return sc.Err()
}
