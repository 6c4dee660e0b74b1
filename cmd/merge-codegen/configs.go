package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TheVova/Merger/merge"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type config struct {
	*cli.Command

	OutputFile string `cli:"name=o desc='output file for generated Go code (default: <package>_merge_gen.go)'"`
	Dir        string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive  bool   `cli:"name=recursive aliases=r desc='scan subdirectories recursively'"`
	Check      bool   `cli:"name=check desc='fail with a diff when generated files are stale instead of writing them'"`
	ConfigFile string `cli:"name=config desc='YAML file with defaults for output, recursive, header and tags'"`
	Color      bool   `cli:"name=color desc='color diffs even when not writing to a terminal'"`
	Tags       string `cli:"name=tags desc='comma separated build tags used when loading packages'"`
}

// fileConfig is the content of the -config file. Flags override it.
type fileConfig struct {
	Output    string   `yaml:"output"`
	Recursive bool     `yaml:"recursive"`
	Header    string   `yaml:"header"`
	Tags      []string `yaml:"tags"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return fc, nil
}

// apply folds the flags into fc. Set flags win; build tags accumulate.
func (cfg *config) apply(fc *fileConfig) {
	if cfg.Recursive {
		fc.Recursive = true
	}
	if cfg.OutputFile != "" {
		fc.Output = cfg.OutputFile
	}
	if cfg.Tags != "" {
		merge.Slice(&fc.Tags, strings.Split(cfg.Tags, ","))
	}
}

var errStale = errors.New("generated code is stale")

type diffColors struct {
	del, ins, hunk func(a ...any) string
}

func (cfg *config) colors(w io.Writer) *diffColors {
	enabled := cfg.Color
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		enabled = true
	}
	if !enabled {
		return nil
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return &diffColors{
		del:  mk(color.FgRed),
		ins:  mk(color.FgGreen),
		hunk: mk(color.FgCyan, color.Bold),
	}
}

func (c *diffColors) line(s string) string {
	if c == nil || s == "" {
		return s
	}
	switch s[0] {
	case '-':
		return c.del(s)
	case '+':
		return c.ins(s)
	}
	return s
}

func (c *diffColors) title(s string) string {
	if c == nil {
		return s
	}
	return c.hunk(s)
}
