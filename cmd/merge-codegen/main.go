// Command merge-codegen generates merge implementations for types marked
// with //merge:derive. It is meant to run from go generate:
//
//	//go:generate merge-codegen
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &config{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "merge-codegen").
		WithSynopsis("merge-codegen [opts]").
		WithDescription("Generate MergeFrom methods and Merge functions for types marked with //merge:derive.").
		WithOpts(opts...).
		WithRun(cfg.run)
}
