// Package debug holds the tracing switches of the generator. Each switch is
// read once from the environment, for example
//
//	MERGE_DEBUG_RESOLVE=1 go generate ./...
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Load     bool
	Extract  bool
	Resolve  bool
	Generate bool
}

var d *debug

func init() {
	d = &debug{
		Load:     boolEnv("MERGE_DEBUG_LOAD"),
		Extract:  boolEnv("MERGE_DEBUG_EXTRACT"),
		Resolve:  boolEnv("MERGE_DEBUG_RESOLVE"),
		Generate: boolEnv("MERGE_DEBUG_GEN"),
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Load traces package loading.
func Load() bool {
	return d.Load
}

// Extract traces the types found for derivation.
func Extract() bool {
	return d.Extract
}

// Resolve traces generic capability propagation.
func Resolve() bool {
	return d.Resolve
}

// Generate dumps generated source before formatting.
func Generate() bool {
	return d.Generate
}

// Logf writes a trace line to stderr. Maps and slices of any are rendered as
// indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch a := args[i].(type) {
		case map[string]any, []any:
			js, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(js)
		case fmt.Stringer:
			args[i] = a.String()
		}
	}
	fmt.Fprintf(os.Stderr, "merge-codegen: "+msg, args...)
}
