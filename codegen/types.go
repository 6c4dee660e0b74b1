package codegen

import (
	"go/token"
	"go/types"
	"path/filepath"
)

// Kind is the shape of a type marked for derivation.
type Kind int

const (
	KindUnknown Kind = iota
	// KindRecord is a struct merged field by field.
	KindRecord
	// KindUnion is a sealed interface whose implementations are its variants.
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// TypeInfo describes a type marked with a //merge:derive directive.
type TypeInfo struct {
	// Name is the type name
	Name string

	// Kind is record or union
	Kind Kind

	// Strict requests an additional error-returning union merge
	Strict bool

	// Obj is the declared type name
	Obj *types.TypeName

	// TypeParams holds the type parameters of a generic record, in order
	TypeParams []*TypeParamInfo

	// Fields holds record fields in declaration order
	Fields []*FieldInfo

	// Variants holds union variants in declaration order
	Variants []*VariantInfo

	// Pos is the position of the type declaration
	Pos token.Position
}

// Generic reports whether the type has type parameters.
func (ti *TypeInfo) Generic() bool {
	return len(ti.TypeParams) > 0
}

// FuncName is the name of the generated function for unions and generic
// records.
func (ti *TypeInfo) FuncName() string {
	return "Merge" + ti.Name
}

// TypeParamInfo describes a type parameter of a generic record.
type TypeParamInfo struct {
	// Param is the declared type parameter
	Param *types.TypeParam

	// NeedsMerge is set when a field merge reaches the parameter, in which
	// case the generated function takes a capability for it
	NeedsMerge bool
}

// Name returns the declared parameter name.
func (tp *TypeParamInfo) Name() string {
	return tp.Param.Obj().Name()
}

// CapName is the name of the capability parameter of the generated function.
func (tp *TypeParamInfo) CapName() string {
	return "merge" + tp.Name()
}

// FieldInfo describes a record field or a variant payload field.
type FieldInfo struct {
	// Name is the field name; for embedded fields the type name
	Name string

	// Type is the field type
	Type types.Type

	// Embedded is set for embedded fields
	Embedded bool

	// Skip excludes the field from merging (`merge:"-"`)
	Skip bool

	// Replace merges the field by replacement whatever its type
	// (`merge:"replace"`)
	Replace bool

	// Pos is the position of the field declaration
	Pos token.Position
}

// VariantInfo describes one variant of a union.
type VariantInfo struct {
	// Name is the variant type name
	Name string

	// Type is the variant's named type
	Type *types.Named

	// Pointer is set when only *Type implements the union interface
	Pointer bool

	// Unit is set for variants without payload (empty structs)
	Unit bool

	// Field is the payload field of single-field struct variants; nil when
	// the variant value itself is the payload
	Field *FieldInfo

	// Pos is the position of the variant declaration
	Pos token.Position
}

// PackageInfo holds information about a Go package
type PackageInfo struct {
	// Path is the package import path (e.g., "github.com/user/project/models")
	Path string

	// Dir is the directory containing the package
	Dir string

	// Name is the package name (e.g., "models")
	Name string

	// Files contains paths to all .go files in the package
	Files []string
}

// CodegenConfig holds configuration for code generation
type CodegenConfig struct {
	// OutputFile is the output file for generated Go code (default: <package>_merge_gen.go)
	OutputFile string

	// Dir is the directory to scan for Go files (default: current directory)
	Dir string

	// Recursive indicates whether to scan subdirectories recursively
	Recursive bool

	// BuildTags are passed to the package loader
	BuildTags []string

	// Header is an optional comment emitted after the generated-code line
	Header string

	// Package is the current package being processed
	Package *PackageInfo
}

// OutputPath returns the output file for pkg.
func (c *CodegenConfig) OutputPath(pkg *PackageInfo) string {
	if c.OutputFile != "" {
		if filepath.IsAbs(c.OutputFile) {
			return c.OutputFile
		}
		return filepath.Join(pkg.Dir, c.OutputFile)
	}
	return filepath.Join(pkg.Dir, pkg.Name+"_merge_gen.go")
}
