package codegen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/TheVova/Merger/debug"
)

const directivePrefix = "//merge:"

// Directive is a parsed //merge: comment.
type Directive struct {
	Derive bool
	Strict bool
}

// ParseDirective looks for a //merge:derive directive in a doc comment. It
// returns nil when the comment group has none.
func ParseDirective(doc *ast.CommentGroup) (*Directive, error) {
	if doc == nil {
		return nil, nil
	}
	var d *Directive
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		if len(fields) == 0 || fields[0] != "derive" {
			return nil, fmt.Errorf("%w: unknown directive %q", ErrDirective, c.Text)
		}
		if d != nil {
			return nil, fmt.Errorf("%w: duplicate directive %q", ErrDirective, c.Text)
		}
		d = &Directive{Derive: true}
		for _, opt := range fields[1:] {
			switch opt {
			case "strict":
				d.Strict = true
			default:
				return nil, fmt.Errorf("%w: unknown option %q in %q", ErrDirective, opt, c.Text)
			}
		}
	}
	return d, nil
}

// ExtractTypes finds the types marked with //merge:derive in files and
// describes their shape. Diagnostics for every offending type are joined in
// the returned error.
func ExtractTypes(fset *token.FileSet, files []*ast.File, pkg *types.Package) ([]*TypeInfo, error) {
	var infos []*TypeInfo
	var errs []error

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec := spec.(*ast.TypeSpec)
				doc := typeSpec.Doc
				if doc == nil && len(genDecl.Specs) == 1 {
					doc = genDecl.Doc
				}
				pos := fset.Position(typeSpec.Pos())
				dir, err := ParseDirective(doc)
				if err != nil {
					errs = append(errs, &Error{Pos: pos, Type: typeSpec.Name.Name, Err: err})
					continue
				}
				if dir == nil {
					continue
				}
				info, err := extractType(fset, pkg, typeSpec, dir)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if debug.Extract() {
					debug.Logf("extracted %s %s: %d fields, %d variants\n", info.Kind, info.Name, len(info.Fields), len(info.Variants))
				}
				infos = append(infos, info)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return infos, nil
}

func extractType(fset *token.FileSet, pkg *types.Package, spec *ast.TypeSpec, dir *Directive) (*TypeInfo, error) {
	name := spec.Name.Name
	pos := fset.Position(spec.Pos())

	if spec.Assign.IsValid() {
		return nil, newError(pos, name, "", ErrUnsupported, "type aliases cannot be derived")
	}
	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return nil, newError(pos, name, "", ErrUnsupported, "not a package-level type")
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, newError(pos, name, "", ErrUnsupported, "not a named type")
	}

	info := &TypeInfo{
		Name: name,
		Obj:  obj,
		Pos:  pos,
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		if dir.Strict {
			return nil, newError(pos, name, "", ErrDirective, "strict applies to unions only")
		}
		info.Kind = KindRecord
		for i := 0; i < named.TypeParams().Len(); i++ {
			info.TypeParams = append(info.TypeParams, &TypeParamInfo{Param: named.TypeParams().At(i)})
		}
		fields, err := extractFields(fset, name, u)
		if err != nil {
			return nil, err
		}
		info.Fields = fields
	case *types.Interface:
		info.Kind = KindUnion
		info.Strict = dir.Strict
		if named.TypeParams().Len() > 0 {
			return nil, newError(pos, name, "", ErrUnsupported, "generic unions cannot be derived")
		}
		if !sealed(u) {
			return nil, newError(pos, name, "", ErrUnsupported, "a union must be a sealed interface with at least one unexported method")
		}
		variants, err := extractVariants(fset, pkg, named, u)
		if err != nil {
			return nil, err
		}
		info.Variants = variants
	default:
		return nil, newError(pos, name, "", ErrUnsupported, "only structs and interfaces can be derived, got %s", u)
	}
	return info, nil
}

// sealed reports whether iface has an unexported method, so that only types
// of its own package can implement it.
func sealed(iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if !iface.Method(i).Exported() {
			return true
		}
	}
	return false
}

func extractFields(fset *token.FileSet, typeName string, st *types.Struct) ([]*FieldInfo, error) {
	var fields []*FieldInfo
	var errs []error
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Name() == "_" {
			continue
		}
		pos := fset.Position(f.Pos())
		skip, replace, err := ParseMergeTag(st.Tag(i))
		if err != nil {
			errs = append(errs, newError(pos, typeName, "field "+f.Name(), ErrDirective, "%v", err))
			continue
		}
		fields = append(fields, &FieldInfo{
			Name:     f.Name(),
			Type:     f.Type(),
			Embedded: f.Embedded(),
			Skip:     skip,
			Replace:  replace,
			Pos:      pos,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return fields, nil
}

// extractVariants collects the package's named types implementing iface,
// either by value or by pointer, in declaration order.
func extractVariants(fset *token.FileSet, pkg *types.Package, union *types.Named, iface *types.Interface) ([]*VariantInfo, error) {
	unionName := union.Obj().Name()
	var variants []*VariantInfo
	var errs []error

	scope := pkg.Scope()
	for _, n := range scope.Names() {
		obj, ok := scope.Lookup(n).(*types.TypeName)
		if !ok || obj.IsAlias() || obj == union.Obj() {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		if _, isIface := named.Underlying().(*types.Interface); isIface {
			continue
		}

		v := &VariantInfo{
			Name: obj.Name(),
			Type: named,
			Pos:  fset.Position(obj.Pos()),
		}
		switch {
		case types.Implements(named, iface):
		case types.Implements(types.NewPointer(named), iface):
			v.Pointer = true
		default:
			continue
		}

		if st, ok := named.Underlying().(*types.Struct); ok {
			switch st.NumFields() {
			case 0:
				v.Unit = true
			case 1:
				f := st.Field(0)
				v.Field = &FieldInfo{
					Name:     f.Name(),
					Type:     f.Type(),
					Embedded: f.Embedded(),
					Pos:      fset.Position(f.Pos()),
				}
			default:
				errs = append(errs, newError(v.Pos, unionName, "variant "+v.Name, ErrUnsupported,
					"variant payloads must have a single field, %s has %d", v.Name, st.NumFields()))
				continue
			}
		}
		variants = append(variants, v)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(variants) == 0 {
		return nil, newError(fset.Position(union.Obj().Pos()), unionName, "", ErrUnsupported, "no variants implement the interface")
	}
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Type.Obj().Pos() < variants[j].Type.Obj().Pos()
	})
	return variants, nil
}
