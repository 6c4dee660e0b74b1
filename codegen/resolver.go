package codegen

import (
	"fmt"
	"go/types"
	"sort"
	"strconv"
	"strings"

	"github.com/TheVova/Merger/debug"
)

// MergePkgPath is the import path of the runtime package generated code
// calls into.
const MergePkgPath = "github.com/TheVova/Merger/merge"

type capKind int

const (
	capScalar capKind = iota
	capString
	capSlice
	capPointer
	capMap
	capMethod
	capFunc
	capParam
	capReplace
)

// capability is the resolved way of merging one type.
type capability struct {
	kind capKind
	typ  types.Type

	// elem is the element capability of pointers and map values
	elem *capability

	// fn, generic and args describe a capFunc: a Merge<T> function taking
	// one capability per type parameter that needs it
	fn      string
	generic bool
	args    []*capability

	// param is the capability variable of a capParam
	param string
}

// Resolver maps types to merge capabilities for one package.
type Resolver struct {
	pkg     *types.Package
	derived map[*types.TypeName]*TypeInfo
	imports *importSet
}

// NewResolver returns a resolver for code generated into pkg, where infos
// are the types being derived.
func NewResolver(pkg *types.Package, infos []*TypeInfo) *Resolver {
	r := &Resolver{
		pkg:     pkg,
		derived: make(map[*types.TypeName]*TypeInfo, len(infos)),
		imports: newImportSet(pkg),
	}
	for _, ti := range infos {
		r.derived[ti.Obj] = ti
	}
	return r
}

// paramScope maps the type parameters of the record being generated to
// their capability variables.
type paramScope map[*types.TypeParam]*TypeParamInfo

func scopeOf(ti *TypeInfo) paramScope {
	if !ti.Generic() {
		return nil
	}
	sc := make(paramScope, len(ti.TypeParams))
	for _, tp := range ti.TypeParams {
		sc[tp.Param] = tp
	}
	return sc
}

// Propagate marks the type parameters of generic records that need a merge
// capability. Generic records may reference each other, so it iterates until
// nothing changes.
func (r *Resolver) Propagate(infos []*TypeInfo) {
	for changed := true; changed; {
		changed = false
		for _, ti := range infos {
			if ti.Kind != KindRecord || !ti.Generic() {
				continue
			}
			before := countNeeds(ti)
			sc := scopeOf(ti)
			for _, f := range ti.Fields {
				if f.Skip || f.Replace {
					continue
				}
				_, _ = r.resolve(f.Type, sc)
			}
			if countNeeds(ti) != before {
				changed = true
			}
		}
	}
	if debug.Resolve() {
		for _, ti := range infos {
			for _, tp := range ti.TypeParams {
				debug.Logf("%s[%s] needs merge: %v\n", ti.Name, tp.Name(), tp.NeedsMerge)
			}
		}
	}
}

func countNeeds(ti *TypeInfo) int {
	n := 0
	for _, tp := range ti.TypeParams {
		if tp.NeedsMerge {
			n++
		}
	}
	return n
}

// resolve finds the capability of t. The returned error wraps
// ErrNoCapability or ErrUnsupported and describes t.
func (r *Resolver) resolve(t types.Type, sc paramScope) (*capability, error) {
	t = types.Unalias(t)

	switch tt := t.(type) {
	case *types.TypeParam:
		tp, ok := sc[tt]
		if !ok {
			return nil, fmt.Errorf("%w: type parameter %s is not in scope", ErrUnsupported, tt)
		}
		tp.NeedsMerge = true
		return &capability{kind: capParam, typ: t, param: tp.CapName()}, nil
	case *types.Named:
		c, ok, err := r.resolveNamed(tt, sc)
		if err != nil || ok {
			return c, err
		}
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Info()&(types.IsNumeric|types.IsBoolean) != 0:
			return &capability{kind: capScalar, typ: t}, nil
		case u.Info()&types.IsString != 0:
			return &capability{kind: capString, typ: t}, nil
		}
		return nil, fmt.Errorf("%w: basic type %s", ErrNoCapability, r.typeString(t))
	case *types.Slice:
		return &capability{kind: capSlice, typ: t}, nil
	case *types.Pointer:
		elem, err := r.resolve(u.Elem(), sc)
		if err != nil {
			return nil, err
		}
		return &capability{kind: capPointer, typ: t, elem: elem}, nil
	case *types.Map:
		elem, err := r.resolve(u.Elem(), sc)
		if err != nil {
			return nil, err
		}
		return &capability{kind: capMap, typ: t, elem: elem}, nil
	case *types.Struct:
		return nil, fmt.Errorf("%w: struct type %s is neither derived nor implements MergeFrom", ErrNoCapability, r.typeString(t))
	case *types.Interface:
		return nil, fmt.Errorf("%w: interface type %s is not a derived union", ErrNoCapability, r.typeString(t))
	case *types.Array:
		return nil, fmt.Errorf("%w: array type %s", ErrUnsupported, r.typeString(t))
	case *types.Chan:
		return nil, fmt.Errorf("%w: channel type %s", ErrUnsupported, r.typeString(t))
	case *types.Signature:
		return nil, fmt.Errorf("%w: function type %s", ErrUnsupported, r.typeString(t))
	default:
		return nil, fmt.Errorf("%w: type %s", ErrUnsupported, r.typeString(t))
	}
}

// resolveNamed handles named types that carry their own capability: types
// derived in this run, types with a MergeFrom method and types whose package
// declares a Merge<Name> function. ok is false when the caller should fall
// back to the underlying type.
func (r *Resolver) resolveNamed(t *types.Named, sc paramScope) (*capability, bool, error) {
	obj := t.Origin().Obj()

	if ti, ok := r.derived[obj]; ok {
		switch {
		case ti.Kind == KindUnion:
			return &capability{kind: capFunc, typ: t, fn: ti.FuncName()}, true, nil
		case !ti.Generic():
			return &capability{kind: capMethod, typ: t}, true, nil
		}
		c := &capability{kind: capFunc, typ: t, fn: ti.FuncName(), generic: true}
		for i, tp := range ti.TypeParams {
			if !tp.NeedsMerge {
				continue
			}
			arg, err := r.resolve(t.TypeArgs().At(i), sc)
			if err != nil {
				return nil, true, err
			}
			c.args = append(c.args, arg)
		}
		return c, true, nil
	}

	if hasMergeFrom(t) {
		return &capability{kind: capMethod, typ: t}, true, nil
	}

	fn, capIdx, ok := lookupMergeFunc(t)
	if !ok {
		return nil, false, nil
	}
	c := &capability{
		kind:    capFunc,
		typ:     t,
		fn:      r.qualifiedFunc(fn),
		generic: t.TypeArgs().Len() > 0,
	}
	for _, idx := range capIdx {
		arg, err := r.resolve(t.TypeArgs().At(idx), sc)
		if err != nil {
			return nil, true, err
		}
		c.args = append(c.args, arg)
	}
	return c, true, nil
}

// hasMergeFrom reports whether *t has a method MergeFrom(t).
func hasMergeFrom(t types.Type) bool {
	ms := types.NewMethodSet(types.NewPointer(t))
	sel := ms.Lookup(nil, "MergeFrom")
	if sel == nil {
		return false
	}
	sig, ok := sel.Type().(*types.Signature)
	if !ok {
		return false
	}
	return sig.Params().Len() == 1 && sig.Results().Len() == 0 && types.Identical(sig.Params().At(0).Type(), t)
}

// lookupMergeFunc finds func Merge<Name>(self *T, other T, caps ...merge.Func[P])
// in the package declaring t. capIdx lists, for each capability parameter,
// the index of the type parameter it is for.
func lookupMergeFunc(t *types.Named) (*types.Func, []int, bool) {
	obj := t.Origin().Obj()
	if obj.Pkg() == nil {
		return nil, nil, false
	}
	fn, ok := obj.Pkg().Scope().Lookup("Merge" + obj.Name()).(*types.Func)
	if !ok {
		return nil, nil, false
	}
	sig := fn.Type().(*types.Signature)
	if sig.Results().Len() != 0 || sig.Params().Len() < 2 || sig.Variadic() {
		return nil, nil, false
	}
	if sig.TypeParams().Len() != t.Origin().TypeParams().Len() {
		return nil, nil, false
	}
	ptr, ok := sig.Params().At(0).Type().(*types.Pointer)
	if !ok || !isNamedOf(ptr.Elem(), obj) || !isNamedOf(sig.Params().At(1).Type(), obj) {
		return nil, nil, false
	}
	var capIdx []int
	for i := 2; i < sig.Params().Len(); i++ {
		idx, ok := capParamIndex(sig.Params().At(i).Type())
		if !ok {
			return nil, nil, false
		}
		capIdx = append(capIdx, idx)
	}
	return fn, capIdx, true
}

func isNamedOf(t types.Type, obj *types.TypeName) bool {
	n, ok := types.Unalias(t).(*types.Named)
	return ok && n.Origin().Obj() == obj
}

// capParamIndex matches merge.Func[P] where P is a type parameter.
func capParamIndex(t types.Type) (int, bool) {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok || n.Obj().Name() != "Func" || n.Obj().Pkg() == nil || n.Obj().Pkg().Path() != MergePkgPath {
		return 0, false
	}
	if n.TypeArgs().Len() != 1 {
		return 0, false
	}
	tp, ok := n.TypeArgs().At(0).(*types.TypeParam)
	if !ok {
		return 0, false
	}
	return tp.Index(), true
}

func (r *Resolver) qualifiedFunc(fn *types.Func) string {
	if fn.Pkg() == r.pkg {
		return fn.Name()
	}
	return r.imports.use(fn.Pkg()) + "." + fn.Name()
}

func (r *Resolver) typeString(t types.Type) string {
	return types.TypeString(t, r.imports.qualifier)
}

func (r *Resolver) mergeRef(name string) string {
	return r.imports.useMerge() + "." + name
}

// stmt renders a statement merging src into the addressable expression dst.
func (r *Resolver) stmt(c *capability, dst, src string) string {
	switch c.kind {
	case capScalar:
		return fmt.Sprintf("%s(&%s, %s)", r.mergeRef("Scalar"), dst, src)
	case capString:
		return fmt.Sprintf("%s(&%s, %s)", r.mergeRef("String"), dst, src)
	case capSlice:
		return fmt.Sprintf("%s(&%s, %s)", r.mergeRef("Slice"), dst, src)
	case capReplace:
		return fmt.Sprintf("%s(&%s, %s)", r.mergeRef("Replace"), dst, src)
	case capPointer:
		return fmt.Sprintf("%s(&%s, %s, %s)", r.mergeRef("Pointer"), dst, src, r.expr(c.elem))
	case capMap:
		return fmt.Sprintf("%s(&%s, %s, %s)", r.mergeRef("Map"), dst, src, r.expr(c.elem))
	case capMethod:
		return fmt.Sprintf("%s.MergeFrom(%s)", dst, src)
	case capParam:
		return fmt.Sprintf("%s(&%s, %s)", c.param, dst, src)
	case capFunc:
		return r.call(c, "&"+dst, src)
	}
	panic("unknown capability kind " + strconv.Itoa(int(c.kind)))
}

// call renders a call of a capFunc with dst already a pointer expression.
func (r *Resolver) call(c *capability, dst, src string) string {
	args := []string{dst, src}
	for _, a := range c.args {
		args = append(args, r.expr(a))
	}
	return fmt.Sprintf("%s(%s)", c.fn, strings.Join(args, ", "))
}

// expr renders c as a merge.Func value.
func (r *Resolver) expr(c *capability) string {
	ts := r.typeString(c.typ)
	switch c.kind {
	case capScalar:
		return fmt.Sprintf("%s[%s]", r.mergeRef("Scalar"), ts)
	case capString:
		return fmt.Sprintf("%s[%s]", r.mergeRef("String"), ts)
	case capSlice:
		return fmt.Sprintf("%s[%s]", r.mergeRef("Slice"), ts)
	case capReplace:
		return fmt.Sprintf("%s[%s]", r.mergeRef("Replace"), ts)
	case capPointer:
		elem := c.typ.Underlying().(*types.Pointer).Elem()
		return fmt.Sprintf("%s[%s](%s)", r.mergeRef("PointerFunc"), r.typeString(elem), r.expr(c.elem))
	case capMap:
		return fmt.Sprintf("%s[%s](%s)", r.mergeRef("MapFunc"), ts, r.expr(c.elem))
	case capMethod:
		return fmt.Sprintf("(*%s).MergeFrom", ts)
	case capParam:
		return c.param
	case capFunc:
		if len(c.args) == 0 {
			if c.generic {
				return c.fn + typeArgList(c.typ.(*types.Named), r.typeString)
			}
			return c.fn
		}
		return fmt.Sprintf("func(self *%s, other %s) { %s }", ts, ts, r.call(c, "self", "other"))
	}
	panic("unknown capability kind " + strconv.Itoa(int(c.kind)))
}

func typeArgList(t *types.Named, ts func(types.Type) string) string {
	args := make([]string, t.TypeArgs().Len())
	for i := range args {
		args[i] = ts(t.TypeArgs().At(i))
	}
	return "[" + strings.Join(args, ", ") + "]"
}

// importSet tracks the packages referenced by generated code and picks
// unique names for them.
type importSet struct {
	pkg    *types.Package
	byPath map[string]string
	used   map[string]bool
}

func newImportSet(pkg *types.Package) *importSet {
	return &importSet{
		pkg:    pkg,
		byPath: make(map[string]string),
		used:   make(map[string]bool),
	}
}

func (s *importSet) qualifier(p *types.Package) string {
	if p == s.pkg {
		return ""
	}
	return s.use(p)
}

func (s *importSet) use(p *types.Package) string {
	return s.usePath(p.Path(), p.Name())
}

func (s *importSet) useMerge() string {
	return s.usePath(MergePkgPath, "merge")
}

func (s *importSet) usePath(path, name string) string {
	if n, ok := s.byPath[path]; ok {
		return n
	}
	n := name
	for i := 2; s.used[n] || s.pkg.Scope().Lookup(n) != nil; i++ {
		n = name + strconv.Itoa(i)
	}
	s.byPath[path] = n
	s.used[n] = true
	return n
}

// specs returns the import specs sorted by path.
func (s *importSet) specs() []string {
	paths := make([]string, 0, len(s.byPath))
	for p := range s.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	res := make([]string, 0, len(paths))
	for _, p := range paths {
		n := s.byPath[p]
		if n == lastElem(p) {
			res = append(res, strconv.Quote(p))
			continue
		}
		res = append(res, n+" "+strconv.Quote(p))
	}
	return res
}

func lastElem(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
