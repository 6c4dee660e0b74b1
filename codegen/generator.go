package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/types"
	"strings"

	"github.com/TheVova/Merger/debug"
	"golang.org/x/tools/imports"
)

// GeneratedHeader starts every generated file.
const GeneratedHeader = "// Code generated by merge-codegen. DO NOT EDIT."

// Generate emits the merge implementations of infos, which must all belong to
// pkg, as a formatted Go source file. No code is returned when any type
// cannot be derived; the error then joins one *Error per offending field or
// variant.
func Generate(pkg *types.Package, infos []*TypeInfo, config *CodegenConfig) ([]byte, error) {
	r := NewResolver(pkg, infos)
	r.Propagate(infos)

	var body bytes.Buffer
	var errs []error
	for _, ti := range infos {
		var err error
		switch ti.Kind {
		case KindRecord:
			if ti.Generic() {
				err = r.genGenericRecord(&body, ti)
			} else {
				err = r.genRecord(&body, ti)
			}
		case KindUnion:
			err = r.genUnion(&body, ti)
		default:
			err = newError(ti.Pos, ti.Name, "", ErrUnsupported, "unknown kind %s", ti.Kind)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var out bytes.Buffer
	out.WriteString(GeneratedHeader + "\n")
	if config != nil && config.Header != "" {
		out.WriteString("\n")
		for _, line := range strings.Split(strings.TrimSpace(config.Header), "\n") {
			out.WriteString("// " + line + "\n")
		}
	}
	fmt.Fprintf(&out, "\npackage %s\n\n", pkg.Name())
	if specs := r.imports.specs(); len(specs) > 0 {
		out.WriteString("import (\n")
		for _, s := range specs {
			out.WriteString("\t" + s + "\n")
		}
		out.WriteString(")\n\n")
	}
	out.Write(body.Bytes())

	if debug.Generate() {
		debug.Logf("generated source for %s:\n%s\n", pkg.Path(), out.String())
	}

	formatted, err := imports.Process(pkg.Name()+"_merge_gen.go", out.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code for %q: %w", pkg.Path(), err)
	}
	return formatted, nil
}

// fieldSteps renders one merge statement per field, in declaration order,
// with dst and src as the receiver and argument expressions.
func (r *Resolver) fieldSteps(ti *TypeInfo, dst, src string) ([]string, error) {
	sc := scopeOf(ti)
	var steps []string
	var errs []error
	for _, f := range ti.Fields {
		if f.Skip {
			continue
		}
		d, s := dst+"."+f.Name, src+"."+f.Name
		if f.Replace {
			steps = append(steps, r.stmt(&capability{kind: capReplace, typ: f.Type}, d, s))
			continue
		}
		c, err := r.resolve(f.Type, sc)
		if err != nil {
			errs = append(errs, &Error{Pos: f.Pos, Type: ti.Name, Member: "field " + f.Name, Err: err})
			continue
		}
		steps = append(steps, r.stmt(c, d, s))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return steps, nil
}

func (r *Resolver) genRecord(w *bytes.Buffer, ti *TypeInfo) error {
	steps, err := r.fieldSteps(ti, "s", "other")
	if err != nil {
		return err
	}
	funcType := r.imports.useMerge() + ".Func"

	fmt.Fprintf(w, "// MergeFrom merges other into s field by field.\n")
	fmt.Fprintf(w, "func (s *%s) MergeFrom(other %s) {\n", ti.Name, ti.Name)
	for _, step := range steps {
		fmt.Fprintf(w, "\t%s\n", step)
	}
	fmt.Fprintf(w, "}\n\n")

	fmt.Fprintf(w, "// MergeWith merges other into s with f instead of MergeFrom.\n")
	fmt.Fprintf(w, "func (s *%s) MergeWith(other %s, f %s[%s]) {\n", ti.Name, ti.Name, funcType, ti.Name)
	fmt.Fprintf(w, "\tf(s, other)\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

func (r *Resolver) genGenericRecord(w *bytes.Buffer, ti *TypeInfo) error {
	steps, err := r.fieldSteps(ti, "self", "other")
	if err != nil {
		return err
	}

	var decl, names []string
	for _, tp := range ti.TypeParams {
		decl = append(decl, tp.Name()+" "+r.typeString(tp.Param.Constraint()))
		names = append(names, tp.Name())
	}
	inst := ti.Name + "[" + strings.Join(names, ", ") + "]"

	params := []string{"self *" + inst, "other " + inst}
	for _, tp := range ti.TypeParams {
		if tp.NeedsMerge {
			params = append(params, fmt.Sprintf("%s %s.Func[%s]", tp.CapName(), r.imports.useMerge(), tp.Name()))
		}
	}

	fmt.Fprintf(w, "// %s merges other into self field by field.\n", ti.FuncName())
	fmt.Fprintf(w, "func %s[%s](%s) {\n", ti.FuncName(), strings.Join(decl, ", "), strings.Join(params, ", "))
	for _, step := range steps {
		fmt.Fprintf(w, "\t%s\n", step)
	}
	fmt.Fprintf(w, "}\n\n")
	return nil
}

func (r *Resolver) genUnion(w *bytes.Buffer, ti *TypeInfo) error {
	type clause struct {
		typ  string
		body []string
	}
	var clauses []clause
	var errs []error
	usesPayload := false

	for _, v := range ti.Variants {
		typ := v.Name
		if v.Pointer {
			typ = "*" + v.Name
		}
		var body []string
		switch {
		case v.Unit:
			body = []string{
				fmt.Sprintf("if _, ok := (*self).(%s); ok {", typ),
				"\treturn",
				"}",
			}
		default:
			var payloadType types.Type = v.Type
			dst, src := "s", "o"
			member := "variant " + v.Name
			switch {
			case v.Field != nil:
				payloadType = v.Field.Type
				dst, src = "s."+v.Field.Name, "o."+v.Field.Name
				member += " field " + v.Field.Name
			case v.Pointer:
				dst, src = "(*s)", "*o"
			}
			c, err := r.resolve(payloadType, nil)
			if err != nil {
				errs = append(errs, &Error{Pos: v.Pos, Type: ti.Name, Member: member, Err: err})
				continue
			}
			usesPayload = true
			cond := "ok"
			if v.Pointer {
				cond = "ok && s != nil && o != nil"
			}
			body = append(body, fmt.Sprintf("if s, ok := (*self).(%s); %s {", typ, cond))
			body = append(body, "\t"+r.stmt(c, dst, src))
			if !v.Pointer {
				body = append(body, "\t*self = s")
			}
			body = append(body, "\treturn", "}")
		}
		clauses = append(clauses, clause{typ: typ, body: body})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	fmt.Fprintf(w, "// %s merges other into self. Matching variants merge their payloads;\n", ti.FuncName())
	fmt.Fprintf(w, "// otherwise self is replaced by a copy of other. A nil other changes nothing.\n")
	fmt.Fprintf(w, "func %s(self *%s, other %s) {\n", ti.FuncName(), ti.Name, ti.Name)
	fmt.Fprintf(w, "\tif other == nil {\n\t\treturn\n\t}\n")
	if usesPayload {
		fmt.Fprintf(w, "\tswitch o := other.(type) {\n")
	} else {
		fmt.Fprintf(w, "\tswitch other.(type) {\n")
	}
	for _, cl := range clauses {
		fmt.Fprintf(w, "\tcase %s:\n", cl.typ)
		for _, line := range cl.body {
			fmt.Fprintf(w, "\t\t%s\n", line)
		}
	}
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\t*self = %s.Clone(other)\n", r.imports.useMerge())
	fmt.Fprintf(w, "}\n\n")

	if ti.Strict {
		fmt.Fprintf(w, "// %sStrict is %s but returns a *merge.VariantMismatchError instead of\n", ti.FuncName(), ti.FuncName())
		fmt.Fprintf(w, "// replacing self when both sides hold different variants.\n")
		fmt.Fprintf(w, "func %sStrict(self *%s, other %s) error {\n", ti.FuncName(), ti.Name, ti.Name)
		fmt.Fprintf(w, "\tif err := %s.CheckVariant(%q, *self, other); err != nil {\n", r.imports.useMerge(), ti.Name)
		fmt.Fprintf(w, "\t\treturn err\n\t}\n")
		fmt.Fprintf(w, "\t%s(self, other)\n", ti.FuncName())
		fmt.Fprintf(w, "\treturn nil\n")
		fmt.Fprintf(w, "}\n\n")
	}
	return nil
}
