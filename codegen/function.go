package codegen

import (
	"fmt"
	"strings"

	"github.com/rubiojr/lvgen/bindings"
	"github.com/rubiojr/lvgen/goir"
)

// Function is one foreign function. It is built from a single
// RawSignature and never modified afterwards.
type Function struct {
	Name     string
	Args     []Argument
	Ret      *Type // nil for void
	Variadic bool
	Doc      []string

	target *Target
}

// NewFunction creates a function against the default target.
func NewFunction(name string, args []Argument, ret *Type) *Function {
	return defaultTarget.newFunction(name, args, ret)
}

func (t *Target) newFunction(name string, args []Argument, ret *Type) *Function {
	fn := &Function{Name: name, Ret: ret, target: t}
	for i, a := range args {
		a.index = i
		a.target = t
		fn.Args = append(fn.Args, a)
	}
	return fn
}

// Function classifies a parsed declaration.
func (t *Target) Function(sig bindings.RawSignature) *Function {
	args := make([]Argument, len(sig.Params))
	for i, p := range sig.Params {
		args[i] = Argument{name: p.Name, typ: t.Classify(p.Type)}
	}
	var ret *Type
	if sig.Return != "" {
		r := t.Classify(sig.Return)
		ret = &r
	}
	fn := t.newFunction(sig.Name, args, ret)
	fn.Variadic = sig.Variadic
	fn.Doc = sig.Doc
	return fn
}

// IsMethod reports whether the first argument is an object or style
// handle, which then acts as the receiver.
func (f *Function) IsMethod() bool {
	return len(f.Args) > 0 && f.Args[0].typ.IsHandle()
}

// GoName is the name of the generated wrapper.
func (f *Function) GoName() string { return f.target.GoName(f.Name) }

// Code emits the wrapper for f as a member of w (which may be nil). The
// function is either emitted completely or rejected with a SkipReason.
func (f *Function) Code(w *Widget) (goir.GoFuncDecl, error) {
	if f.target.Denied(f.Name) {
		return goir.GoFuncDecl{}, skip(Blacklisted, f.Name)
	}
	if w != nil && w.Name != "obj" && f.Name == f.target.Prefix+w.Name+"_create" {
		return goir.GoFuncDecl{}, skip(Constructor, f.Name)
	}
	if f.Variadic {
		return goir.GoFuncDecl{}, skip(Variadic, f.Name)
	}
	if f.Ret != nil {
		if f.Ret.IsArray() {
			return goir.GoFuncDecl{}, skip(ReturnArray, f.Ret.Literal)
		}
		if !f.Ret.Supported() {
			return goir.GoFuncDecl{}, skip(UnsupportedType, f.Ret.Literal)
		}
	}

	args, used := f.idents()
	params := make([]goir.GoParam, len(args))
	for i := 1; i < len(args); i++ {
		p, err := args[i].Decl()
		if err != nil {
			return goir.GoFuncDecl{}, err
		}
		params[i] = p
	}
	if len(args) > 0 {
		recv, err := args[0].Decl()
		if err != nil {
			return goir.GoFuncDecl{}, err
		}
		params[0] = recv
	}

	decl := goir.GoFuncDecl{
		Doc:    f.doc(),
		Name:   f.GoName(),
		Params: params,
	}

	var pre, post []goir.GoStmt
	callArgs := make([]goir.GoExpr, len(args))
	for i, a := range args {
		pre = append(pre, a.PreCall()...)
		post = append(post, a.PostCall()...)
		callArgs[i] = a.CallExpr()
	}

	decl.Body = append(decl.Body, pre...)
	if len(post) > 0 {
		decl.Body = append(decl.Body, goir.GoDeferStmt{Body: post})
	}

	call := goir.GoCallExpr{Func: "C." + f.Name, Args: callArgs}
	ret, body := f.returnCode(call, unique("pointer", used))
	decl.Return = ret
	decl.Body = append(decl.Body, body...)
	return decl, nil
}

// idents returns copies of the arguments with distinct Go names for
// every parameter and string temporary, plus the set of names taken.
// Parameters are named first so a temporary never renames a parameter.
func (f *Function) idents() ([]Argument, map[string]bool) {
	used := map[string]bool{}
	args := make([]Argument, len(f.Args))
	for i, a := range f.Args {
		a.ident = unique(goIdent(a.name, a.index), used)
		used[a.ident] = true
		args[i] = a
	}
	for i := range args {
		if args[i].typ.kind == kindString {
			args[i].raw = unique(args[i].ident+"Raw", used)
			used[args[i].raw] = true
		}
	}
	return args, used
}

// returnCode converts the raw result of call into the wrapper's result.
// Handles, strings and payload pointers go through a temporary.
func (f *Function) returnCode(call goir.GoCallExpr, tmp string) (string, []goir.GoStmt) {
	if f.Ret == nil {
		return "", []goir.GoStmt{goir.GoExprStmt{Expr: call}}
	}
	r := *f.Ret
	ptr := goir.GoIdentExpr{Name: tmp}
	through := func(goType string, conv goir.GoExpr) (string, []goir.GoStmt) {
		return goType, []goir.GoStmt{
			goir.GoAssignStmt{Target: tmp, Op: ":=", Value: call},
			goir.GoReturnStmt{Value: conv},
		}
	}

	switch {
	case r.IsObject():
		return through("*"+f.target.Handle, goir.GoCallExpr{Func: "Try" + f.target.Handle + "FromPtr", Args: []goir.GoExpr{ptr}})
	case r.IsStyle():
		return through("*"+f.target.StyleHandle, goir.GoCallExpr{Func: "Try" + f.target.StyleHandle + "FromPtr", Args: []goir.GoExpr{ptr}})
	case r.kind == kindString:
		return through("string", goir.GoCallExpr{Func: "C.GoString", Args: []goir.GoExpr{ptr}})
	case r.IsVoidPtr():
		return through("unsafe.Pointer", goir.GoCastExpr{Type: "unsafe.Pointer", Value: ptr})
	case r.isPrimitive():
		return r.GoType(), []goir.GoStmt{goir.GoReturnStmt{Value: goir.GoCastExpr{Type: r.GoType(), Value: call}}}
	}
	// named values and generic pointers; a NULL pointer comes back as nil
	return r.GoType(), []goir.GoStmt{goir.GoReturnStmt{Value: call}}
}

func (f *Function) doc() []string {
	lines := []string{fmt.Sprintf("%s wraps %s.", f.GoName(), f.Name)}
	var body []string
	for _, d := range f.Doc {
		body = append(body, strings.Split(d, "\n")...)
	}
	if len(body) > 0 {
		lines = append(lines, "")
		for _, l := range body {
			lines = append(lines, strings.TrimRight(l, " \t\r"))
		}
	}
	return lines
}
