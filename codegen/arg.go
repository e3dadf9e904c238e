package codegen

import "github.com/rubiojr/lvgen/goir"

// Argument is one parameter of a foreign function. Every method is a pure
// function of the argument's name, type and position.
type Argument struct {
	name   string
	typ    Type
	index  int
	target *Target

	// resolved names, set on the copies Function.Code works on
	ident, raw string
}

// NewArgument creates an argument classified against the default target.
func NewArgument(name string, typ Type) Argument {
	return Argument{name: name, typ: typ, target: defaultTarget}
}

func (a Argument) Name() string { return a.name }
func (a Argument) Type() Type   { return a.typ }

// Ident is the Go identifier used for the argument in the wrapper.
func (a Argument) Ident() string {
	if a.ident != "" {
		return a.ident
	}
	return goIdent(a.name, a.index)
}

// IsMutable reports whether the callee may write through the argument.
func (a Argument) IsMutable() bool { return a.typ.IsMutPointer() }

// rawIdent names the C copy of a string argument.
func (a Argument) rawIdent() string {
	if a.raw != "" {
		return a.raw
	}
	return a.Ident() + "Raw"
}

// Decl returns the wrapper parameter, or the reason the argument has no
// safe Go representation.
func (a Argument) Decl() (goir.GoParam, error) {
	p := goir.GoParam{Name: a.Ident(), Mutable: a.IsMutable()}
	t := a.typ
	switch {
	case t.IsArray():
		return goir.GoParam{}, skip(ArrayArgument, t.Literal)
	case t.IsVoidPtr():
		return goir.GoParam{}, skip(VoidPtrArgument, t.Literal)
	case t.IsObject():
		p.Type = "*" + a.target.Handle
	case t.IsStyle():
		p.Type = "*" + a.target.StyleHandle
	case t.IsConstStr():
		p.Type = "string"
	case t.IsMutStr():
		p.Type = "*string"
	case !t.Supported():
		return goir.GoParam{}, skip(UnsupportedType, t.Literal)
	default:
		p.Type = t.GoType()
	}
	return p, nil
}

// PreCall hands a NUL-terminated copy of a string argument to C.
func (a Argument) PreCall() []goir.GoStmt {
	var src goir.GoExpr
	switch {
	case a.typ.IsConstStr():
		src = goir.GoIdentExpr{Name: a.Ident()}
	case a.typ.IsMutStr():
		src = goir.GoUnaryExpr{Op: "*", Operand: goir.GoIdentExpr{Name: a.Ident()}}
	default:
		return nil
	}
	return []goir.GoStmt{
		goir.GoAssignStmt{Target: a.rawIdent(), Op: ":=", Value: goir.GoCallExpr{Func: "C.CString", Args: []goir.GoExpr{src}}},
	}
}

// CallExpr is the value passed to the foreign function.
func (a Argument) CallExpr() goir.GoExpr {
	id := goir.GoIdentExpr{Name: a.Ident()}
	t := a.typ
	switch {
	case t.IsHandle() && t.IsMutPointer():
		return goir.GoMethodCallExpr{Object: id, Method: "RawMut"}
	case t.IsHandle():
		return goir.GoMethodCallExpr{Object: id, Method: "Raw"}
	case t.kind == kindString:
		return goir.GoIdentExpr{Name: a.rawIdent()}
	case t.isPrimitive():
		return goir.GoCastExpr{Type: t.CType(), Value: id}
	}
	return id
}

// PostCall reclaims the C copy of a string argument. For a mutable string
// whatever the callee wrote is copied back first.
func (a Argument) PostCall() []goir.GoStmt {
	if a.typ.kind != kindString {
		return nil
	}
	raw := goir.GoIdentExpr{Name: a.rawIdent()}
	free := goir.GoExprStmt{Expr: goir.GoCallExpr{
		Func: "C.free",
		Args: []goir.GoExpr{goir.GoCastExpr{Type: "unsafe.Pointer", Value: raw}},
	}}
	if a.typ.IsConstStr() {
		return []goir.GoStmt{free}
	}
	return []goir.GoStmt{
		goir.GoAssignStmt{Target: "*" + a.Ident(), Op: "=", Value: goir.GoCallExpr{Func: "C.GoString", Args: []goir.GoExpr{raw}}},
		free,
	}
}
