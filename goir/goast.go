// Package goir is the output tree for generated wrapper files. The
// generator assembles a GoFile out of these nodes and PrintGoFile turns it
// into source that go/format accepts.
package goir

type (
	GoDecl interface{ goDecl() }
	GoStmt interface{ goStmt() }
	GoExpr interface{ goExpr() }
)

// GoFile is one generated file. A non-nil Preamble makes it a cgo file:
// the lines end up in the comment right above `import "C"`.
type GoFile struct {
	Header   []string // comment lines above the package clause
	Package  string
	Preamble []string
	Imports  []GoImport
	Decls    []GoDecl
}

type GoImport struct {
	Path  string
	Alias string
}

// GoFuncDecl is a wrapper function. Return is empty for wrappers of void
// C functions.
type GoFuncDecl struct {
	Doc    []string
	Name   string
	Params []GoParam
	Return string
	Body   []GoStmt
}

// GoParam carries Mutable for callers inspecting a declaration; the
// printer ignores it.
type GoParam struct {
	Name    string
	Type    string
	Mutable bool
}

func (GoFuncDecl) goDecl() {}

// Statements.

type GoExprStmt struct{ Expr GoExpr }

// GoAssignStmt covers both `x := v` and `*buf = v`.
type GoAssignStmt struct {
	Target string
	Op     string
	Value  GoExpr
}

// GoReturnStmt with a nil Value is a bare return.
type GoReturnStmt struct{ Value GoExpr }

type GoVarStmt struct {
	Name  string
	Type  string
	Value GoExpr
}

type GoIfStmt struct {
	Cond GoExpr
	Body []GoStmt
	Else []GoStmt
}

// GoDeferStmt prints as `defer func() { ... }()` so several cleanup
// statements share one deferred closure.
type GoDeferStmt struct{ Body []GoStmt }

func (GoExprStmt) goStmt()   {}
func (GoAssignStmt) goStmt() {}
func (GoReturnStmt) goStmt() {}
func (GoVarStmt) goStmt()    {}
func (GoIfStmt) goStmt()     {}
func (GoDeferStmt) goStmt()  {}

// Expressions.

// GoRawExpr is printed verbatim.
type GoRawExpr struct{ Code string }

type GoIdentExpr struct{ Name string }

type GoNilExpr struct{}

type GoBinaryExpr struct {
	Left  GoExpr
	Op    string
	Right GoExpr
}

// GoUnaryExpr is a prefix operator: *buf, &x.
type GoUnaryExpr struct {
	Op      string
	Operand GoExpr
}

// GoCastExpr is a conversion. Pointer types are parenthesized on output.
type GoCastExpr struct {
	Type  string
	Value GoExpr
}

// GoCallExpr calls a function by name, e.g. C.lv_obj_clean.
type GoCallExpr struct {
	Func string
	Args []GoExpr
}

type GoMethodCallExpr struct {
	Object GoExpr
	Method string
	Args   []GoExpr
}

func (GoRawExpr) goExpr()        {}
func (GoIdentExpr) goExpr()      {}
func (GoNilExpr) goExpr()        {}
func (GoBinaryExpr) goExpr()     {}
func (GoUnaryExpr) goExpr()      {}
func (GoCastExpr) goExpr()       {}
func (GoCallExpr) goExpr()       {}
func (GoMethodCallExpr) goExpr() {}
