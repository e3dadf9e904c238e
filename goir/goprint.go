package goir

import (
	"fmt"
	"regexp"
	"strings"
)

// PrintGoFile serializes a GoFile tree to Go source code. The output is
// valid but not gofmt-aligned; callers run it through go/format.
func PrintGoFile(f *GoFile) string {
	p := &goPrinter{}
	p.printFile(f)
	return p.sb.String()
}

// PrintDecl serializes a single declaration.
func PrintDecl(d GoDecl) string {
	p := &goPrinter{}
	p.printDecl(d)
	return p.sb.String()
}

// UsesPackage reports whether the printed declaration refers to a
// selector of the named package, e.g. UsesPackage(d, "unsafe").
func UsesPackage(d GoDecl, name string) bool {
	re := regexp.MustCompile(`(^|[^\w.])` + regexp.QuoteMeta(name) + `\.`)
	return re.MatchString(PrintDecl(d))
}

type goPrinter struct {
	sb     strings.Builder
	indent int
}

func (p *goPrinter) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *goPrinter) blank() {
	p.sb.WriteByte('\n')
}

func (p *goPrinter) writeIndent() {
	for range p.indent {
		p.sb.WriteByte('\t')
	}
}

func (p *goPrinter) comment(text string) {
	if text == "" {
		p.line("//")
		return
	}
	p.line("// %s", text)
}

func (p *goPrinter) printFile(f *GoFile) {
	if len(f.Header) > 0 {
		for _, h := range f.Header {
			p.comment(h)
		}
		p.blank()
	}
	p.line("package %s", f.Package)
	p.blank()

	if f.Preamble != nil {
		p.line("/*")
		for _, l := range f.Preamble {
			p.line("%s", l)
		}
		p.line("*/")
		p.line(`import "C"`)
		p.blank()
	}

	if len(f.Imports) > 0 {
		p.line("import (")
		p.indent++
		for _, imp := range f.Imports {
			if imp.Alias != "" {
				p.line("%s %q", imp.Alias, imp.Path)
			} else {
				p.line("%q", imp.Path)
			}
		}
		p.indent--
		p.line(")")
		p.blank()
	}

	for _, d := range f.Decls {
		p.printDecl(d)
	}
}

func (p *goPrinter) printDecl(d GoDecl) {
	if fd, ok := d.(GoFuncDecl); ok {
		p.printFuncDecl(fd)
	}
}

func (p *goPrinter) printFuncDecl(f GoFuncDecl) {
	for _, d := range f.Doc {
		p.comment(d)
	}
	var params []string
	for _, param := range f.Params {
		params = append(params, fmt.Sprintf("%s %s", param.Name, param.Type))
	}
	sig := fmt.Sprintf("func %s(%s)", f.Name, strings.Join(params, ", "))
	if f.Return != "" {
		sig += " " + f.Return
	}
	p.line("%s {", sig)
	p.printBlock(f.Body)
	p.line("}")
	p.blank()
}

func (p *goPrinter) printBlock(stmts []GoStmt) {
	p.indent++
	for _, s := range stmts {
		p.printStmt(s)
	}
	p.indent--
}

func (p *goPrinter) printStmt(s GoStmt) {
	switch st := s.(type) {
	case GoExprStmt:
		p.line("%s", p.exprStr(st.Expr))
	case GoAssignStmt:
		p.line("%s %s %s", st.Target, st.Op, p.exprStr(st.Value))
	case GoReturnStmt:
		if st.Value != nil {
			p.line("return %s", p.exprStr(st.Value))
		} else {
			p.line("return")
		}
	case GoVarStmt:
		if st.Value != nil {
			p.line("var %s %s = %s", st.Name, st.Type, p.exprStr(st.Value))
		} else {
			p.line("var %s %s", st.Name, st.Type)
		}
	case GoIfStmt:
		p.line("if %s {", p.exprStr(st.Cond))
		p.printBlock(st.Body)
		if len(st.Else) > 0 {
			p.line("} else {")
			p.printBlock(st.Else)
		}
		p.line("}")
	case GoDeferStmt:
		p.line("defer func() {")
		p.printBlock(st.Body)
		p.line("}()")
	}
}

func (p *goPrinter) exprStr(e GoExpr) string {
	switch ex := e.(type) {
	case GoRawExpr:
		return ex.Code
	case GoIdentExpr:
		return ex.Name
	case GoNilExpr:
		return "nil"
	case GoBinaryExpr:
		return fmt.Sprintf("%s %s %s", p.exprStr(ex.Left), ex.Op, p.exprStr(ex.Right))
	case GoUnaryExpr:
		return fmt.Sprintf("%s%s", ex.Op, p.exprStr(ex.Operand))
	case GoCastExpr:
		// pointer conversions need parentheses: (*C.int)(x)
		if strings.HasPrefix(ex.Type, "*") {
			return fmt.Sprintf("(%s)(%s)", ex.Type, p.exprStr(ex.Value))
		}
		return fmt.Sprintf("%s(%s)", ex.Type, p.exprStr(ex.Value))
	case GoCallExpr:
		return fmt.Sprintf("%s(%s)", ex.Func, p.args(ex.Args))
	case GoMethodCallExpr:
		return fmt.Sprintf("%s.%s(%s)", p.exprStr(ex.Object), ex.Method, p.args(ex.Args))
	default:
		return "<unknown expr>"
	}
}

func (p *goPrinter) args(args []GoExpr) string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = p.exprStr(a)
	}
	return strings.Join(out, ", ")
}
