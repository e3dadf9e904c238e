package codegen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/golang-cz/textcase"
)

// GoName is the exported Go name for a C function: the prefix is
// stripped and the rest PascalCased (lv_label_set_text -> LabelSetText).
func (t *Target) GoName(cname string) string {
	return textcase.PascalCase(strings.TrimPrefix(cname, t.Prefix))
}

// goIdent turns a C parameter name into a Go identifier: camelCase,
// with Go keywords, predeclared names and unsafe suffixed by an
// underscore. Lowering the first rune already keeps clear of C.
func goIdent(name string, index int) string {
	pascal := textcase.PascalCase(name)
	if pascal == "" {
		return fmt.Sprintf("arg%d", index)
	}
	r, size := utf8.DecodeRuneInString(pascal)
	ident := string(unicode.ToLower(r)) + pascal[size:]
	if token.IsKeyword(ident) || ident == "unsafe" || isPredeclared(ident) {
		ident += "_"
	}
	return ident
}

func isPredeclared(s string) bool {
	switch s {
	case "bool", "string", "error", "len", "cap", "new", "make", "nil", "true", "false",
		"int", "uint", "byte", "rune", "copy", "append", "delete", "panic":
		return true
	}
	return false
}

// unique returns base, or base followed by a number, not present in used.
func unique(base string, used map[string]bool) string {
	if !used[base] {
		return base
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if !used[name] {
			return name
		}
	}
}
