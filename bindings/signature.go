// Package bindings reads the foreign function declarations that bindgen
// emits for a C header and turns them into RawSignature values.
package bindings

import (
	"fmt"
	"strings"
)

// Param is one declared parameter of a foreign function.
type Param struct {
	Name string
	// Type is the canonical descriptor: bindgen tokens separated by a
	// single space, e.g. "* mut :: core :: ffi :: c_char".
	Type string
}

// RawSignature is a foreign function declaration as found in the input.
// A RawSignature is never modified after Parse returns it.
type RawSignature struct {
	Name     string
	Params   []Param
	Return   string // empty for void
	Variadic bool
	Doc      []string
	Line     int
}

// String renders the signature in bindgen spelling, mostly for reports.
func (s RawSignature) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s(", s.Name)
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
	}
	if s.Variadic {
		if len(s.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString(")")
	if s.Return != "" {
		fmt.Fprintf(&b, " -> %s", s.Return)
	}
	return b.String()
}

// SyntaxError reports malformed declaration text.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
