package codegen

import (
	"regexp"
	"slices"
	"strings"
)

// kind is the representation category of a type descriptor. Exactly one
// kind applies; the facet methods on Type are derived from it.
type kind int

const (
	kindValue   kind = iota // non-pointer
	kindObject              // object handle pointer
	kindStyle               // style handle pointer
	kindArray               // double indirection
	kindString              // char pointer
	kindPayload             // void pointer
	kindPointer             // any other pointer
)

var (
	charSpellings = []string{
		":: core :: ffi :: c_char",
		":: std :: os :: raw :: c_char",
		"cty :: c_char",
		"c_char",
	}
	voidSpellings = []string{
		":: core :: ffi :: c_void",
		":: std :: os :: raw :: c_void",
		"cty :: c_void",
		"c_void",
	}
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Type is the classified view of a bindgen type descriptor.
type Type struct {
	Literal string
	kind    kind
}

// Classify classifies a descriptor against the default LVGL vocabulary.
func Classify(literal string) Type {
	return defaultTarget.Classify(literal)
}

// Classify classifies a descriptor. It never fails: shapes with no Go
// spelling are reported by Supported and rejected by the caller.
func (t *Target) Classify(literal string) Type {
	literal = strings.Join(strings.Fields(literal), " ")
	return Type{Literal: literal, kind: t.kindOf(literal)}
}

func (t *Target) kindOf(lit string) kind {
	for _, prefix := range []string{"* const ", "* mut "} {
		if !strings.HasPrefix(lit, prefix) {
			continue
		}
		pointee := lit[len(prefix):]
		switch {
		case slices.Contains(t.Object, pointee):
			return kindObject
		case slices.Contains(t.Style, pointee):
			return kindStyle
		case strings.HasPrefix(pointee, "*"):
			return kindArray
		case slices.Contains(charSpellings, pointee):
			return kindString
		case slices.Contains(voidSpellings, pointee):
			return kindPayload
		}
		return kindPointer
	}
	return kindValue
}

func (t Type) IsPointer() bool      { return strings.HasPrefix(t.Literal, "*") }
func (t Type) IsConstPointer() bool { return strings.HasPrefix(t.Literal, "* const") }
func (t Type) IsMutPointer() bool   { return strings.HasPrefix(t.Literal, "* mut") }

func (t Type) IsArray() bool   { return t.kind == kindArray }
func (t Type) IsObject() bool  { return t.kind == kindObject }
func (t Type) IsStyle() bool   { return t.kind == kindStyle }
func (t Type) IsVoidPtr() bool { return t.kind == kindPayload }

func (t Type) IsConstObject() bool { return t.IsObject() && t.IsConstPointer() }
func (t Type) IsMutObject() bool   { return t.IsObject() && t.IsMutPointer() }
func (t Type) IsConstStyle() bool  { return t.IsStyle() && t.IsConstPointer() }
func (t Type) IsMutStyle() bool    { return t.IsStyle() && t.IsMutPointer() }
func (t Type) IsConstStr() bool    { return t.kind == kindString && t.IsConstPointer() }
func (t Type) IsMutStr() bool      { return t.kind == kindString && t.IsMutPointer() }

// IsHandle reports whether the type is an object or style handle pointer.
func (t Type) IsHandle() bool { return t.IsObject() || t.IsStyle() }

// IsPlain reports whether the type is a non-pointer value with a Go spelling.
func (t Type) IsPlain() bool { return t.kind == kindValue && t.Supported() }

// RawName is the descriptor with the leading pointer qualifier removed.
func (t Type) RawName() string {
	for _, prefix := range []string{"* const ", "* mut "} {
		if strings.HasPrefix(t.Literal, prefix) {
			return t.Literal[len(prefix):]
		}
	}
	return t.Literal
}

// Supported reports whether the descriptor is a (possibly pointer to a)
// plain path such as `u32` or `:: core :: ffi :: c_int`. Generic,
// function-pointer, slice and reference shapes have no Go spelling.
func (t Type) Supported() bool {
	switch t.kind {
	case kindObject, kindStyle, kindString, kindPayload:
		return true
	case kindArray:
		return false
	}
	return isPath(t.RawName())
}

func isPath(s string) bool {
	toks := strings.Split(s, " ")
	if toks[0] == "::" {
		toks = toks[1:]
	}
	// segments alternate with separators: seg (:: seg)*
	if len(toks)%2 == 0 {
		return false
	}
	for i, tok := range toks {
		if i%2 == 1 {
			if tok != "::" {
				return false
			}
			continue
		}
		if !identRe.MatchString(tok) || isRustKeyword(tok) {
			return false
		}
	}
	return true
}

func isRustKeyword(s string) bool {
	switch s {
	case "dyn", "fn", "unsafe", "extern", "impl", "mut", "const":
		return true
	}
	return false
}

// baseName is the last path segment of the pointee or value type.
func (t Type) baseName() string {
	raw := t.RawName()
	if i := strings.LastIndex(raw, " "); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// CType is the cgo spelling of the pointee (for pointers) or the value.
func (t Type) CType() string {
	name := t.baseName()
	if p, ok := primitives[name]; ok {
		return p.cgo
	}
	return "C." + name
}

// GoType is the Go parameter type for plain values and generic pointers.
// Primitives map to Go primitives, other names to their cgo type.
func (t Type) GoType() string {
	switch t.kind {
	case kindValue:
		if p, ok := primitives[t.baseName()]; ok {
			return p.goType
		}
		return t.CType()
	case kindPayload:
		return "unsafe.Pointer"
	}
	return "*" + t.CType()
}

// isPrimitive reports whether a value converts between a Go and a C type.
func (t Type) isPrimitive() bool {
	_, ok := primitives[t.baseName()]
	return t.kind == kindValue && ok
}

type primitive struct {
	goType string
	cgo    string
}

var primitives = map[string]primitive{
	"bool":        {"bool", "C.bool"},
	"u8":          {"uint8", "C.uint8_t"},
	"i8":          {"int8", "C.int8_t"},
	"u16":         {"uint16", "C.uint16_t"},
	"i16":         {"int16", "C.int16_t"},
	"u32":         {"uint32", "C.uint32_t"},
	"i32":         {"int32", "C.int32_t"},
	"u64":         {"uint64", "C.uint64_t"},
	"i64":         {"int64", "C.int64_t"},
	"usize":       {"uint", "C.size_t"},
	"isize":       {"int", "C.intptr_t"},
	"f32":         {"float32", "C.float"},
	"f64":         {"float64", "C.double"},
	"c_char":      {"int8", "C.char"},
	"c_schar":     {"int8", "C.schar"},
	"c_uchar":     {"uint8", "C.uchar"},
	"c_short":     {"int16", "C.short"},
	"c_ushort":    {"uint16", "C.ushort"},
	"c_int":       {"int32", "C.int"},
	"c_uint":      {"uint32", "C.uint"},
	"c_long":      {"int64", "C.long"},
	"c_ulong":     {"uint64", "C.ulong"},
	"c_longlong":  {"int64", "C.longlong"},
	"c_ulonglong": {"uint64", "C.ulonglong"},
	"c_float":     {"float32", "C.float"},
	"c_double":    {"float64", "C.double"},
}
