package codegen

import "fmt"

// SkipKind is the reason a function cannot be wrapped.
type SkipKind int

const (
	ReturnArray SkipKind = iota
	ArrayArgument
	VoidPtrArgument
	CustomStruct
	Constructor
	Blacklisted
	UnsupportedType
	Variadic
)

var skipKindNames = [...]string{
	ReturnArray:     "ReturnArray",
	ArrayArgument:   "ArrayArgument",
	VoidPtrArgument: "VoidPtrArgument",
	CustomStruct:    "CustomStruct",
	Constructor:     "Constructor",
	Blacklisted:     "Blacklisted",
	UnsupportedType: "UnsupportedType",
	Variadic:        "Variadic",
}

var skipKindFormats = [...]string{
	ReturnArray:     "Return value is array (%s)",
	ArrayArgument:   "Array as argument (%s)",
	VoidPtrArgument: "Void pointer as argument (%s)",
	CustomStruct:    "Already implemented (%s)",
	Constructor:     "Constructor function (%s)",
	Blacklisted:     "Blacklisted function (%s)",
	UnsupportedType: "Unsupported type (%s)",
	Variadic:        "Variadic function (%s)",
}

func (k SkipKind) String() string {
	if int(k) < len(skipKindNames) {
		return skipKindNames[k]
	}
	return fmt.Sprintf("SkipKind(%d)", int(k))
}

// SkipReason is a typed rejection. Subject names the offending construct:
// a type descriptor for shape rejections, a function or widget name
// otherwise.
type SkipReason struct {
	Kind    SkipKind
	Subject string
}

func (r SkipReason) Error() string {
	if int(r.Kind) < len(skipKindFormats) {
		return fmt.Sprintf(skipKindFormats[r.Kind], r.Subject)
	}
	return fmt.Sprintf("%s (%s)", r.Kind, r.Subject)
}

// Loud reports whether the rejection points at a capability gap worth
// surfacing to a maintainer, as opposed to an expected skip.
func (r SkipReason) Loud() bool {
	switch r.Kind {
	case ReturnArray, ArrayArgument, VoidPtrArgument, UnsupportedType, Variadic:
		return true
	}
	return false
}

func skip(kind SkipKind, subject string) error {
	return SkipReason{Kind: kind, Subject: subject}
}

// Skip records one rejected function.
type Skip struct {
	Function string
	Widget   string
	Reason   SkipReason
}

func (s Skip) String() string {
	return fmt.Sprintf("%s - %s", s.Function, s.Reason)
}
