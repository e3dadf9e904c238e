package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-cz/textcase"
	"github.com/rubiojr/lvgen/goir"
)

// Widget groups the methods that share the `<prefix><name>_` prefix of a
// one-argument constructor.
type Widget struct {
	Name    string
	Ctor    *Function // the _create or _init function the name came from
	Methods []*Function

	target *Target
}

// GoName is the PascalCase widget name (label -> Label).
func (w *Widget) GoName() string { return textcase.PascalCase(w.Name) }

// Code emits every member that can be wrapped. Rejected members are
// returned as skips; they never stop the others.
func (w *Widget) Code() ([]goir.GoFuncDecl, []Skip) {
	var decls []goir.GoFuncDecl
	var skips []Skip
	for _, m := range w.Methods {
		d, err := m.Code(w)
		if err != nil {
			var reason SkipReason
			if !errors.As(err, &reason) {
				reason = SkipReason{Kind: UnsupportedType, Subject: err.Error()}
			}
			skips = append(skips, Skip{Function: m.Name, Widget: w.Name, Reason: reason})
			continue
		}
		decls = append(decls, d)
	}
	return decls, skips
}

// Constructor synthesizes New<Widget>(parent), which creates the widget
// on parent or, when parent is nil, on the active screen of the default
// display.
func (w *Widget) Constructor() (goir.GoFuncDecl, error) {
	if w.Name == "obj" || w.Name == "style" {
		return goir.GoFuncDecl{}, skip(CustomStruct, w.Name)
	}
	// only hand-built widgets lack a constructor; ExtractWidgets always sets one
	if w.Ctor == nil {
		return goir.GoFuncDecl{}, skip(Constructor, w.target.Prefix+w.Name+"_create")
	}
	c := w.Ctor
	if len(c.Args) != 1 || !c.Args[0].typ.IsMutObject() || c.Ret == nil || !c.Ret.IsObject() {
		return goir.GoFuncDecl{}, skip(Constructor, c.Name)
	}

	prefix := w.target.Prefix
	handle := "*" + w.target.Handle
	name := "New" + w.GoName()
	screen := fmt.Sprintf("C.%sdisplay_get_screen_active(C.%sdisplay_get_default())", prefix, prefix)
	parent := goir.GoIdentExpr{Name: "parent"}

	return goir.GoFuncDecl{
		Doc: []string{
			fmt.Sprintf("%s creates a %s on parent, or on the active screen of the", name, w.Name),
			"default display when parent is nil.",
		},
		Name:   name,
		Params: []goir.GoParam{{Name: "parent", Type: handle, Mutable: true}},
		Return: handle,
		Body: []goir.GoStmt{
			goir.GoVarStmt{Name: "raw", Type: "*" + c.Args[0].typ.CType()},
			goir.GoIfStmt{
				Cond: goir.GoBinaryExpr{Left: parent, Op: "!=", Right: goir.GoNilExpr{}},
				Body: []goir.GoStmt{goir.GoAssignStmt{Target: "raw", Op: "=", Value: goir.GoMethodCallExpr{Object: parent, Method: "RawMut"}}},
				Else: []goir.GoStmt{goir.GoAssignStmt{Target: "raw", Op: "=", Value: goir.GoRawExpr{Code: screen}}},
			},
			goir.GoReturnStmt{Value: goir.GoCallExpr{
				Func: "Try" + w.target.Handle + "FromPtr",
				Args: []goir.GoExpr{goir.GoCallExpr{Func: "C." + c.Name, Args: []goir.GoExpr{goir.GoIdentExpr{Name: "raw"}}}},
			}},
		},
	}, nil
}

// WidgetNames returns the widget names found in fns using the default
// target.
func WidgetNames(fns []*Function) []string { return defaultTarget.WidgetNames(fns) }

// ExtractWidgets groups fns using the default target.
func ExtractWidgets(fns []*Function) []*Widget { return defaultTarget.ExtractWidgets(fns) }

// WidgetNames collects, in discovery order and without duplicates, the
// <name> of every one-argument function called <prefix><name>_create or
// <prefix><name>_init.
func (t *Target) WidgetNames(fns []*Function) []string {
	var names []string
	seen := map[string]bool{}
	for _, f := range fns {
		if name, ok := t.ctorName(f); ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (t *Target) ctorName(f *Function) (string, bool) {
	if len(f.Args) != 1 {
		return "", false
	}
	m := t.ctorRe.FindStringSubmatch(f.Name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractWidgets buckets every method into the widget whose
// `<prefix><name>_` prefix it carries, keeping discovery order. When more
// than one prefix matches the longest wins. Widgets without members are
// kept so their constructor can still be synthesized.
func (t *Target) ExtractWidgets(fns []*Function) []*Widget {
	names := t.WidgetNames(fns)
	widgets := make([]*Widget, len(names))
	byName := make(map[string]*Widget, len(names))
	for i, n := range names {
		widgets[i] = &Widget{Name: n, target: t}
		byName[n] = widgets[i]
	}

	for _, f := range fns {
		if n, ok := t.ctorName(f); ok {
			// _create wins over _init
			if w := byName[n]; w.Ctor == nil || strings.HasSuffix(f.Name, "_create") && !strings.HasSuffix(w.Ctor.Name, "_create") {
				w.Ctor = f
			}
		}
		if !f.IsMethod() {
			continue
		}
		var best *Widget
		for _, w := range widgets {
			if strings.HasPrefix(f.Name, t.Prefix+w.Name+"_") && (best == nil || len(w.Name) > len(best.Name)) {
				best = w
			}
		}
		if best != nil {
			best.Methods = append(best.Methods, f)
		}
	}
	return widgets
}
