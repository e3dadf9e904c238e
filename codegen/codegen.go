// Package codegen turns bindgen declarations of a C widget library into
// cgo wrapper functions grouped by widget.
//
// Every declaration is classified (Type), wrapped per parameter
// (Argument) and per function (Function), grouped by naming convention
// (Widget) and finally emitted by a Generator. A declaration that has no
// safe Go representation is rejected with a SkipReason; rejections are
// collected, never fatal.
package codegen

import (
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/rubiojr/lvgen/bindings"
	"github.com/rubiojr/lvgen/config"
	"github.com/rubiojr/lvgen/goir"
)

var log = commonlog.GetLogger("lvgen.codegen")

// ConstructorsFile holds the synthesized New<Widget> functions.
const ConstructorsFile = "widgets_gen.go"

// Generator drives a generation run.
type Generator struct {
	cfg       *config.Config
	target    *Target
	functions []*Function
	widgets   []*Widget
}

// New creates a Generator. The deny-list is resolved here, once.
func New(cfg *config.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := NewTarget(cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, target: t}, nil
}

// Target returns the generator's vocabulary.
func (g *Generator) Target() *Target { return g.target }

// Load parses bindgen source, keeps the functions carrying the prefix
// and groups them into widgets.
func (g *Generator) Load(src string) error {
	sigs, err := bindings.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing declarations: %w", err)
	}
	g.setSignatures(sigs)
	return nil
}

// LoadFile is Load for a file on disk.
func (g *Generator) LoadFile(path string) error {
	sigs, err := bindings.ParseFile(path)
	if err != nil {
		return err
	}
	g.setSignatures(sigs)
	return nil
}

func (g *Generator) setSignatures(sigs []bindings.RawSignature) {
	g.functions = nil
	for _, s := range sigs {
		if strings.HasPrefix(s.Name, g.target.Prefix) {
			g.functions = append(g.functions, g.target.Function(s))
		}
	}
	g.widgets = g.target.ExtractWidgets(g.functions)
	log.Infof("loaded %d functions, %d widgets", len(g.functions), len(g.widgets))
}

// Functions returns every loaded function in declaration order.
func (g *Generator) Functions() []*Function { return g.functions }

// FunctionNames returns the C names of every loaded function.
func (g *Generator) FunctionNames() []string {
	names := make([]string, len(g.functions))
	for i, f := range g.functions {
		names[i] = f.Name
	}
	return names
}

// Widgets returns the extracted widgets in discovery order.
func (g *Generator) Widgets() []*Widget { return g.widgets }

// WidgetCode is one generated file.
type WidgetCode struct {
	Widget    string // empty for the constructors file
	FileName  string
	Functions []string // Go names, in file order
	Source    []byte
}

// Result is the outcome of a generation run.
type Result struct {
	Files   []WidgetCode
	Skipped []Skip
}

// Loud returns the skips worth reporting.
func (r *Result) Loud() []Skip { return r.filter(true) }

// Silent returns the expected skips.
func (r *Result) Silent() []Skip { return r.filter(false) }

func (r *Result) filter(loud bool) []Skip {
	var out []Skip
	for _, s := range r.Skipped {
		if s.Reason.Loud() == loud {
			out = append(out, s)
		}
	}
	return out
}

// Generate emits one file per widget with at least one wrapper, plus the
// constructors file. Duplicate wrapper names abort the run.
func (g *Generator) Generate() (*Result, error) {
	res := &Result{}
	owner := map[string]string{}
	claim := func(goName, where string) error {
		if prev, ok := owner[goName]; ok {
			return fmt.Errorf("duplicate wrapper %s in %s and %s", goName, prev, where)
		}
		owner[goName] = where
		return nil
	}

	var ctors []goir.GoFuncDecl
	for _, w := range g.widgets {
		decls, skips := w.Code()
		res.Skipped = append(res.Skipped, skips...)
		for _, s := range skips {
			log.Debugf("skip %s", s)
		}

		ctor, err := w.Constructor()
		if err != nil {
			s := Skip{Function: w.Ctor.Name, Widget: w.Name}
			errors.As(err, &s.Reason)
			res.Skipped = append(res.Skipped, s)
			log.Debugf("skip %s", s)
		} else {
			if err := claim(ctor.Name, ConstructorsFile); err != nil {
				return nil, err
			}
			ctors = append(ctors, ctor)
		}

		if len(decls) == 0 {
			continue
		}
		file := w.Name + "_gen.go"
		for _, d := range decls {
			if err := claim(d.Name, file); err != nil {
				return nil, err
			}
		}
		wc, err := g.emit(file, decls)
		if err != nil {
			return nil, err
		}
		wc.Widget = w.Name
		res.Files = append(res.Files, wc)
	}

	if len(ctors) > 0 {
		wc, err := g.emit(ConstructorsFile, ctors)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, wc)
	}

	log.Infof("generated %d files, %d wrappers, %d skipped (%d loud)",
		len(res.Files), len(owner), len(res.Skipped), len(res.Loud()))
	return res, nil
}

func (g *Generator) emit(fileName string, decls []goir.GoFuncDecl) (WidgetCode, error) {
	f := &goir.GoFile{
		Header:  []string{"Code generated by lvgen; DO NOT EDIT."},
		Package: g.cfg.Package,
		Preamble: []string{
			fmt.Sprintf("#include %q", g.cfg.Header),
			"#include <stdlib.h>",
		},
	}
	wc := WidgetCode{FileName: fileName}
	usesUnsafe := false
	for _, d := range decls {
		f.Decls = append(f.Decls, d)
		wc.Functions = append(wc.Functions, d.Name)
		usesUnsafe = usesUnsafe || goir.UsesPackage(d, "unsafe")
	}
	if usesUnsafe {
		f.Imports = []goir.GoImport{{Path: "unsafe"}}
	}

	src, err := format.Source([]byte(goir.PrintGoFile(f)))
	if err != nil {
		return WidgetCode{}, fmt.Errorf("formatting %s: %w", fileName, err)
	}
	wc.Source = src
	return wc, nil
}

// WriteDir writes every generated file into dir.
func (r *Result) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for _, f := range r.Files {
		path := filepath.Join(dir, f.FileName)
		if err := os.WriteFile(path, f.Source, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Debugf("wrote %s", path)
	}
	return nil
}
