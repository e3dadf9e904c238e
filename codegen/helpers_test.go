package codegen

import (
	"go/format"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubiojr/lvgen/config"
	"github.com/rubiojr/lvgen/goir"
)

func testConfig() *config.Config { return config.Default() }

func arg(name, lit string) Argument { return NewArgument(name, Classify(lit)) }

func ret(lit string) *Type {
	t := Classify(lit)
	return &t
}

func widget(name string) *Widget { return &Widget{Name: name, target: defaultTarget} }

// gofmt renders a declaration (or expected source) inside a package so
// both sides of a comparison go through the same formatter.
func gofmt(t *testing.T, src string) string {
	t.Helper()
	out, err := format.Source([]byte("package lvgl\n\n" + src))
	require.NoError(t, err, src)
	return string(out)
}

func declSource(t *testing.T, d goir.GoFuncDecl) string {
	t.Helper()
	return gofmt(t, goir.PrintDecl(d))
}
