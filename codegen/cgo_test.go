package codegen

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubiojr/lvgen/config"
)

func haveCCompiler() bool {
	for _, cc := range []string{os.Getenv("CC"), "cc", "gcc", "clang"} {
		if cc == "" {
			continue
		}
		if _, err := exec.LookPath(cc); err == nil {
			return true
		}
	}
	return false
}

// Generates wrappers for a stub C library in testdata/cgo and runs the
// package's own tests with cgo, so string ownership is checked at run
// time rather than by source comparison.
func TestGeneratedWrappersRunUnderCgo(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a cgo package")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not found")
	}
	if !haveCCompiler() {
		t.Skip("no C compiler")
	}

	fixtures := filepath.Join("testdata", "cgo")
	g, err := New(config.Default())
	require.NoError(t, err)
	require.NoError(t, g.LoadFile(filepath.Join(fixtures, "bindings.rs")))
	res, err := g.Generate()
	require.NoError(t, err)
	require.Empty(t, res.Loud())

	dir := t.TempDir()
	require.NoError(t, res.WriteDir(dir))
	for _, name := range []string{"lvgl.h", "lvgl.c", "handles.go", "roundtrip_test.go"} {
		data, err := os.ReadFile(filepath.Join(fixtures, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module lvgl\n\ngo 1.21\n"), 0o644))

	cmd := exec.Command(goBin, "test", "-count=1", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1", "GOWORK=off", "GOFLAGS=")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}
