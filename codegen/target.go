package codegen

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/rubiojr/lvgen/config"
)

// Target is the vocabulary the generated code is written against: the
// library prefix, the C spellings of the two handle types, the Go handle
// types and the deny-list.
type Target struct {
	Prefix      string
	Object      []string
	Style       []string
	Handle      string
	StyleHandle string

	deny   map[string]bool
	ctorRe *regexp.Regexp
}

var defaultTarget = mustTarget(config.Default())

func mustTarget(cfg *config.Config) *Target {
	t, err := NewTarget(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTarget returns the target for the built-in LVGL configuration.
func DefaultTarget() *Target { return defaultTarget }

// NewTarget resolves a configuration into a Target. The deny-list is
// resolved once, here.
func NewTarget(cfg *config.Config) (*Target, error) {
	deny, err := cfg.DenyList()
	if err != nil {
		return nil, err
	}
	ctorRe, err := regexp.Compile("^" + regexp.QuoteMeta(cfg.Prefix) + "([^_]+)_(create|init)$")
	if err != nil {
		return nil, fmt.Errorf("prefix %q: %w", cfg.Prefix, err)
	}
	t := &Target{
		Prefix:      cfg.Prefix,
		Object:      slices.Clone(cfg.Types.Object),
		Style:       slices.Clone(cfg.Types.Style),
		Handle:      cfg.Types.Handle,
		StyleHandle: cfg.Types.StyleHandle,
		deny:        make(map[string]bool, len(deny)),
		ctorRe:      ctorRe,
	}
	for _, name := range deny {
		t.deny[name] = true
	}
	return t, nil
}

// Denied reports whether name is on the deny-list.
func (t *Target) Denied(name string) bool { return t.deny[name] }
