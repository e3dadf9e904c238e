// Package config handles lvgen.toml generator configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "lvgen.toml"

// Config controls how declarations are classified and emitted.
type Config struct {
	Prefix  string `toml:"prefix"`
	Package string `toml:"package"`
	Header  string `toml:"header"`
	Profile string `toml:"profile"`

	// Deny replaces the profile deny-list when non-empty.
	Deny []string `toml:"deny"`
	// Allow removes names from the deny-list.
	Allow []string `toml:"allow"`

	Types Types `toml:"types"`

	// Path is the file the configuration was loaded from (empty for defaults).
	Path string `toml:"-"`
}

// Types names the C spellings that map to the handle types, and the Go
// handle types themselves.
type Types struct {
	Object      []string `toml:"object"`
	Style       []string `toml:"style"`
	Handle      string   `toml:"handle"`
	StyleHandle string   `toml:"style_handle"`
}

// Default returns the built-in configuration for LVGL.
func Default() *Config {
	return &Config{
		Prefix:  "lv_",
		Package: "lvgl",
		Header:  "lvgl.h",
		Profile: DefaultProfile,
		Types: Types{
			Object:      []string{"lv_obj_t", "_lv_obj_t"},
			Style:       []string{"lv_style_t"},
			Handle:      "Obj",
			StyleHandle: "Style",
		},
	}
}

// Load parses a configuration file. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	c.Path = path

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir looking for lvgen.toml and loads it.
// Returns the defaults when no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks that the configuration can drive a generator.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	if c.Package == "" {
		return fmt.Errorf("package must not be empty")
	}
	if len(c.Types.Object) == 0 {
		return fmt.Errorf("types.object must name at least one C type")
	}
	if c.Types.Handle == "" || c.Types.StyleHandle == "" {
		return fmt.Errorf("types.handle and types.style_handle must be set")
	}
	if len(c.Deny) == 0 {
		if _, ok := profiles[c.Profile]; !ok {
			return fmt.Errorf("unknown profile %q (known: %s)", c.Profile, strings.Join(ProfileNames(), ", "))
		}
	}
	return nil
}

// DenyList resolves the active deny-list: the explicit Deny list if set,
// otherwise the named profile, minus every Allow entry.
func (c *Config) DenyList() ([]string, error) {
	names := c.Deny
	if len(names) == 0 {
		p, ok := profiles[c.Profile]
		if !ok {
			return nil, fmt.Errorf("unknown profile %q (known: %s)", c.Profile, strings.Join(ProfileNames(), ", "))
		}
		names = p
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if !slices.Contains(c.Allow, n) && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out, nil
}
