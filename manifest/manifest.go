// Package manifest handles polyglot.toml configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/chazu/polyglot/interop"
)

// FileName is the name of the configuration file.
const FileName = "polyglot.toml"

// Manifest represents a polyglot.toml configuration.
type Manifest struct {
	Project      Project      `toml:"project"`
	Dispatch     Dispatch     `toml:"dispatch"`
	Capabilities Capabilities `toml:"capabilities"`
	Log          Log          `toml:"log"`
	Export       Export       `toml:"export"`

	// Dir is the directory containing the polyglot.toml file (set at load
	// time). Empty for defaults.
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name string `toml:"name"`
}

// Dispatch configures the per-operation call site caches.
type Dispatch struct {
	CacheLimit int `toml:"cache-limit"`
}

// Capabilities lists the categories guests may use. An empty Allow list
// allows every category; Deny always wins.
type Capabilities struct {
	Allow []string `toml:"allow"`
	Deny  []string `toml:"deny"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Export configures snapshots of interop values.
type Export struct {
	MaxDepth        int  `toml:"max-depth"`
	IncludeInternal bool `toml:"include-internal"`
}

// Default returns the configuration used when no polyglot.toml exists.
func Default() *Manifest {
	return &Manifest{
		Dispatch: Dispatch{CacheLimit: interop.DefaultCacheLimit},
		Export:   Export{MaxDepth: 32},
	}
}

// Load parses a polyglot.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if m.Export.MaxDepth <= 0 {
		m.Export.MaxDepth = 32
	}
	if _, err := m.Policy(); err != nil {
		return nil, fmt.Errorf("invalid capabilities in %s: %w", path, err)
	}

	return m, nil
}

// FindAndLoad walks up from startDir to find a polyglot.toml file, then
// loads and returns the manifest. Returns the defaults if no manifest is
// found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return Default(), nil
		}
		dir = parent
	}
}

// Policy builds the capability policy. Unknown category names are errors.
func (m *Manifest) Policy() (*interop.Policy, error) {
	p := interop.PermissivePolicy()
	if len(m.Capabilities.Allow) > 0 {
		allowed := make([]interop.Capability, 0, len(m.Capabilities.Allow))
		for _, name := range m.Capabilities.Allow {
			c, err := interop.ParseCapability(name)
			if err != nil {
				return nil, err
			}
			allowed = append(allowed, c)
		}
		p = interop.RestrictedPolicy(allowed...)
	}
	for _, name := range m.Capabilities.Deny {
		c, err := interop.ParseCapability(name)
		if err != nil {
			return nil, err
		}
		p.Deny(c)
	}
	return p, nil
}

// ConfigureLogging applies the [log] section to commonlog. A backend must
// already be installed.
func (m *Manifest) ConfigureLogging() {
	var path *string
	if m.Log.File != "" {
		file := m.Log.File
		if !filepath.IsAbs(file) && m.Dir != "" {
			file = filepath.Join(m.Dir, file)
		}
		path = &file
	}
	commonlog.Configure(m.Log.Verbosity, path)
}
