package polyglot

import (
	"fmt"

	"github.com/chazu/polyglot/manifest"
)

// FromManifest returns the options described by a polyglot.toml manifest.
// A nil manifest yields the defaults.
func FromManifest(m *manifest.Manifest) ([]Option, error) {
	if m == nil {
		m = manifest.Default()
	}
	policy, err := m.Policy()
	if err != nil {
		return nil, fmt.Errorf("invalid capabilities: %w", err)
	}
	return []Option{
		WithCacheLimit(m.Dispatch.CacheLimit),
		WithPolicy(policy),
	}, nil
}
