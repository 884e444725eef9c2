package prompts

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds every version of each template, oldest first.
type Registry struct {
	mu       sync.RWMutex
	versions map[string][]*Prompt
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry holding couch's built-in templates.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{versions: make(map[string][]*Prompt)}
}

// Register adds a template version. Registering the same ID and version twice
// is an error.
func (r *Registry) Register(p *Prompt) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("prompt must have an ID")
	}
	if _, err := p.Version.parse(); err != nil {
		return fmt.Errorf("prompt %s: %w", p.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.versions[p.ID]
	for _, q := range existing {
		if q.Version == p.Version {
			return fmt.Errorf("prompt %s version %s already registered", p.ID, p.Version)
		}
	}
	existing = append(existing, p)
	sort.Slice(existing, func(i, j int) bool {
		return existing[i].Version.less(existing[j].Version)
	})
	r.versions[p.ID] = existing
	return nil
}

// Resolve returns the requested version of a template. LatestVersion picks
// the newest non-deprecated version, or the newest one if all are deprecated.
func (r *Registry) Resolve(id string, version PromptVersion) (*Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.versions[id]
	if len(versions) == 0 {
		return nil, fmt.Errorf("prompt not found: %s", id)
	}

	if version != LatestVersion {
		for _, p := range versions {
			if p.Version == version {
				return p, nil
			}
		}
		return nil, fmt.Errorf("prompt %s version %s not found", id, version)
	}

	for i := len(versions) - 1; i >= 0; i-- {
		if !versions[i].Deprecated {
			return versions[i], nil
		}
	}
	return versions[len(versions)-1], nil
}
