package plugin

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Registry holds extensions in registration order, which is also the
// order their hooks run in.
type Registry struct {
	mu         sync.RWMutex
	extensions []Extension
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends ext. Names must be unique.
func (r *Registry) Register(ext Extension) error {
	if ext == nil {
		return errors.New("register: nil extension")
	}
	meta := ext.Metadata()
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("register %q: %w", meta.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.extensions {
		if existing.Metadata().Name == meta.Name {
			return fmt.Errorf("register %q: already registered as %s", meta.Name, existing.Metadata())
		}
	}
	r.extensions = append(r.extensions, ext)
	return nil
}

// Extensions returns a snapshot of the registered extensions.
func (r *Registry) Extensions() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.extensions)
}

// Lookup returns the extension registered under name.
func (r *Registry) Lookup(name string) (Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := slices.IndexFunc(r.extensions, func(e Extension) bool { return e.Metadata().Name == name })
	if i < 0 {
		return nil, false
	}
	return r.extensions[i], true
}
