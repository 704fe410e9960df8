package module

import (
	"sync"

	perr "namematch/internal/platform/errors"
)

// Registry maps module names to the ports they provide. The zero value is not
// usable; a nil *Registry behaves as empty
type Registry struct {
	mu    sync.RWMutex
	ports map[string]any
	names []string
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{ports: map[string]any{}}
}

// Add records m's ports under m.Name(). Names are unique
func (r *Registry) Add(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := m.Name()
	if _, dup := r.ports[name]; dup {
		return perr.WithField(perr.InvalidArgf("module %q registered twice", name), "name")
	}
	r.ports[name] = m.Ports()
	r.names = append(r.names, name)
	return nil
}

// Names lists registered modules in registration order
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// PortsAs fetches the ports registered under name as T
func PortsAs[T any](r *Registry, name string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	r.mu.RLock()
	v, ok := r.ports[name]
	r.mu.RUnlock()
	if !ok {
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}
