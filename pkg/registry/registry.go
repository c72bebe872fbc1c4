package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/canopy"
)

// ErrSchemaNotFound is returned by Parse for an unregistered name.
var ErrSchemaNotFound = errors.New("schema not found")

// Registry manages named schemas.
// It is safe for concurrent use; the schemas themselves hold no per-call state.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*canopy.Root
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*canopy.Root),
	}
}

// Register adds a schema to the registry.
// If a schema with the same name exists, it is overwritten.
func (r *Registry) Register(name string, root *canopy.Root) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = root
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*canopy.Root, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	root, ok := r.schemas[name]
	return root, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse looks up a schema by name and parses data with it.
// Returns an error wrapping ErrSchemaNotFound if the schema is not found.
func (r *Registry) Parse(name string, data any) (any, []error, error) {
	root, ok := r.Lookup(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	value, errs := root.Parse(data)
	return value, errs, nil
}
