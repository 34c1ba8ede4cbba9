package workunit

import (
	"fmt"
	"sort"
)

// Registry holds workunit specs by name. The compiler fills it from CUE
// declarations; the dispatch front end and harness look workunits up by name.
//
// Registry is not safe for concurrent mutation; populate it during loading,
// then treat it as read-only.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a spec, rejecting duplicates and invalid specs.
func (r *Registry) Register(s Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, exists := r.specs[s.Name]; exists {
		return fmt.Errorf("workunit %q already registered", s.Name)
	}
	r.specs[s.Name] = s
	return nil
}

// Lookup returns the spec for a name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Names returns all registered workunit names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered workunits.
func (r *Registry) Len() int {
	return len(r.specs)
}
