package workunit

import "fmt"

// Param is a workunit parameter descriptor: a name plus an optional
// declared type annotation. An empty Annotation means the author left the
// parameter untyped and inference must fill it in.
type Param struct {
	Name       string `json:"name"`
	Annotation string `json:"annotation,omitempty"`
}

// Annotated reports whether the parameter carries a declared annotation.
func (p Param) Annotated() bool {
	return p.Annotation != ""
}

// Spec is the explicit parameter-descriptor list for a workunit. It stands
// in for runtime callable introspection: the dispatch front end reads
// declared annotations from here instead of reflecting over a function.
type Spec struct {
	Name   string  `json:"name"`
	Params []Param `json:"params"`
}

// Validate checks structural invariants: non-empty name, non-empty unique
// parameter names.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("workunit name is required")
	}
	seen := make(map[string]bool, len(s.Params))
	for i, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("workunit %q: parameter %d has no name", s.Name, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("workunit %q: duplicate parameter %q", s.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
