package space

import (
	"fmt"
	"sync"
)

// ExecutionSpace identifies where a kernel would execute.
//
// The front end only needs spaces as opaque tags: integer policies are
// wrapped onto the default space, and policies carry their space through
// to the (out of scope) execution backend.
type ExecutionSpace string

const (
	// Serial executes workunits on the calling goroutine.
	Serial ExecutionSpace = "Serial"

	// Goroutines executes workunits on a goroutine pool.
	Goroutines ExecutionSpace = "Goroutines"
)

// Valid reports whether the space is a known execution space.
func (s ExecutionSpace) Valid() bool {
	return s == Serial || s == Goroutines
}

var (
	mu           sync.RWMutex
	defaultSpace = Goroutines
)

// Default returns the process-wide default execution space.
// Integer range policies are wrapped onto this space.
func Default() ExecutionSpace {
	mu.RLock()
	defer mu.RUnlock()
	return defaultSpace
}

// SetDefault changes the process-wide default execution space.
// Returns an error for unknown spaces.
func SetDefault(s ExecutionSpace) error {
	if !s.Valid() {
		return fmt.Errorf("unknown execution space %q", s)
	}
	mu.Lock()
	defer mu.Unlock()
	defaultSpace = s
	return nil
}
