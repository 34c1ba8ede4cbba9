package testutil

import (
	"fmt"
	"sync"
)

// SequentialTokenGenerator generates predictable dispatch tokens for tests:
// "<prefix>-1", "<prefix>-2", ...
//
// Unlike planner.FixedGenerator, which needs the full token list up front
// and panics on exhaustion, this generator never runs out. Scenario runners
// use it so plan snapshots stay byte-identical regardless of how many
// dispatches a scenario makes.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialTokenGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialTokenGenerator creates a generator with the given prefix.
// An empty prefix defaults to "test-dispatch".
func NewSequentialTokenGenerator(prefix string) *SequentialTokenGenerator {
	if prefix == "" {
		prefix = "test-dispatch"
	}
	return &SequentialTokenGenerator{prefix: prefix}
}

// Generate returns the next token in the sequence.
func (g *SequentialTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
