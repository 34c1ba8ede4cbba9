// Package cache persists inferred kernel signatures in SQLite.
//
// The planner computes a content-addressed signature hash for every
// dispatch (kind, workunit, policy variant, full annotation map) and writes
// it here. A signature that is already present means the same kernel shape
// was planned before and the downstream compiler can reuse its output, so
// the write doubles as the cache-hit probe.
//
// Writes are idempotent (INSERT OR IGNORE keyed on the signature hash) and
// reads are ordered deterministically so listings are stable across runs.
package cache
