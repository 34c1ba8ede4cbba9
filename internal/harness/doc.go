// Package harness runs declarative dispatch scenarios for conformance
// testing.
//
// A scenario is a YAML file naming the workunits involved and a sequence
// of dispatch calls. Each call carries a tagged call tuple (str, int,
// float, bool, view, policy, workunit elements), optional keyword
// arguments, and an expect clause stating the plan fields or the dispatch
// error code the call must produce.
//
// Runs are deterministic: every scenario gets a fresh planner with a
// sequential token generator, a zero-based logical clock and an in-memory
// signature cache. RunGolden additionally snapshots the step results as
// pretty-printed JSON and compares them against checked-in golden files.
package harness
