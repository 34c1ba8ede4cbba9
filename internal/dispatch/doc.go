// Package dispatch implements call-site argument normalization and type
// inference for the parallel dispatch front end.
//
// The front end accepts loosely-shaped variadic call tuples in the style of
// pk.parallel_for(name?, policy, workunit, view-or-initial?). Two passes run
// per dispatch:
//
//  1. Unpack classifies the tuple into a CallRecord by arity and a fixed
//     element-type precedence (string, view, numeric). No backtracking.
//  2. Infer walks the workunit's parameter descriptors and fills missing
//     type annotations: policy slots from the policy shape, trailing slots
//     from the runtime values at the call site.
//
// Arguments are an explicit sealed union (Arg) rather than any-typed values,
// so classification is an exhaustive type switch instead of a chain of
// runtime type probes.
//
// Everything here is pure and synchronous: one pass per dispatch, no shared
// state, no suspension points. Failures surface as *DispatchError with a
// stable code; there is exactly one error taxonomy, including the
// internal-consistency case that is a programming defect rather than bad
// user input.
package dispatch
