package dispatch

// Kind tags the flavor of parallel dispatch being analyzed.
type Kind string

const (
	// ParallelFor is a plain parallel iteration.
	ParallelFor Kind = "parallel_for"

	// ParallelReduce is a parallel reduction; its workunit carries a
	// trailing accumulator slot after the policy indices.
	ParallelReduce Kind = "parallel_reduce"

	// ParallelScan is a parallel prefix scan.
	ParallelScan Kind = "parallel_scan"
)

// Valid reports whether the kind is a known dispatch flavor.
func (k Kind) Valid() bool {
	switch k {
	case ParallelFor, ParallelReduce, ParallelScan:
		return true
	}
	return false
}

// IsFor reports whether the kind accepts a trailing output view.
// Only parallel_for calls take a view in the last tuple position.
func (k Kind) IsFor() bool {
	return k == ParallelFor
}
