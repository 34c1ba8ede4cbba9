package dispatch

import (
	"strconv"

	"github.com/roach88/strider/internal/policy"
	"github.com/roach88/strider/internal/view"
	"github.com/roach88/strider/internal/workunit"
)

// Scalar is a tagged numeric value: either an int64 or a float64.
// The zero value is the integer 0, which is the default initial value
// for reductions.
type Scalar struct {
	IsFloat bool
	Int     int64
	Float   float64
}

// IntScalar creates an integer Scalar.
func IntScalar(n int64) Scalar {
	return Scalar{Int: n}
}

// FloatScalar creates a floating-point Scalar.
func FloatScalar(f float64) Scalar {
	return Scalar{IsFloat: true, Float: f}
}

// String formats the scalar for diagnostics and snapshots.
func (s Scalar) String() string {
	if s.IsFloat {
		return strconv.FormatFloat(s.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(s.Int, 10)
}

// CallRecord is the canonical form of a dispatch call tuple.
//
// Unpack always resolves Policy to a concrete variant before returning;
// in particular a bare integer N at the policy position becomes a
// RangePolicy over [0, N) on the default execution space.
type CallRecord struct {
	// Name is the optional dispatch label. Empty means no name was given.
	Name string

	// Policy is the resolved execution policy.
	Policy policy.ExecutionPolicy

	// Workunit is the referenced workunit's parameter descriptor list.
	Workunit workunit.Spec

	// View is the optional output view (parallel_for only). Nil when absent.
	View *view.View

	// Initial is the initial reduction value. Defaults to integer 0.
	Initial Scalar
}
