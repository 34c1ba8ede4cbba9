package view

import (
	"fmt"
	"strconv"
)

// DType identifies the element type of a view.
type DType string

const (
	Float64 DType = "float64"
	Float32 DType = "float32"
	Int64   DType = "int64"
	Int32   DType = "int32"
	Bool    DType = "bool"
)

// Valid reports whether the dtype is a known element type.
func (d DType) Valid() bool {
	switch d {
	case Float64, Float32, Int64, Int32, Bool:
		return true
	}
	return false
}

// View is an n-dimensional array descriptor with a dense backing buffer.
//
// The front end only inspects shape, rank and dtype; element storage exists
// so tests and the harness can construct real call arguments. Layout and
// memory-space concerns belong to the execution backend, not here.
type View struct {
	shape []int
	dtype DType

	// Dense row-major storage. Only the buffer matching dtype is non-nil.
	f64 []float64
	i64 []int64
}

// New allocates a view with the given shape and dtype.
func New(shape []int, dtype DType) (*View, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("view requires at least one dimension")
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("unknown view dtype %q", dtype)
	}

	n := 1
	for i, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("view dimension %d is negative: %d", i, dim)
		}
		n *= dim
	}

	v := &View{shape: append([]int(nil), shape...), dtype: dtype}
	switch dtype {
	case Float64, Float32:
		v.f64 = make([]float64, n)
	default:
		v.i64 = make([]int64, n)
	}
	return v, nil
}

// Rank returns the number of dimensions.
func (v *View) Rank() int {
	return len(v.shape)
}

// Shape returns the per-dimension extents.
func (v *View) Shape() []int {
	return v.shape
}

// Len returns the total element count.
func (v *View) Len() int {
	n := 1
	for _, dim := range v.shape {
		n *= dim
	}
	return n
}

// DType returns the element type.
func (v *View) DType() DType {
	return v.dtype
}

// Descriptor returns the type tag used by annotation inference,
// e.g. "View2D:float64".
func (v *View) Descriptor() string {
	return "View" + strconv.Itoa(v.Rank()) + "D:" + string(v.dtype)
}

// Float64Data returns the dense float64 buffer, or nil for integer views.
func (v *View) Float64Data() []float64 {
	return v.f64
}

// Int64Data returns the dense int64 buffer, or nil for float views.
func (v *View) Int64Data() []int64 {
	return v.i64
}
