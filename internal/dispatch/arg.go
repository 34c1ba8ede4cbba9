package dispatch

import (
	"github.com/roach88/strider/internal/policy"
	"github.com/roach88/strider/internal/view"
	"github.com/roach88/strider/internal/workunit"
)

// Arg is one element of a dispatch call tuple.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern makes call-tuple classification an exhaustive
// type switch, replacing duck-typed probing of loose values.
//
// Arg types:
//   - Str: a dispatch label (first tuple position only)
//   - Int, Float, Bool: scalar values
//   - ViewArg: an n-dimensional view
//   - PolicyArg: an execution policy
//   - WorkunitArg: a workunit reference
type Arg interface {
	argNode() // Marker method - seals interface to this package
}

// Str is a string element, used for the optional dispatch name.
type Str string

func (Str) argNode() {}

// Int is an integer element: a bare range bound, an initial reduction
// value, or a trailing workunit argument.
type Int int64

func (Int) argNode() {}

// Float is a floating-point element: an initial reduction value or a
// trailing workunit argument.
type Float float64

func (Float) argNode() {}

// Bool is a boolean trailing workunit argument.
type Bool bool

func (Bool) argNode() {}

// ViewArg wraps a view passed at the call site.
type ViewArg struct {
	View *view.View
}

func (ViewArg) argNode() {}

// PolicyArg wraps an execution policy passed at the call site.
type PolicyArg struct {
	Policy policy.ExecutionPolicy
}

func (PolicyArg) argNode() {}

// WorkunitArg wraps a workunit reference passed at the call site.
type WorkunitArg struct {
	Spec workunit.Spec
}

func (WorkunitArg) argNode() {}

// isNumeric reports whether the element is a scalar int or float.
func isNumeric(a Arg) bool {
	switch a.(type) {
	case Int, Float:
		return true
	}
	return false
}

// Descriptor derives the type tag for a runtime value, used when inferring
// annotations for trailing workunit arguments. Views describe themselves as
// "View{rank}D:{dtype}"; scalars report their value type.
func Descriptor(a Arg) string {
	switch v := a.(type) {
	case ViewArg:
		return v.View.Descriptor()
	case Str:
		return "str"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case PolicyArg:
		return policy.KindOf(v.Policy)
	case WorkunitArg:
		return "workunit"
	default:
		return "unknown"
	}
}
