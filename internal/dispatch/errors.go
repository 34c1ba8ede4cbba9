package dispatch

import (
	"errors"
	"fmt"
)

// DispatchError represents a failure during call-shape analysis.
//
// Dispatch errors include:
//   - Bad argument: an element of the call tuple has an unexpected kind
//   - Bad arity: the call tuple has an unsupported length
//   - Unsupported policy: inference requested for an unknown policy variant
//   - Arg count mismatch: workunit parameters and call-site values disagree
//
// The last category is an internal-consistency defect, not user input
// validation, but it shares this taxonomy so callers handle one error shape.
type DispatchError struct {
	// Code identifies the error category.
	Code DispatchErrorCode

	// Message is a human-readable description.
	Message string

	// Workunit names the workunit involved, when known.
	Workunit string
}

// DispatchErrorCode categorizes dispatch errors.
type DispatchErrorCode string

const (
	// ErrCodeBadArgument indicates a call-tuple element of the wrong kind.
	ErrCodeBadArgument DispatchErrorCode = "BAD_ARGUMENT"

	// ErrCodeBadArity indicates an unsupported call-tuple length.
	ErrCodeBadArity DispatchErrorCode = "BAD_ARITY"

	// ErrCodeUnsupportedPolicy indicates annotation inference was requested
	// for a policy variant it does not understand.
	ErrCodeUnsupportedPolicy DispatchErrorCode = "UNSUPPORTED_POLICY"

	// ErrCodeArgCountMismatch indicates the count of unannotated workunit
	// parameters does not match the call-site values. This is a programming
	// contract violation, not recoverable input validation.
	ErrCodeArgCountMismatch DispatchErrorCode = "ARG_COUNT_MISMATCH"
)

// Error implements the error interface.
func (e *DispatchError) Error() string {
	if e.Workunit != "" {
		return fmt.Sprintf("%s: %s (workunit=%s)", e.Code, e.Message, e.Workunit)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsBadArgument reports whether err is a BAD_ARGUMENT dispatch error.
// Uses errors.As to handle wrapped errors.
func IsBadArgument(err error) bool {
	return hasCode(err, ErrCodeBadArgument)
}

// IsBadArity reports whether err is a BAD_ARITY dispatch error.
func IsBadArity(err error) bool {
	return hasCode(err, ErrCodeBadArity)
}

// IsUnsupportedPolicy reports whether err is an UNSUPPORTED_POLICY dispatch error.
func IsUnsupportedPolicy(err error) bool {
	return hasCode(err, ErrCodeUnsupportedPolicy)
}

// IsArgCountMismatch reports whether err is an ARG_COUNT_MISMATCH dispatch error.
func IsArgCountMismatch(err error) bool {
	return hasCode(err, ErrCodeArgCountMismatch)
}

func hasCode(err error, code DispatchErrorCode) bool {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// newBadArgument creates a BAD_ARGUMENT error.
func newBadArgument(format string, args ...any) *DispatchError {
	return &DispatchError{
		Code:    ErrCodeBadArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// newBadArity creates a BAD_ARITY error.
func newBadArity(got int) *DispatchError {
	return &DispatchError{
		Code:    ErrCodeBadArity,
		Message: fmt.Sprintf("incorrect number of arguments %d (want 2-4)", got),
	}
}

// newUnsupportedPolicy creates an UNSUPPORTED_POLICY error.
func newUnsupportedPolicy(workunit, policyKind string) *DispatchError {
	return &DispatchError{
		Code:     ErrCodeUnsupportedPolicy,
		Message:  fmt.Sprintf("automatic annotations not supported for policy %s", policyKind),
		Workunit: workunit,
	}
}

// newArgCountMismatch creates an ARG_COUNT_MISMATCH error.
func newArgCountMismatch(workunit string, wantParams, gotValues int) *DispatchError {
	return &DispatchError{
		Code:     ErrCodeArgCountMismatch,
		Message:  fmt.Sprintf("unannotated argument count mismatch: %d parameters != %d values", wantParams, gotValues),
		Workunit: workunit,
	}
}
