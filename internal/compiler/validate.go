package compiler

import (
	"fmt"
	"regexp"

	"github.com/roach88/strider/internal/workunit"
)

// Validation error codes (E100-E199)
const (
	ErrWorkunitNameEmpty = "E101" // workunit name is required
	ErrParamNameEmpty    = "E102" // param name is required
	ErrDuplicateParam    = "E103" // duplicate param name
	ErrInvalidAnnotation = "E104" // annotation is not a recognized type tag
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// annotationPattern matches the type tags the kernel front end understands:
// scalars, the team-member handle, the reduce accumulator, and view
// descriptors like View2D:float64.
var annotationPattern = regexp.MustCompile(
	`^(int|float|bool|str|TeamMember|Acc:float|View[1-9][0-9]*D:(float64|float32|int64|int32|bool))$`)

// ValidateAnnotation reports whether a declared type tag is recognized.
func ValidateAnnotation(annotation string) bool {
	return annotationPattern.MatchString(annotation)
}

// Validate checks a compiled workunit against schema rules.
// Returns all errors found (does not fail fast). Structural checks
// (empty names, duplicates) overlap with workunit.Spec.Validate but report
// coded errors suitable for CLI output.
func Validate(spec workunit.Spec) []ValidationError {
	var errs []ValidationError

	if spec.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "workunit",
			Message: "workunit name is required",
			Code:    ErrWorkunitNameEmpty,
		})
	}

	seen := make(map[string]bool, len(spec.Params))
	for i, p := range spec.Params {
		field := fmt.Sprintf("workunit.%s.params[%d]", spec.Name, i)
		if p.Name == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "param name is required",
				Code:    ErrParamNameEmpty,
			})
			continue
		}
		if seen[p.Name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate param %q", p.Name),
				Code:    ErrDuplicateParam,
			})
		}
		seen[p.Name] = true

		if p.Annotation != "" && !ValidateAnnotation(p.Annotation) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unrecognized type tag %q", p.Annotation),
				Code:    ErrInvalidAnnotation,
			})
		}
	}

	return errs
}
