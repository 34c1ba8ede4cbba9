package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/strider/internal/workunit"
)

// CompileWorkunits parses every workunit declaration under the "workunit"
// struct of a CUE value. Uses the CUE SDK's Go API directly (not a CLI
// subprocess).
//
// Expected shape:
//
//	workunit: check_vis: {
//	    params: [
//	        {name: "i", type: "int"},
//	        {name: "scale"},
//	    ]
//	}
//
// A param without a type is unannotated; dispatch-time inference fills it in.
func CompileWorkunits(v cue.Value) ([]workunit.Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("workunit"))
	if !root.Exists() {
		return nil, &CompileError{
			Field:   "workunit",
			Message: "no workunit declarations found",
			Pos:     v.Pos(),
		}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var specs []workunit.Spec
	for iter.Next() {
		spec, err := CompileWorkunit(iter.Selector().Unquoted(), iter.Value())
		if err != nil {
			return nil, err
		}
		specs = append(specs, *spec)
	}

	if len(specs) == 0 {
		return nil, &CompileError{
			Field:   "workunit",
			Message: "at least one workunit is required",
			Pos:     root.Pos(),
		}
	}
	return specs, nil
}

// CompileWorkunit parses a single workunit declaration into a Spec.
func CompileWorkunit(name string, v cue.Value) (*workunit.Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &workunit.Spec{Name: name}

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if !paramsVal.Exists() {
		return nil, &CompileError{
			Field:   fmt.Sprintf("workunit.%s.params", name),
			Message: "params list is required (may be empty)",
			Pos:     v.Pos(),
		}
	}

	iter, err := paramsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for i := 0; iter.Next(); i++ {
		param, err := compileParam(name, i, iter.Value())
		if err != nil {
			return nil, err
		}
		spec.Params = append(spec.Params, param)
	}

	if err := spec.Validate(); err != nil {
		return nil, &CompileError{
			Field:   fmt.Sprintf("workunit.%s", name),
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return spec, nil
}

// compileParam parses one entry of a params list.
func compileParam(workunitName string, idx int, v cue.Value) (workunit.Param, error) {
	field := fmt.Sprintf("workunit.%s.params[%d]", workunitName, idx)

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return workunit.Param{}, &CompileError{
			Field:   field,
			Message: "param name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return workunit.Param{}, formatCUEError(err)
	}

	param := workunit.Param{Name: name}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if typeVal.Exists() {
		annotation, err := typeVal.String()
		if err != nil {
			return workunit.Param{}, formatCUEError(err)
		}
		param.Annotation = annotation
	}

	return param, nil
}

// CompileError represents a workunit compilation error with CUE position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return firstErr
}
