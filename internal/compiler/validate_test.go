package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strider/internal/workunit"
)

func TestValidateAnnotation(t *testing.T) {
	valid := []string{
		"int", "float", "bool", "str",
		"TeamMember", "Acc:float",
		"View1D:float64", "View2D:float64", "View3D:int32", "View10D:bool",
	}
	for _, tag := range valid {
		t.Run(tag, func(t *testing.T) {
			assert.True(t, ValidateAnnotation(tag))
		})
	}

	invalid := []string{
		"", "Int", "double", "View0D:float64", "View2D:complex128",
		"Acc:int", "View2D", "view2D:float64",
	}
	for _, tag := range invalid {
		t.Run("invalid_"+tag, func(t *testing.T) {
			assert.False(t, ValidateAnnotation(tag))
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	spec := workunit.Spec{
		Name: "w",
		Params: []workunit.Param{
			{Name: "i", Annotation: "int"},
			{Name: ""},
			{Name: "i"},
			{Name: "x", Annotation: "double"},
		},
	}

	errs := Validate(spec)
	require.Len(t, errs, 3)

	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Contains(t, codes, ErrParamNameEmpty)
	assert.Contains(t, codes, ErrDuplicateParam)
	assert.Contains(t, codes, ErrInvalidAnnotation)
}

func TestValidateCleanSpec(t *testing.T) {
	spec := workunit.Spec{
		Name: "saxpy",
		Params: []workunit.Param{
			{Name: "i", Annotation: "int"},
			{Name: "x", Annotation: "View1D:float64"},
			{Name: "scale"},
		},
	}
	assert.Empty(t, Validate(spec))
}

func TestValidationErrorFormatting(t *testing.T) {
	e := ValidationError{Field: "workunit.w", Message: "boom", Code: ErrDuplicateParam}
	assert.Equal(t, "[E103] workunit.w: boom", e.Error())

	e.Line = 7
	assert.Equal(t, "[E103] line 7: workunit.w: boom", e.Error())
}
