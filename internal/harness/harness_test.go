package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intArg(n int64) ArgDef      { return ArgDef{Int: &n} }
func strArg(s string) ArgDef     { return ArgDef{Str: &s} }
func workunitArg(n string) ArgDef { return ArgDef{Workunit: n} }

func boolPtr(b bool) *bool { return &b }

func TestRunRangeForInt(t *testing.T) {
	s := &Scenario{
		Name: "range_for",
		Workunits: []WorkunitDef{
			{Name: "saxpy", Params: []ParamDef{{Name: "i"}}},
		},
		Calls: []CallStep{
			{
				Kind: "parallel_for",
				Args: []ArgDef{intArg(100), workunitArg("saxpy")},
			},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	require.True(t, result.Pass)
	require.Len(t, result.Steps, 1)

	step := result.Steps[0]
	assert.Equal(t, "parallel_for", step.Kind)
	assert.Equal(t, "saxpy", step.Workunit)
	assert.Equal(t, "RangePolicy", step.PolicyKind)
	assert.Equal(t, map[string]string{"i": "int"}, step.Annotations)
	assert.Equal(t, []string{"i"}, step.PolicyArgs)
	assert.Equal(t, "test-dispatch-1", step.Token)
	assert.Equal(t, int64(1), step.Seq)
	assert.False(t, step.CacheHit)
	assert.Empty(t, step.ErrorCode)
}

func TestRunExpectationMismatch(t *testing.T) {
	s := &Scenario{
		Name: "mismatch",
		Workunits: []WorkunitDef{
			{Name: "saxpy", Params: []ParamDef{{Name: "i"}}},
		},
		Calls: []CallStep{
			{
				Kind:   "parallel_for",
				Args:   []ArgDef{intArg(100), workunitArg("saxpy")},
				Expect: &ExpectClause{PolicyKind: "TeamPolicy"},
			},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "policy kind")
}

func TestRunExpectedDispatchError(t *testing.T) {
	s := &Scenario{
		Name: "arity",
		Workunits: []WorkunitDef{
			{Name: "noop", Params: []ParamDef{{Name: "i"}}},
		},
		Calls: []CallStep{
			{
				Kind:   "parallel_for",
				Args:   []ArgDef{intArg(1), intArg(2), intArg(3), intArg(4), workunitArg("noop")},
				Expect: &ExpectClause{ErrorCode: "BAD_ARITY"},
			},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	require.True(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "BAD_ARITY", result.Steps[0].ErrorCode)
	assert.Empty(t, result.Steps[0].Token)
}

func TestRunUnexpectedDispatchError(t *testing.T) {
	s := &Scenario{
		Name: "arity",
		Workunits: []WorkunitDef{
			{Name: "noop", Params: []ParamDef{{Name: "i"}}},
		},
		Calls: []CallStep{
			{
				Kind: "parallel_for",
				Args: []ArgDef{intArg(1), intArg(2), intArg(3), intArg(4), workunitArg("noop")},
			},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected dispatch error BAD_ARITY")
}

func TestRunCacheHitOnRepeat(t *testing.T) {
	call := CallStep{
		Kind: "parallel_for",
		Args: []ArgDef{intArg(64), workunitArg("saxpy")},
	}
	s := &Scenario{
		Name: "repeat",
		Workunits: []WorkunitDef{
			{Name: "saxpy", Params: []ParamDef{{Name: "i"}}},
		},
		Calls: []CallStep{call, call},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, result.Steps, 2)

	assert.False(t, result.Steps[0].CacheHit)
	assert.True(t, result.Steps[1].CacheHit)
	assert.Equal(t, "test-dispatch-2", result.Steps[1].Token)
	assert.Equal(t, int64(2), result.Steps[1].Seq)
}

func TestRunNamedReduceAccumulator(t *testing.T) {
	s := &Scenario{
		Name: "reduce",
		Workunits: []WorkunitDef{
			{Name: "sum_kernel", Params: []ParamDef{{Name: "i"}, {Name: "acc"}}},
		},
		Calls: []CallStep{
			{
				Kind: "parallel_reduce",
				Args: []ArgDef{
					strArg("sum"),
					{Policy: &PolicyDef{Range: &RangeDef{Begin: 0, End: 32}}},
					workunitArg("sum_kernel"),
				},
				Expect: &ExpectClause{
					Name:        "sum",
					PolicyKind:  "RangePolicy",
					Annotations: map[string]string{"i": "int", "acc": "Acc:float"},
					PolicyArgs:  []string{"acc", "i"},
					CacheHit:    boolPtr(false),
				},
			},
		},
	}

	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunUndeclaredWorkunitAborts(t *testing.T) {
	s := &Scenario{
		Name: "missing",
		Calls: []CallStep{
			{Kind: "parallel_for", Args: []ArgDef{intArg(10), workunitArg("ghost")}},
		},
	}

	_, err := Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}
