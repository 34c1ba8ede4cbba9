package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strider/internal/dispatch"
	"github.com/roach88/strider/internal/policy"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/reduce_accumulator.yaml")
	require.NoError(t, err)

	assert.Equal(t, "reduce_accumulator", s.Name)
	require.Len(t, s.Workunits, 1)
	assert.Equal(t, "sum_kernel", s.Workunits[0].Name)
	require.Len(t, s.Calls, 1)

	call := s.Calls[0]
	assert.Equal(t, "parallel_reduce", call.Kind)
	require.Len(t, call.Args, 3)
	require.NotNil(t, call.Args[0].Str)
	assert.Equal(t, "sum", *call.Args[0].Str)
	require.NotNil(t, call.Args[1].Policy)
	require.NotNil(t, call.Args[1].Policy.Range)
	assert.Equal(t, int64(64), call.Args[1].Policy.Range.End)
	assert.Equal(t, "sum_kernel", call.Args[2].Workunit)

	require.NotNil(t, call.Expect)
	assert.Equal(t, "Acc:float", call.Expect.Annotations["acc"])
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
}

func TestScenarioValidate(t *testing.T) {
	valid := func() *Scenario {
		return &Scenario{
			Name:  "ok",
			Calls: []CallStep{{Kind: "parallel_for", Args: []ArgDef{intArg(1)}}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr string
	}{
		{"valid", func(*Scenario) {}, ""},
		{"missing name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"no calls", func(s *Scenario) { s.Calls = nil }, "no calls"},
		{"bad kind", func(s *Scenario) { s.Calls[0].Kind = "parallel_frob" }, "unknown dispatch kind"},
		{"empty tuple", func(s *Scenario) { s.Calls[0].Args = nil }, "empty call tuple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestArgDefExactlyOne(t *testing.T) {
	n := int64(3)
	s := "x"

	_, err := ArgDef{}.toArg(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	_, err = ArgDef{Int: &n, Str: &s}.toArg(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestArgDefView(t *testing.T) {
	a, err := ArgDef{View: &ViewDef{Shape: []int{4, 4}, Dtype: "float64"}}.toArg(nil)
	require.NoError(t, err)

	va, ok := a.(dispatch.ViewArg)
	require.True(t, ok)
	assert.Equal(t, "View2D:float64", va.View.Descriptor())
}

func TestArgDefViewBadDtype(t *testing.T) {
	_, err := ArgDef{View: &ViewDef{Shape: []int{4}, Dtype: "complex128"}}.toArg(nil)
	require.Error(t, err)
}

func TestPolicyDefVariants(t *testing.T) {
	tests := []struct {
		name string
		def  PolicyDef
		want string
	}{
		{"range", PolicyDef{Range: &RangeDef{Begin: 0, End: 8}}, "RangePolicy"},
		{"team", PolicyDef{Team: &TeamDef{League: 4, Team: 8}}, "TeamPolicy"},
		{"team thread", PolicyDef{TeamThread: &TeamThreadDef{Count: 16}}, "TeamThreadRange"},
		{"md range", PolicyDef{MDRange: &MDRangeDef{Begin: []int64{0, 0}, End: []int64{4, 4}}}, "MDRangePolicy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.def.toPolicy()
			require.NoError(t, err)
			assert.Equal(t, tt.want, policy.KindOf(p))
		})
	}
}

func TestPolicyDefExactlyOne(t *testing.T) {
	_, err := PolicyDef{}.toPolicy()
	require.Error(t, err)

	_, err = PolicyDef{
		Range: &RangeDef{End: 8},
		Team:  &TeamDef{League: 2, Team: 2},
	}.toPolicy()
	require.Error(t, err)
}

func TestPolicyDefBadSpace(t *testing.T) {
	_, err := PolicyDef{Range: &RangeDef{End: 8}, Space: "CUDA"}.toPolicy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown execution space")
}
