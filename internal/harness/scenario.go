package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/strider/internal/dispatch"
	"github.com/roach88/strider/internal/policy"
	"github.com/roach88/strider/internal/space"
	"github.com/roach88/strider/internal/view"
	"github.com/roach88/strider/internal/workunit"
)

// Scenario is a declarative description of one dispatch sequence: the
// workunits it references and the calls to analyze, each with optional
// expectations about the resulting plan or error.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Workunits   []WorkunitDef `yaml:"workunits"`
	Calls       []CallStep    `yaml:"calls"`
}

// WorkunitDef declares a workunit inline in the scenario.
type WorkunitDef struct {
	Name   string     `yaml:"name"`
	Params []ParamDef `yaml:"params"`
}

// ParamDef is one workunit parameter, optionally annotated.
type ParamDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// CallStep is one dispatch call: its kind, the positional call tuple,
// optional keyword arguments, and what the plan should look like.
type CallStep struct {
	Kind   string            `yaml:"kind"`
	Args   []ArgDef          `yaml:"args"`
	Kwargs map[string]ArgDef `yaml:"kwargs,omitempty"`
	Expect *ExpectClause     `yaml:"expect,omitempty"`
}

// ArgDef is a tagged call-tuple element. Exactly one field must be set.
type ArgDef struct {
	Str      *string    `yaml:"str,omitempty"`
	Int      *int64     `yaml:"int,omitempty"`
	Float    *float64   `yaml:"float,omitempty"`
	Bool     *bool      `yaml:"bool,omitempty"`
	View     *ViewDef   `yaml:"view,omitempty"`
	Policy   *PolicyDef `yaml:"policy,omitempty"`
	Workunit string     `yaml:"workunit,omitempty"`
}

// ViewDef describes a view argument by shape and element type.
type ViewDef struct {
	Shape []int  `yaml:"shape"`
	Dtype string `yaml:"dtype"`
}

// PolicyDef is a tagged execution policy. Exactly one variant must be set.
// Space is optional and defaults to the process-wide default space.
type PolicyDef struct {
	Range      *RangeDef      `yaml:"range,omitempty"`
	Team       *TeamDef       `yaml:"team,omitempty"`
	TeamThread *TeamThreadDef `yaml:"team_thread,omitempty"`
	MDRange    *MDRangeDef    `yaml:"md_range,omitempty"`
	Space      string         `yaml:"space,omitempty"`
}

// RangeDef is a 1-D index range [Begin, End).
type RangeDef struct {
	Begin int64 `yaml:"begin"`
	End   int64 `yaml:"end"`
}

// TeamDef is a league of thread teams.
type TeamDef struct {
	League int `yaml:"league"`
	Team   int `yaml:"team"`
}

// TeamThreadDef is a nested per-team range [0, Count).
type TeamThreadDef struct {
	Count int64 `yaml:"count"`
}

// MDRangeDef is a multidimensional index range.
type MDRangeDef struct {
	Begin []int64 `yaml:"begin"`
	End   []int64 `yaml:"end"`
}

// ExpectClause states what a call step should produce. Zero-valued fields
// are not checked. ErrorCode set means the call must fail with that code;
// unset means it must succeed.
type ExpectClause struct {
	Name        string            `yaml:"name,omitempty"`
	PolicyKind  string            `yaml:"policy_kind,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
	PolicyArgs  []string          `yaml:"policy_args,omitempty"`
	CacheHit    *bool             `yaml:"cache_hit,omitempty"`
	ErrorCode   string            `yaml:"error_code,omitempty"`
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks structural requirements before the scenario runs.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Calls) == 0 {
		return fmt.Errorf("scenario has no calls")
	}
	for i, call := range s.Calls {
		if !dispatch.Kind(call.Kind).Valid() {
			return fmt.Errorf("call %d: unknown dispatch kind %q", i, call.Kind)
		}
		if len(call.Args) == 0 {
			return fmt.Errorf("call %d: empty call tuple", i)
		}
	}
	return nil
}

// registry builds a workunit registry from the scenario's inline
// declarations, backfilled from base for names the scenario does not
// declare itself.
func (s *Scenario) registry(base *workunit.Registry) (*workunit.Registry, error) {
	reg := workunit.NewRegistry()
	for _, def := range s.Workunits {
		spec := workunit.Spec{Name: def.Name}
		for _, p := range def.Params {
			spec.Params = append(spec.Params, workunit.Param{Name: p.Name, Annotation: p.Type})
		}
		if err := reg.Register(spec); err != nil {
			return nil, fmt.Errorf("workunit %s: %w", def.Name, err)
		}
	}
	if base != nil {
		for _, name := range base.Names() {
			if _, ok := reg.Lookup(name); ok {
				continue
			}
			spec, _ := base.Lookup(name)
			if err := reg.Register(spec); err != nil {
				return nil, fmt.Errorf("workunit %s: %w", name, err)
			}
		}
	}
	return reg, nil
}

// toArg converts a tagged YAML element into a call-tuple value.
func (a ArgDef) toArg(reg *workunit.Registry) (dispatch.Arg, error) {
	set := 0
	if a.Str != nil {
		set++
	}
	if a.Int != nil {
		set++
	}
	if a.Float != nil {
		set++
	}
	if a.Bool != nil {
		set++
	}
	if a.View != nil {
		set++
	}
	if a.Policy != nil {
		set++
	}
	if a.Workunit != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("arg must set exactly one of str/int/float/bool/view/policy/workunit, got %d", set)
	}

	switch {
	case a.Str != nil:
		return dispatch.Str(*a.Str), nil
	case a.Int != nil:
		return dispatch.Int(*a.Int), nil
	case a.Float != nil:
		return dispatch.Float(*a.Float), nil
	case a.Bool != nil:
		return dispatch.Bool(*a.Bool), nil
	case a.View != nil:
		v, err := view.New(a.View.Shape, view.DType(a.View.Dtype))
		if err != nil {
			return nil, fmt.Errorf("view arg: %w", err)
		}
		return dispatch.ViewArg{View: v}, nil
	case a.Policy != nil:
		p, err := a.Policy.toPolicy()
		if err != nil {
			return nil, err
		}
		return dispatch.PolicyArg{Policy: p}, nil
	default:
		spec, ok := reg.Lookup(a.Workunit)
		if !ok {
			return nil, fmt.Errorf("workunit %q is not declared in the scenario", a.Workunit)
		}
		return dispatch.WorkunitArg{Spec: spec}, nil
	}
}

// toPolicy converts a tagged YAML policy into an execution policy.
func (d PolicyDef) toPolicy() (policy.ExecutionPolicy, error) {
	sp := space.Default()
	if d.Space != "" {
		sp = space.ExecutionSpace(d.Space)
		if !sp.Valid() {
			return nil, fmt.Errorf("unknown execution space %q", d.Space)
		}
	}

	set := 0
	if d.Range != nil {
		set++
	}
	if d.Team != nil {
		set++
	}
	if d.TeamThread != nil {
		set++
	}
	if d.MDRange != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("policy must set exactly one of range/team/team_thread/md_range, got %d", set)
	}

	switch {
	case d.Range != nil:
		return policy.NewRangePolicy(sp, d.Range.Begin, d.Range.End)
	case d.Team != nil:
		return policy.NewTeamPolicy(sp, d.Team.League, d.Team.Team)
	case d.TeamThread != nil:
		return policy.NewTeamThreadRange(d.TeamThread.Count)
	default:
		return policy.NewMDRangePolicy(sp, d.MDRange.Begin, d.MDRange.End)
	}
}
