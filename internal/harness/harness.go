package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/strider/internal/cache"
	"github.com/roach88/strider/internal/dispatch"
	"github.com/roach88/strider/internal/planner"
	"github.com/roach88/strider/internal/testutil"
	"github.com/roach88/strider/internal/workunit"
)

// StepResult is the analyzed outcome of one call step. Exactly one of the
// plan fields or ErrorCode is populated.
type StepResult struct {
	Kind        string            `json:"kind"`
	Workunit    string            `json:"workunit,omitempty"`
	Name        string            `json:"name,omitempty"`
	PolicyKind  string            `json:"policy_kind,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
	PolicyArgs  []string          `json:"policy_args,omitempty"`
	Token       string            `json:"token,omitempty"`
	Seq         int64             `json:"seq,omitempty"`
	CacheHit    bool              `json:"cache_hit"`
	ErrorCode   string            `json:"error_code,omitempty"`
}

// Result collects the outcome of a scenario run.
type Result struct {
	Scenario string
	Pass     bool
	Steps    []StepResult
	Errors   []string
}

func (r *Result) addError(step int, format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf("step %d: %s", step, fmt.Sprintf(format, args...)))
}

// Options adjusts how a scenario runs. The zero value gives a fully
// deterministic run: sequential tokens, a zero-based clock and a fresh
// in-memory signature cache.
type Options struct {
	// Registry supplies workunit declarations beyond the scenario's inline
	// ones, for example compiled from CUE files. Inline declarations win on
	// name collisions.
	Registry *workunit.Registry

	// Cache overrides the in-memory signature cache. The caller owns its
	// lifecycle.
	Cache *cache.Cache

	// Tokens overrides the sequential token generator.
	Tokens planner.TokenGenerator
}

// Run executes every call in the scenario against a fresh deterministic
// planner and checks each step's expectations.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	return RunWith(ctx, s, Options{})
}

// RunWith executes the scenario with the given options.
func RunWith(ctx context.Context, s *Scenario, opts Options) (*Result, error) {
	reg, err := s.registry(opts.Registry)
	if err != nil {
		return nil, err
	}

	c := opts.Cache
	if c == nil {
		c, err = cache.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("open scenario cache: %w", err)
		}
		defer c.Close()
	}

	tokens := opts.Tokens
	if tokens == nil {
		tokens = testutil.NewSequentialTokenGenerator("")
	}

	p := planner.New(c, tokens, planner.NewClock())

	result := &Result{Scenario: s.Name}
	for i, call := range s.Calls {
		step, err := runCall(ctx, p, reg, call)
		if err != nil {
			return nil, fmt.Errorf("call %d: %w", i, err)
		}
		result.Steps = append(result.Steps, step)
		for _, msg := range checkExpect(step, call.Expect) {
			result.addError(i, "%s", msg)
		}
	}

	result.Pass = len(result.Errors) == 0
	return result, nil
}

// runCall analyzes one call step. Dispatch errors become part of the step
// result; anything else (a malformed arg definition, a cache failure)
// aborts the run.
func runCall(ctx context.Context, p *planner.Planner, reg *workunit.Registry, call CallStep) (StepResult, error) {
	args := make([]dispatch.Arg, 0, len(call.Args))
	for j, def := range call.Args {
		a, err := def.toArg(reg)
		if err != nil {
			return StepResult{}, fmt.Errorf("arg %d: %w", j, err)
		}
		args = append(args, a)
	}

	var kwargs map[string]dispatch.Arg
	if len(call.Kwargs) > 0 {
		kwargs = make(map[string]dispatch.Arg, len(call.Kwargs))
		for name, def := range call.Kwargs {
			a, err := def.toArg(reg)
			if err != nil {
				return StepResult{}, fmt.Errorf("kwarg %s: %w", name, err)
			}
			kwargs[name] = a
		}
	}

	kind := dispatch.Kind(call.Kind)
	plan, err := p.Plan(ctx, kind, args, kwargs)
	if err != nil {
		var de *dispatch.DispatchError
		if !errors.As(err, &de) {
			return StepResult{}, err
		}
		return StepResult{Kind: call.Kind, ErrorCode: string(de.Code)}, nil
	}

	return StepResult{
		Kind:        plan.Kind,
		Workunit:    plan.Workunit,
		Name:        plan.Name,
		PolicyKind:  plan.PolicyKind,
		Annotations: plan.Annotations,
		PolicyArgs:  plan.PolicyArgs,
		Token:       plan.Token,
		Seq:         plan.Seq,
		CacheHit:    plan.CacheHit,
	}, nil
}
