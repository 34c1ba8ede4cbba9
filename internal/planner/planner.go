package planner

import (
	"context"
	"fmt"

	"github.com/roach88/strider/internal/cache"
	"github.com/roach88/strider/internal/dispatch"
	"github.com/roach88/strider/internal/policy"
	"github.com/roach88/strider/internal/sig"
)

// Plan is the analyzed form of one parallel_* dispatch, ready for the
// kernel compiler. It records what would compile, not the compilation
// itself: execution and code generation stay out of scope.
type Plan struct {
	ID            string            `json:"id"`
	Token         string            `json:"token"`
	Kind          string            `json:"kind"`
	Name          string            `json:"name,omitempty"`
	Workunit      string            `json:"workunit"`
	PolicyKind    string            `json:"policy_kind"`
	SignatureHash string            `json:"signature_hash"`
	Annotations   map[string]string `json:"annotations,omitempty"`
	PolicyArgs    []string          `json:"policy_args,omitempty"`
	Seq           int64             `json:"seq"`
	CacheHit      bool              `json:"cache_hit"`
}

// Planner runs the call-shape analysis pipeline for each dispatch:
// unpack, infer, compute the kernel signature, probe the cache, and
// stamp the resulting plan with a token and logical seq.
//
// The analysis itself is pure; the cache write is the only side effect.
// A nil cache disables persistence (every plan reports a cache miss).
type Planner struct {
	cache  *cache.Cache
	tokens TokenGenerator
	clock  *Clock
}

// New creates a Planner. cache may be nil for analysis-only use.
func New(c *cache.Cache, tokens TokenGenerator, clock *Clock) *Planner {
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	if clock == nil {
		clock = NewClock()
	}
	return &Planner{cache: c, tokens: tokens, clock: clock}
}

// Plan analyzes one dispatch call tuple.
//
// The annotation map in the resulting plan merges declared parameter
// annotations with inferred ones, so the signature covers the workunit's
// complete type shape. Inference returning nothing (fully annotated
// workunit) is not an error; the plan simply carries only declared types.
func (p *Planner) Plan(ctx context.Context, kind dispatch.Kind, args []dispatch.Arg, kwargs map[string]dispatch.Arg) (*Plan, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown dispatch kind %q", kind)
	}

	rec, err := dispatch.Unpack(kind, args)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", kind, err)
	}

	inferred, err := dispatch.Infer(kind, rec, args, kwargs)
	if err != nil {
		return nil, fmt.Errorf("infer %s: %w", kind, err)
	}

	annotations := make(map[string]string, len(rec.Workunit.Params))
	for _, param := range rec.Workunit.Params {
		if param.Annotated() {
			annotations[param.Name] = param.Annotation
		}
	}
	var policyArgs []string
	if inferred != nil {
		for _, ip := range inferred.Inferred {
			annotations[ip.Param] = ip.Descriptor
		}
		for _, ip := range inferred.Inferred {
			if inferred.PolicyArgs[ip.Param] {
				policyArgs = append(policyArgs, ip.Param)
			}
		}
	}

	policyKind := policy.KindOf(rec.Policy)
	signature, err := sig.KernelSignature(string(kind), rec.Workunit.Name, policyKind, annotations)
	if err != nil {
		return nil, fmt.Errorf("signature for %s: %w", rec.Workunit.Name, err)
	}

	seq := p.clock.Next()
	token := p.tokens.Generate()

	planID, err := sig.PlanID(token, signature, seq)
	if err != nil {
		return nil, fmt.Errorf("plan id: %w", err)
	}

	plan := &Plan{
		ID:            planID,
		Token:         token,
		Kind:          string(kind),
		Name:          rec.Name,
		Workunit:      rec.Workunit.Name,
		PolicyKind:    policyKind,
		SignatureHash: signature,
		Annotations:   annotations,
		PolicyArgs:    policyArgs,
		Seq:           seq,
	}

	if p.cache != nil {
		inserted, err := p.cache.WriteKernel(ctx, cache.KernelRecord{
			SignatureHash: signature,
			Kind:          string(kind),
			Workunit:      rec.Workunit.Name,
			PolicyKind:    policyKind,
			Annotations:   annotations,
			Seq:           seq,
		})
		if err != nil {
			return nil, fmt.Errorf("cache kernel: %w", err)
		}
		plan.CacheHit = !inserted
	}

	return plan, nil
}
