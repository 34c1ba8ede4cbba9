package dispatch

import (
	"github.com/roach88/strider/internal/policy"
)

// AccumulatorType is the default annotation for the trailing accumulator
// slot of a parallel_reduce workunit.
const AccumulatorType = "Acc:float"

// TeamMemberType is the annotation for the team-member handle passed to
// TeamPolicy workunits.
const TeamMemberType = "TeamMember"

// InferredParam is one inferred annotation, in workunit parameter order.
type InferredParam struct {
	Param      string `json:"param"`
	Descriptor string `json:"descriptor"`
}

// Annotations is the result of type inference over a workunit's parameters.
// Constructed fresh per dispatch and consumed immediately by the compilation
// front end; never persisted between calls.
type Annotations struct {
	// Workunit names the workunit the annotations belong to.
	Workunit string `json:"workunit"`

	// Inferred holds param -> descriptor pairs in parameter order.
	Inferred []InferredParam `json:"inferred"`

	// PolicyArgs holds the names of parameters classified as policy
	// arguments, as opposed to user-supplied trailing arguments.
	PolicyArgs map[string]bool `json:"policy_args"`
}

// Lookup returns the inferred descriptor for a parameter name.
func (a *Annotations) Lookup(param string) (string, bool) {
	for _, ip := range a.Inferred {
		if ip.Param == param {
			return ip.Descriptor, true
		}
	}
	return "", false
}

// add records an inferred descriptor, overriding an earlier entry for the
// same parameter (the reduce accumulator overrides policy-derived types).
func (a *Annotations) add(param, descriptor string, policyArg bool) {
	for i := range a.Inferred {
		if a.Inferred[i].Param == param {
			a.Inferred[i].Descriptor = descriptor
			if policyArg {
				a.PolicyArgs[param] = true
			}
			return
		}
	}
	a.Inferred = append(a.Inferred, InferredParam{Param: param, Descriptor: descriptor})
	if policyArg {
		a.PolicyArgs[param] = true
	}
}

// Infer fills in missing type annotations for a workunit's parameters.
//
// The leading parameters are policy slots: one for RangePolicy,
// TeamThreadRange and TeamPolicy, the range dimensionality for
// MDRangePolicy, plus one accumulator slot for parallel_reduce. Unannotated
// policy slots get a type derived from the policy shape; the accumulator
// slot always gets AccumulatorType, overriding any policy-derived type.
//
// Remaining parameters are user-supplied trailing arguments. Keyword
// arguments are folded onto the positional list first, then each
// unannotated parameter takes the descriptor of the raw value at its
// position. rawArgs is the original call tuple, so positions are offset by
// the fixed name/policy/workunit slots: 3 when a name was supplied, else 2.
//
// Returns nil (with nil error) when nothing needed inferring - either every
// parameter was already annotated, or there was nothing to annotate.
func Infer(kind Kind, rec CallRecord, rawArgs []Arg, kwargs map[string]Arg) (*Annotations, error) {
	params := rec.Workunit.Params

	result := &Annotations{
		Workunit:   rec.Workunit.Name,
		PolicyArgs: make(map[string]bool),
	}

	policyParams := 1
	if md, ok := rec.Policy.(policy.MDRangePolicy); ok {
		policyParams = md.Dims()
	}
	if kind == ParallelReduce {
		policyParams++ // accumulator slot
	}

	if policyParams > len(params) {
		return nil, newArgCountMismatch(rec.Workunit.Name, len(params), policyParams)
	}

	for i := 0; i < policyParams; i++ {
		param := params[i]
		if param.Annotated() {
			continue
		}

		switch pol := rec.Policy.(type) {
		case policy.RangePolicy, policy.TeamThreadRange:
			// Only the first slot is a policy index.
			if i == 0 {
				result.add(param.Name, "int", true)
			}
		case policy.TeamPolicy:
			if i == 0 {
				result.add(param.Name, TeamMemberType, true)
			}
		case policy.MDRangePolicy:
			if i < pol.Dims() {
				result.add(param.Name, "int", true)
			}
		default:
			return nil, newUnsupportedPolicy(rec.Workunit.Name, policy.KindOf(rec.Policy))
		}

		// The last policy slot of a parallel_reduce is always the
		// accumulator, regardless of the policy-derived type.
		if i == policyParams-1 && kind == ParallelReduce {
			result.add(param.Name, AccumulatorType, true)
		}
	}

	if len(params) == policyParams {
		if len(result.Inferred) == 0 {
			return nil, nil
		}
		return result, nil
	}

	// Fold keyword arguments onto the positional list so trailing
	// parameters index uniformly by position.
	argsList := append([]Arg(nil), rawArgs...)
	if len(kwargs) > 0 {
		for _, param := range params[policyParams:] {
			if val, ok := kwargs[param.Name]; ok {
				argsList = append(argsList, val)
			}
		}
	}

	// Fixed slots consumed by name/policy/workunit in the raw call tuple.
	valueOffset := 2
	if rec.Name != "" {
		valueOffset = 3
	}

	wantParams := len(params) - policyParams
	gotValues := len(argsList) - valueOffset
	if wantParams != gotValues {
		return nil, newArgCountMismatch(rec.Workunit.Name, wantParams, gotValues)
	}

	for i := policyParams; i < len(params); i++ {
		param := params[i]
		if param.Annotated() {
			continue
		}
		value := argsList[valueOffset+i-policyParams]
		result.add(param.Name, Descriptor(value), false)
	}

	if len(result.Inferred) == 0 {
		return nil, nil
	}
	return result, nil
}
