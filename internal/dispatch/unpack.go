package dispatch

import (
	"github.com/roach88/strider/internal/policy"
	"github.com/roach88/strider/internal/space"
)

// Unpack classifies a 2-4 element dispatch call tuple into a CallRecord.
//
// Contract by arity:
//   - 2: (policy, workunit)
//   - 3: string first -> (name, policy, workunit);
//     else view last (parallel_for only) -> (policy, workunit, view);
//     else numeric last -> (policy, workunit, initial value)
//   - 4: string first required -> (name, policy, workunit, view-or-initial)
//
// Classification follows a fixed precedence (string, view, numeric) with no
// backtracking. A bare integer N at the policy position is wrapped into a
// RangePolicy over [0, N) on the default execution space, so the returned
// record's Policy is always a concrete variant.
func Unpack(kind Kind, args []Arg) (CallRecord, error) {
	var rec CallRecord
	var policyElem, workunitElem Arg

	switch len(args) {
	case 2:
		policyElem = args[0]
		workunitElem = args[1]

	case 3:
		if name, ok := args[0].(Str); ok {
			rec.Name = string(name)
			policyElem = args[1]
			workunitElem = args[2]
		} else if v, ok := args[2].(ViewArg); ok && kind.IsFor() {
			policyElem = args[0]
			workunitElem = args[1]
			rec.View = v.View
		} else if isNumeric(args[2]) {
			policyElem = args[0]
			workunitElem = args[1]
			rec.Initial = toScalar(args[2])
		} else {
			return CallRecord{}, newBadArgument("wrong arguments: third element is %s, want string, view, or numeric", Descriptor(args[2]))
		}

	case 4:
		name, ok := args[0].(Str)
		if !ok {
			return CallRecord{}, newBadArgument("wrong arguments: first of four elements must be a name string, got %s", Descriptor(args[0]))
		}
		rec.Name = string(name)
		policyElem = args[1]
		workunitElem = args[2]

		if v, ok := args[3].(ViewArg); ok && kind.IsFor() {
			rec.View = v.View
		} else if isNumeric(args[3]) {
			rec.Initial = toScalar(args[3])
		} else {
			return CallRecord{}, newBadArgument("wrong arguments: fourth element is %s, want view or numeric", Descriptor(args[3]))
		}

	default:
		return CallRecord{}, newBadArity(len(args))
	}

	pol, err := resolvePolicy(policyElem)
	if err != nil {
		return CallRecord{}, err
	}
	rec.Policy = pol

	wu, ok := workunitElem.(WorkunitArg)
	if !ok {
		return CallRecord{}, newBadArgument("workunit position holds %s, want a workunit reference", Descriptor(workunitElem))
	}
	rec.Workunit = wu.Spec

	return rec, nil
}

// resolvePolicy coerces the policy-position element to a concrete policy.
// A bare integer N becomes RangePolicy [0, N) on the default space.
func resolvePolicy(elem Arg) (policy.ExecutionPolicy, error) {
	switch p := elem.(type) {
	case PolicyArg:
		return p.Policy, nil
	case Int:
		rp, err := policy.NewRangePolicy(space.Default(), 0, int64(p))
		if err != nil {
			return nil, newBadArgument("invalid integer policy: %v", err)
		}
		return rp, nil
	default:
		return nil, newBadArgument("policy position holds %s, want an execution policy or integer", Descriptor(elem))
	}
}

// toScalar converts a numeric element. Callers must have checked isNumeric.
func toScalar(a Arg) Scalar {
	switch v := a.(type) {
	case Int:
		return IntScalar(int64(v))
	case Float:
		return FloatScalar(float64(v))
	}
	return Scalar{}
}
