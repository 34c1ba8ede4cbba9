package policy

import (
	"fmt"

	"github.com/roach88/strider/internal/space"
)

// ExecutionPolicy describes the iteration space of a parallel dispatch.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the dispatch front end.
//
// Policy types:
//   - RangePolicy: 1-D index range [Begin, End)
//   - TeamPolicy: league of thread teams
//   - TeamThreadRange: nested range over the threads of one team
//   - MDRangePolicy: multidimensional index range
type ExecutionPolicy interface {
	policyNode() // Marker method - seals interface to this package
}

// RangePolicy iterates a 1-D index range [Begin, End).
type RangePolicy struct {
	Space space.ExecutionSpace
	Begin int64
	End   int64
}

func (RangePolicy) policyNode() {}

// TeamPolicy launches a league of thread teams. Team indices are handed
// to the workunit through a team-member handle, not a plain int.
type TeamPolicy struct {
	Space      space.ExecutionSpace
	LeagueSize int
	TeamSize   int
}

func (TeamPolicy) policyNode() {}

// TeamThreadRange is a nested policy iterating [0, Count) across the
// threads of a single team. It inherits its space from the enclosing
// TeamPolicy dispatch.
type TeamThreadRange struct {
	Count int64
}

func (TeamThreadRange) policyNode() {}

// MDRangePolicy iterates a multidimensional index range. Begin and End
// must have equal length; the length is the dimensionality.
type MDRangePolicy struct {
	Space space.ExecutionSpace
	Begin []int64
	End   []int64
}

func (MDRangePolicy) policyNode() {}

// Dims returns the dimensionality of the range.
func (p MDRangePolicy) Dims() int {
	return len(p.Begin)
}

// NewRangePolicy constructs a validated RangePolicy.
func NewRangePolicy(s space.ExecutionSpace, begin, end int64) (RangePolicy, error) {
	if end < begin {
		return RangePolicy{}, fmt.Errorf("range policy end %d before begin %d", end, begin)
	}
	return RangePolicy{Space: s, Begin: begin, End: end}, nil
}

// NewTeamPolicy constructs a validated TeamPolicy.
func NewTeamPolicy(s space.ExecutionSpace, leagueSize, teamSize int) (TeamPolicy, error) {
	if leagueSize <= 0 {
		return TeamPolicy{}, fmt.Errorf("team policy league size must be positive, got %d", leagueSize)
	}
	if teamSize <= 0 {
		return TeamPolicy{}, fmt.Errorf("team policy team size must be positive, got %d", teamSize)
	}
	return TeamPolicy{Space: s, LeagueSize: leagueSize, TeamSize: teamSize}, nil
}

// NewTeamThreadRange constructs a validated TeamThreadRange.
func NewTeamThreadRange(count int64) (TeamThreadRange, error) {
	if count < 0 {
		return TeamThreadRange{}, fmt.Errorf("team thread range count must be non-negative, got %d", count)
	}
	return TeamThreadRange{Count: count}, nil
}

// NewMDRangePolicy constructs a validated MDRangePolicy.
// Begin and end must have the same length and at least two dimensions.
func NewMDRangePolicy(s space.ExecutionSpace, begin, end []int64) (MDRangePolicy, error) {
	if len(begin) != len(end) {
		return MDRangePolicy{}, fmt.Errorf("md-range begin/end dimensionality mismatch: %d != %d", len(begin), len(end))
	}
	if len(begin) < 2 {
		return MDRangePolicy{}, fmt.Errorf("md-range requires at least 2 dimensions, got %d", len(begin))
	}
	for i := range begin {
		if end[i] < begin[i] {
			return MDRangePolicy{}, fmt.Errorf("md-range dimension %d: end %d before begin %d", i, end[i], begin[i])
		}
	}
	return MDRangePolicy{Space: s, Begin: begin, End: end}, nil
}

// KindOf returns a stable tag naming the policy variant. Used in plan
// snapshots and cache records.
func KindOf(p ExecutionPolicy) string {
	switch p.(type) {
	case RangePolicy, *RangePolicy:
		return "RangePolicy"
	case TeamPolicy, *TeamPolicy:
		return "TeamPolicy"
	case TeamThreadRange, *TeamThreadRange:
		return "TeamThreadRange"
	case MDRangePolicy, *MDRangePolicy:
		return "MDRangePolicy"
	default:
		return fmt.Sprintf("unknown(%T)", p)
	}
}
