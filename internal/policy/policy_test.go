package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strider/internal/space"
)

func TestNewRangePolicy(t *testing.T) {
	p, err := NewRangePolicy(space.Serial, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Begin)
	assert.Equal(t, int64(100), p.End)
	assert.Equal(t, space.Serial, p.Space)

	_, err = NewRangePolicy(space.Serial, 10, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end 5 before begin 10")
}

func TestNewTeamPolicy(t *testing.T) {
	tests := []struct {
		name       string
		league     int
		team       int
		wantErr    bool
	}{
		{"valid", 4, 8, false},
		{"zero_league", 0, 8, true},
		{"negative_team", 4, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTeamPolicy(space.Goroutines, tt.league, tt.team)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewMDRangePolicy(t *testing.T) {
	p, err := NewMDRangePolicy(space.Serial, []int64{0, 0, 0}, []int64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Dims())

	_, err = NewMDRangePolicy(space.Serial, []int64{0, 0}, []int64{4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensionality mismatch")

	_, err = NewMDRangePolicy(space.Serial, []int64{0}, []int64{4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 dimensions")

	_, err = NewMDRangePolicy(space.Serial, []int64{0, 5}, []int64{4, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension 1")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		policy ExecutionPolicy
		want   string
	}{
		{"range", RangePolicy{}, "RangePolicy"},
		{"range_ptr", &RangePolicy{}, "RangePolicy"},
		{"team", TeamPolicy{}, "TeamPolicy"},
		{"team_thread", TeamThreadRange{}, "TeamThreadRange"},
		{"md_range", MDRangePolicy{}, "MDRangePolicy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.policy))
		})
	}
}
