package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSpaceRoundTrip(t *testing.T) {
	original := Default()
	defer func() {
		require.NoError(t, SetDefault(original))
	}()

	require.NoError(t, SetDefault(Serial))
	assert.Equal(t, Serial, Default())

	require.NoError(t, SetDefault(Goroutines))
	assert.Equal(t, Goroutines, Default())
}

func TestSetDefaultRejectsUnknownSpace(t *testing.T) {
	err := SetDefault(ExecutionSpace("Cuda"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown execution space")
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		space ExecutionSpace
		want  bool
	}{
		{"serial", Serial, true},
		{"goroutines", Goroutines, true},
		{"empty", ExecutionSpace(""), false},
		{"unknown", ExecutionSpace("OpenMP"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.space.Valid())
		})
	}
}
