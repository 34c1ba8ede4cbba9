package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialTokenGenerator(t *testing.T) {
	g := NewSequentialTokenGenerator("scenario")
	assert.Equal(t, "scenario-1", g.Generate())
	assert.Equal(t, "scenario-2", g.Generate())
	assert.Equal(t, "scenario-3", g.Generate())
}

func TestSequentialTokenGeneratorDefaultPrefix(t *testing.T) {
	g := NewSequentialTokenGenerator("")
	assert.Equal(t, "test-dispatch-1", g.Generate())
}
