package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPersistsSignatures(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kernels.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewPlanCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "testdata/workunits", "testdata/scenarios/reduce.yaml"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1 plan(s), 0 cache hit(s)")

	_, err = os.Stat(dbPath)
	require.NoError(t, err)
}

func TestPlanSecondRunHitsCache(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kernels.db")

	for run, want := range []string{"1 plan(s), 0 cache hit(s)", "1 plan(s), 1 cache hit(s)"} {
		buf := &bytes.Buffer{}
		rootOpts := &RootOptions{Format: "text"}
		cmd := NewPlanCommand(rootOpts)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"--db", dbPath, "testdata/workunits", "testdata/scenarios/reduce.yaml"})

		err := cmd.Execute()
		require.NoError(t, err, "run %d", run)
		assert.Contains(t, buf.String(), want, "run %d", run)
	}
}

func TestPlanRequiresDatabaseFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewPlanCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"testdata/workunits", "testdata/scenarios/reduce.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
