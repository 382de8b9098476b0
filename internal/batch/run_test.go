package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AddRejectsDuplicates(t *testing.T) {
	run := NewRun(90, "/tmp/out")

	require.NoError(t, run.Add("a.png"))
	require.NoError(t, run.Add("b.png"))

	err := run.Add("a.png")
	require.ErrorContains(t, err, "duplicate input")

	// Different spelling of the same path is still a duplicate.
	err = run.Add("./a.png")
	require.ErrorContains(t, err, "duplicate input")

	assert.Equal(t, []string{"a.png", "b.png"}, run.Inputs())
	assert.Equal(t, 2, run.Total())
}

func TestRun_AddAllCountsAdded(t *testing.T) {
	run := NewRun(0, "")
	added := run.AddAll([]string{"a.png", "b.png", "a.png"})
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, run.Total())
}

func TestRun_CountersStartAtZero(t *testing.T) {
	run := NewRun(45, "/tmp/out")
	require.NoError(t, run.Add("a.png"))

	assert.Equal(t, 1, run.Total())
	assert.Equal(t, 0, run.Completed())
	assert.Equal(t, 0, run.Failed())
}

func TestRun_ItemsCarryAngleAndOutputDir(t *testing.T) {
	run := NewRun(-45, "/data/out")
	require.NoError(t, run.Add("x/a.png"))
	require.NoError(t, run.Add("y/b.png"))

	items := run.items()
	require.Len(t, items, 2)
	for _, item := range items {
		assert.InDelta(t, -45.0, item.Angle, 0)
		assert.Equal(t, "/data/out", item.OutputDir)
	}
	assert.Equal(t, "x/a.png", items[0].Path)
	assert.Equal(t, "y/b.png", items[1].Path)
}
