package regionstats

import (
	"testing"

	"github.com/bethropolis/tilegrid/internal/plugin/plugintest"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCountsInvertedRegions(t *testing.T) {
	s := Compute([]region.Region{
		{StartX: 0, StartY: 0, EndX: 100, EndY: 100},
		{StartX: 150, StartY: 100, EndX: 50, EndY: 50}, // inverted by a resize
		{StartX: 300, StartY: 300, EndX: 310, EndY: 310},
	}, 1000, 1000)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 10000.0+5000.0+100.0, s.Area)
	assert.InDelta(t, 0.0151, s.Coverage, 1e-9)
	assert.Equal(t, [][2]int{{0, 1}}, s.Overlapping)
	assert.Equal(t, "Regions: 3, Area: 15100 (1.5% of canvas), Overlaps: 1 (R1/R2)", s.String())
}

func TestStringCapsListedPairs(t *testing.T) {
	r := region.Region{StartX: 0, StartY: 0, EndX: 10, EndY: 10}
	s := Compute([]region.Region{r, r, r}, 0, 0)
	assert.Len(t, s.Overlapping, 3)
	assert.Equal(t, "Regions: 3, Area: 300 (0.0% of canvas), Overlaps: 3 (R1/R2, R1/R3, R2/R3)", s.String())

	s = Compute([]region.Region{r, r, r, r}, 0, 0)
	assert.Contains(t, s.String(), "Overlaps: 6 (R1/R2, R1/R3, R1/R4 ...")
}

func TestStatsCommand(t *testing.T) {
	api := plugintest.New()
	api.Layout = []region.Region{{StartX: 0, StartY: 0, EndX: 256, EndY: 256}}

	p := New()
	require.NoError(t, p.Initialize(api))
	require.NoError(t, api.Run("stats"))
	assert.Equal(t, "Regions: 1, Area: 65536 (25.0% of canvas), Overlaps: 0", api.LastMessage())

	assert.Error(t, p.Initialize(api), "second registration fails")
}
