package viz

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/walk"
)

func TestPlotWalks(t *testing.T) {
	t.Parallel()

	walks := []walk.Walk{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	}

	path := filepath.Join(t.TempDir(), "walks.png")
	require.NoError(t, PlotWalks(path, "test walks", walks))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotWalksEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, PlotWalks(path, "no walks", nil))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestRenderOccupancySimple(t *testing.T) {
	t.Parallel()

	k, err := kernel.FromGenerator(kernel.SimpleRwGenerator{})
	require.NoError(t, err)
	prog, err := dp.NewBuilder().Simple().TimeLimit(4).Kernel(k).Build()
	require.NoError(t, err)
	prog.Compute()

	var buf bytes.Buffer
	require.NoError(t, RenderOccupancy(&buf, prog, 2))

	out := buf.String()
	assert.True(t, strings.Contains(out, "echarts"))
	assert.True(t, strings.Contains(out, "occupancy"))
}

func TestRenderOccupancyMulti(t *testing.T) {
	t.Parallel()

	kernels, err := kernel.MultipleFromGenerator(kernel.CorrelatedRwGenerator{Persistence: 0.5})
	require.NoError(t, err)
	prog, err := dp.NewBuilder().Multi().TimeLimit(3).Kernels(kernels).Build()
	require.NoError(t, err)
	prog.Compute()

	var buf bytes.Buffer
	require.NoError(t, RenderOccupancy(&buf, prog, 1))
	assert.Greater(t, buf.Len(), 0)
}

func TestRenderOccupancyOutOfRange(t *testing.T) {
	t.Parallel()

	k, err := kernel.FromGenerator(kernel.SimpleRwGenerator{})
	require.NoError(t, err)
	prog, err := dp.NewBuilder().Simple().TimeLimit(2).Kernel(k).Build()
	require.NoError(t, err)
	prog.Compute()

	var buf bytes.Buffer
	assert.Error(t, RenderOccupancy(&buf, prog, 3))
	assert.Error(t, RenderOccupancy(&buf, prog, -1))
}
