package walk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/walk.report/internal/dataset"
)

func xy(x, y int64) dataset.XYPoint {
	return dataset.XYPoint{X: x, Y: y}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	got := Walk{xy(0, 0), xy(2, 3), xy(7, 5)}.Translate(xy(5, 1))
	assert.Equal(t, Walk{xy(5, 1), xy(7, 4), xy(12, 6)}, got)
}

func TestScale(t *testing.T) {
	t.Parallel()

	got := Walk{xy(0, 0), xy(2, 3), xy(7, 5)}.Scale(xy(2, 1))
	assert.Equal(t, Walk{xy(0, 0), xy(4, 3), xy(14, 5)}, got)
}

func TestRotate(t *testing.T) {
	t.Parallel()

	got := Walk{xy(0, 0), xy(2, 3), xy(7, 5)}.Rotate(90.0)
	assert.Equal(t, Walk{xy(0, 0), xy(-3, 2), xy(-5, 7)}, got)
}

func TestFrechetDistance(t *testing.T) {
	t.Parallel()

	w1 := Walk{xy(0, 0), xy(2, 2), xy(5, 5)}
	w2 := Walk{xy(0, 0), xy(3, 3), xy(6, 6)}
	assert.InDelta(t, math.Sqrt2, w1.FrechetDistance(w2), 1e-12)

	// Identical walks are at distance zero.
	assert.Equal(t, 0.0, w1.FrechetDistance(w1))

	// The distance is symmetric.
	assert.Equal(t, w1.FrechetDistance(w2), w2.FrechetDistance(w1))

	assert.Equal(t, 0.0, Walk{}.FrechetDistance(w1))
}

func TestDirectnessDeviation(t *testing.T) {
	t.Parallel()

	// A two-point walk is its own reference line.
	assert.Equal(t, 0.0, Walk{xy(0, 0), xy(3, 0)}.DirectnessDeviation())

	// The metric is discrete, so interior points are measured against the
	// line's endpoints, not the segment between them.
	straight := Walk{xy(0, 0), xy(1, 0), xy(2, 0), xy(3, 0)}
	assert.InDelta(t, 1.0, straight.DirectnessDeviation(), 1e-12)

	detour := Walk{xy(0, 0), xy(1, 1), xy(2, 0)}
	assert.InDelta(t, math.Sqrt2, detour.DirectnessDeviation(), 1e-12)
}
