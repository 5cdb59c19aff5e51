// Package walk provides the Walk value type and the geometric operations used
// to compare and reposition generated walks.
package walk

import (
	"math"

	"github.com/banshee-data/walk.report/internal/dataset"
)

// Walk is a sequence of grid points visited in order.
type Walk []dataset.XYPoint

// Translate returns a copy of the walk with every point shifted by the given
// offset.
func (w Walk) Translate(by dataset.XYPoint) Walk {
	out := make(Walk, len(w))
	for i, p := range w {
		out[i] = dataset.XYPoint{X: p.X + by.X, Y: p.Y + by.Y}
	}
	return out
}

// Scale returns a copy of the walk with every point multiplied componentwise
// by the given factors.
func (w Walk) Scale(by dataset.XYPoint) Walk {
	out := make(Walk, len(w))
	for i, p := range w {
		out[i] = dataset.XYPoint{X: p.X * by.X, Y: p.Y * by.Y}
	}
	return out
}

// Rotate returns a copy of the walk rotated counterclockwise around the
// origin by the given angle in degrees. Coordinates are truncated back to the
// integer grid.
func (w Walk) Rotate(degrees float64) Walk {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)

	out := make(Walk, len(w))
	for i, p := range w {
		x, y := float64(p.X), float64(p.Y)
		out[i] = dataset.XYPoint{
			X: int64(x*cos - y*sin),
			Y: int64(y*cos + x*sin),
		}
	}
	return out
}

func dist(a, b dataset.XYPoint) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Hypot(dx, dy)
}

// FrechetDistance computes the discrete Fréchet distance between two walks:
// the smallest leash length that lets two traversals walk both point
// sequences in order. Returns 0 if either walk is empty.
func (w Walk) FrechetDistance(other Walk) float64 {
	if len(w) == 0 || len(other) == 0 {
		return 0
	}

	// Rolling single-row coupling table.
	prev := make([]float64, len(other))
	cur := make([]float64, len(other))

	prev[0] = dist(w[0], other[0])
	for j := 1; j < len(other); j++ {
		prev[j] = math.Max(prev[j-1], dist(w[0], other[j]))
	}

	for i := 1; i < len(w); i++ {
		cur[0] = math.Max(prev[0], dist(w[i], other[0]))
		for j := 1; j < len(other); j++ {
			reach := math.Min(prev[j], math.Min(prev[j-1], cur[j-1]))
			cur[j] = math.Max(reach, dist(w[i], other[j]))
		}
		prev, cur = cur, prev
	}
	return prev[len(other)-1]
}

// DirectnessDeviation measures how far the walk strays from the straight
// line between its first and last point, as the Fréchet distance to that
// two-point line.
func (w Walk) DirectnessDeviation() float64 {
	if len(w) == 0 {
		return 0
	}
	line := Walk{w[0], w[len(w)-1]}
	return w.FrechetDistance(line)
}
