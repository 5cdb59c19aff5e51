// Package dataset provides two-dimensional point formats, dataset loading
// from CSV, and the filters and coordinate conversions used to prepare raw
// movement data for walk generation.
package dataset

import "fmt"

// CoordinateType distinguishes the coordinate systems a dataset can hold.
type CoordinateType int

const (
	// CoordinateGCS marks geographic coordinates (longitude, latitude).
	CoordinateGCS CoordinateType = iota

	// CoordinateXY marks integer grid coordinates.
	CoordinateXY
)

func (c CoordinateType) String() string {
	switch c {
	case CoordinateGCS:
		return "GCS"
	case CoordinateXY:
		return "XY"
	}
	return fmt.Sprintf("CoordinateType(%d)", int(c))
}

// GCSPoint is a point in the geographic coordinate system. X is the
// longitude and Y the latitude, both in degrees.
type GCSPoint struct {
	X, Y float64
}

// Add returns the componentwise sum of two points.
func (p GCSPoint) Add(other GCSPoint) GCSPoint {
	return GCSPoint{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the componentwise difference of two points.
func (p GCSPoint) Sub(other GCSPoint) GCSPoint {
	return GCSPoint{X: p.X - other.X, Y: p.Y - other.Y}
}

func (p GCSPoint) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// XYPoint is a point on the integer grid.
type XYPoint struct {
	X, Y int64
}

// Add returns the componentwise sum of two points.
func (p XYPoint) Add(other XYPoint) XYPoint {
	return XYPoint{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the componentwise difference of two points.
func (p XYPoint) Sub(other XYPoint) XYPoint {
	return XYPoint{X: p.X - other.X, Y: p.Y - other.Y}
}

func (p XYPoint) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// Point is a point in either coordinate system. Exactly one of the two
// representations is meaningful, selected by Type.
type Point struct {
	Type CoordinateType
	GCS  GCSPoint
	XY   XYPoint
}

// FromGCS wraps a geographic point.
func FromGCS(p GCSPoint) Point {
	return Point{Type: CoordinateGCS, GCS: p}
}

// FromXY wraps a grid point.
func FromXY(p XYPoint) Point {
	return Point{Type: CoordinateXY, XY: p}
}

func (p Point) String() string {
	switch p.Type {
	case CoordinateXY:
		return "XY" + p.XY.String()
	default:
		return "GCS" + p.GCS.String()
	}
}
