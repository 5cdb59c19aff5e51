package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrNotGCS is returned when a GCS-only operation is applied to a dataset in
// XY coordinates.
var ErrNotGCS = errors.New("dataset is not in GCS coordinates")

// ErrFilterCoordinateType is returned when a coordinate filter does not match
// the dataset's coordinate system.
var ErrFilterCoordinateType = errors.New("filter coordinates do not match dataset coordinate type")

// earthRadiusKm is used to project geographic coordinates onto a plane.
const earthRadiusKm = 6371.0

// Datapoint is one dataset entry: a point plus free-form metadata key-value
// pairs, e.g. a timestamp or an animal id.
type Datapoint struct {
	Point    Point
	Metadata map[string]string
}

func (p Datapoint) String() string {
	return fmt.Sprintf("%s | %v", p.Point, p.Metadata)
}

// Dataset is an ordered collection of datapoints in one coordinate system.
type Dataset struct {
	data           []Datapoint
	coordinateType CoordinateType
}

// New returns an empty dataset holding points of the given coordinate type.
func New(coordinateType CoordinateType) *Dataset {
	return &Dataset{coordinateType: coordinateType}
}

// Len returns the number of datapoints.
func (d *Dataset) Len() int {
	return len(d.data)
}

// CoordinateType returns the dataset's coordinate system.
func (d *Dataset) CoordinateType() CoordinateType {
	return d.coordinateType
}

// Push appends a datapoint.
func (d *Dataset) Push(p Datapoint) {
	d.data = append(d.data, p)
}

// Get returns the datapoint at the given index.
func (d *Dataset) Get(index int) (Datapoint, bool) {
	if index < 0 || index >= len(d.data) {
		return Datapoint{}, false
	}
	return d.data[index], true
}

// Keep drops every datapoint outside the index range [from, to). Passing a
// negative bound leaves the range open on that side.
func (d *Dataset) Keep(from, to int) {
	if from < 0 {
		from = 0
	}
	if to < 0 || to > len(d.data) {
		to = len(d.data)
	}
	if from > to {
		from = to
	}
	d.data = d.data[from:to]
}

// Filter is a predicate applied to datapoints by Dataset.Filter.
type Filter interface {
	Keep(coordinateType CoordinateType, p Datapoint) (bool, error)
}

// MetadataFilter keeps datapoints carrying the given metadata key-value pair.
type MetadataFilter struct {
	Key, Value string
}

func (f MetadataFilter) Keep(_ CoordinateType, p Datapoint) (bool, error) {
	return p.Metadata[f.Key] == f.Value, nil
}

// CoordinateFilter keeps datapoints whose coordinates lie in the inclusive
// rectangle [From, To]. The filter points must be in the dataset's
// coordinate system.
type CoordinateFilter struct {
	From, To Point
}

func (f CoordinateFilter) Keep(coordinateType CoordinateType, p Datapoint) (bool, error) {
	if f.From.Type != coordinateType || f.To.Type != coordinateType {
		return false, ErrFilterCoordinateType
	}
	switch coordinateType {
	case CoordinateGCS:
		pt := p.Point.GCS
		return pt.X >= f.From.GCS.X && pt.X <= f.To.GCS.X &&
			pt.Y >= f.From.GCS.Y && pt.Y <= f.To.GCS.Y, nil
	default:
		pt := p.Point.XY
		return pt.X >= f.From.XY.X && pt.X <= f.To.XY.X &&
			pt.Y >= f.From.XY.Y && pt.Y <= f.To.XY.Y, nil
	}
}

// Filter keeps only the datapoints matching every given filter and returns
// the number of datapoints kept.
func (d *Dataset) Filter(filters ...Filter) (int, error) {
	kept := d.data[:0:0]
	for _, p := range d.data {
		keep := true
		for _, f := range filters {
			ok, err := f.Keep(d.coordinateType, p)
			if err != nil {
				return 0, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, p)
		}
	}
	d.data = kept
	return len(kept), nil
}

// MinMax returns the componentwise minimum and maximum coordinates of the
// datapoints with index in [from, to). Negative bounds leave the range open.
// ok is false for an empty range.
func (d *Dataset) MinMax(from, to int) (min, max Point, ok bool) {
	if from < 0 {
		from = 0
	}
	if to < 0 || to > len(d.data) {
		to = len(d.data)
	}
	if from >= to {
		return Point{}, Point{}, false
	}

	if d.coordinateType == CoordinateGCS {
		lo := GCSPoint{X: math.MaxFloat64, Y: math.MaxFloat64}
		hi := GCSPoint{X: -math.MaxFloat64, Y: -math.MaxFloat64}
		for _, p := range d.data[from:to] {
			lo.X = math.Min(lo.X, p.Point.GCS.X)
			lo.Y = math.Min(lo.Y, p.Point.GCS.Y)
			hi.X = math.Max(hi.X, p.Point.GCS.X)
			hi.Y = math.Max(hi.Y, p.Point.GCS.Y)
		}
		return FromGCS(lo), FromGCS(hi), true
	}

	lo := XYPoint{X: math.MaxInt64, Y: math.MaxInt64}
	hi := XYPoint{X: math.MinInt64, Y: math.MinInt64}
	for _, p := range d.data[from:to] {
		lo.X = minInt64(lo.X, p.Point.XY.X)
		lo.Y = minInt64(lo.Y, p.Point.XY.Y)
		hi.X = maxInt64(hi.X, p.Point.XY.X)
		hi.Y = maxInt64(hi.Y, p.Point.XY.Y)
	}
	return FromXY(lo), FromXY(hi), true
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// ConvertGCSToXY projects all geographic points onto a plane and normalizes
// them to integer coordinates in the range [from, to]. The projection keeps
// relative distances between nearby points; the normalization range must be
// large enough that distinct points stay distinct on the integer grid.
func (d *Dataset) ConvertGCSToXY(from, to int64) error {
	if d.coordinateType != CoordinateGCS {
		return ErrNotGCS
	}

	min := [2]float64{math.MaxFloat64, math.MaxFloat64}
	max := [2]float64{-math.MaxFloat64, -math.MaxFloat64}
	projected := make([][2]float64, len(d.data))

	for i, p := range d.data {
		lonRad := p.Point.GCS.X * math.Pi / 180
		latRad := p.Point.GCS.Y * math.Pi / 180
		x := earthRadiusKm * math.Cos(lonRad) * math.Cos(latRad)
		y := earthRadiusKm * math.Cos(lonRad) * math.Sin(latRad)
		projected[i] = [2]float64{x, y}

		min[0] = math.Min(min[0], x)
		min[1] = math.Min(min[1], y)
		max[0] = math.Max(max[0], x)
		max[1] = math.Max(max[1], y)
	}

	span := float64(to - from)
	for i := range d.data {
		d.data[i].Point = FromXY(XYPoint{
			X: int64((projected[i][0]-min[0])/(max[0]-min[0])*span + float64(from)),
			Y: int64((projected[i][1]-min[1])/(max[1]-min[1])*span + float64(from)),
		})
	}
	d.coordinateType = CoordinateXY
	return nil
}

// Print writes the datapoints with index in [from, to) to w. Negative bounds
// leave the range open.
func (d *Dataset) Print(w io.Writer, from, to int) {
	if from < 0 {
		from = 0
	}
	if to < 0 || to > len(d.data) {
		to = len(d.data)
	}
	for i := from; i < to; i++ {
		fmt.Fprintf(w, "%d:\t%s\n", i, d.data[i])
	}
}
