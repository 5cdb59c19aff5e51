package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xyDataset(n int) *Dataset {
	d := New(CoordinateXY)
	for i := 0; i < n; i++ {
		d.Push(Datapoint{Point: FromXY(XYPoint{X: int64(i), Y: int64(i)})})
	}
	return d
}

func TestKeep(t *testing.T) {
	t.Parallel()

	d := xyDataset(1000)
	d.Keep(100, 200)

	require.Equal(t, 100, d.Len())
	first, _ := d.Get(0)
	last, _ := d.Get(99)
	assert.Equal(t, int64(100), first.Point.XY.X)
	assert.Equal(t, int64(199), last.Point.XY.X)

	d.Keep(-1, 10)
	assert.Equal(t, 10, d.Len())
	d.Keep(5, -1)
	assert.Equal(t, 5, d.Len())
}

func TestFilterByMetadata(t *testing.T) {
	t.Parallel()

	d := New(CoordinateXY)
	for i := 0; i < 10; i++ {
		md := map[string]string{"id": "a"}
		if i%2 == 0 {
			md["id"] = "b"
		}
		d.Push(Datapoint{Point: FromXY(XYPoint{X: int64(i)}), Metadata: md})
	}

	kept, err := d.Filter(MetadataFilter{Key: "id", Value: "b"})
	require.NoError(t, err)
	assert.Equal(t, 5, kept)
	assert.Equal(t, 5, d.Len())
}

func TestFilterByCoordinates(t *testing.T) {
	t.Parallel()

	d := xyDataset(100)
	kept, err := d.Filter(CoordinateFilter{
		From: FromXY(XYPoint{X: 10, Y: 10}),
		To:   FromXY(XYPoint{X: 20, Y: 20}),
	})
	require.NoError(t, err)
	assert.Equal(t, 11, kept)

	// A GCS filter on an XY dataset is a configuration error.
	_, err = d.Filter(CoordinateFilter{
		From: FromGCS(GCSPoint{X: 0, Y: 0}),
		To:   FromGCS(GCSPoint{X: 1, Y: 1}),
	})
	assert.ErrorIs(t, err, ErrFilterCoordinateType)
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	d := xyDataset(10)
	min, max, ok := d.MinMax(-1, -1)
	require.True(t, ok)
	assert.Equal(t, XYPoint{X: 0, Y: 0}, min.XY)
	assert.Equal(t, XYPoint{X: 9, Y: 9}, max.XY)

	min, max, ok = d.MinMax(2, 5)
	require.True(t, ok)
	assert.Equal(t, XYPoint{X: 2, Y: 2}, min.XY)
	assert.Equal(t, XYPoint{X: 4, Y: 4}, max.XY)

	_, _, ok = New(CoordinateXY).MinMax(-1, -1)
	assert.False(t, ok)
}

func TestConvertGCSToXY(t *testing.T) {
	t.Parallel()

	d := New(CoordinateGCS)
	coords := [][2]float64{{13.405, 52.52}, {13.5, 52.6}, {13.3, 52.4}, {13.45, 52.55}}
	for _, c := range coords {
		d.Push(Datapoint{Point: FromGCS(GCSPoint{X: c[0], Y: c[1]})})
	}

	require.NoError(t, d.ConvertGCSToXY(0, 100))
	assert.Equal(t, CoordinateXY, d.CoordinateType())

	for i := 0; i < d.Len(); i++ {
		p, _ := d.Get(i)
		assert.GreaterOrEqual(t, p.Point.XY.X, int64(0))
		assert.LessOrEqual(t, p.Point.XY.X, int64(100))
		assert.GreaterOrEqual(t, p.Point.XY.Y, int64(0))
		assert.LessOrEqual(t, p.Point.XY.Y, int64(100))
	}

	// Converting twice is an error.
	assert.ErrorIs(t, d.ConvertGCSToXY(0, 100), ErrNotGCS)
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "points.csv")
	content := strings.Join([]string{
		"lon,lat,when,junk",
		"13.405,52.52,2023-01-01 10:00:00,x",
		"13.5,52.6,2023-01-01 11:00:00,y",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := LoadCSV(CSVLoaderOptions{
		Path:   path,
		Header: true,
		ColumnActions: []ColumnAction{
			KeepX(), KeepY(), KeepMetadata("when"), Discard(),
		},
		CoordinateType: CoordinateGCS,
	})
	require.NoError(t, err)

	require.Equal(t, 2, d.Len())
	p, _ := d.Get(0)
	assert.Equal(t, 13.405, p.Point.GCS.X)
	assert.Equal(t, 52.52, p.Point.GCS.Y)
	assert.Equal(t, "2023-01-01 10:00:00", p.Metadata["when"])
	assert.NotContains(t, p.Metadata, "junk")
}

func TestLoadCSVXY(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("1;2\n3;4\n"), 0o644))

	d, err := LoadCSV(CSVLoaderOptions{
		Path:           path,
		Comma:          ';',
		ColumnActions:  []ColumnAction{KeepX(), KeepY()},
		CoordinateType: CoordinateXY,
	})
	require.NoError(t, err)

	require.Equal(t, 2, d.Len())
	p, _ := d.Get(1)
	assert.Equal(t, XYPoint{X: 3, Y: 4}, p.Point.XY)
}

func TestLoadCSVValidation(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(CSVLoaderOptions{ColumnActions: []ColumnAction{KeepY()}})
	assert.ErrorIs(t, err, ErrNoXColumnSpecified)

	_, err = LoadCSV(CSVLoaderOptions{ColumnActions: []ColumnAction{KeepX()}})
	assert.ErrorIs(t, err, ErrNoYColumnSpecified)

	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3\n"), 0o644))

	_, err = LoadCSV(CSVLoaderOptions{
		Path:           path,
		ColumnActions:  []ColumnAction{KeepX(), KeepY()},
		CoordinateType: CoordinateXY,
	})
	assert.ErrorIs(t, err, ErrColumnActionMismatch)
}
