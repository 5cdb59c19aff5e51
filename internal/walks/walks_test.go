package walks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/walker"
)

func testProgram(t *testing.T) dp.Program {
	t.Helper()
	k, err := kernel.FromGenerator(kernel.SimpleRwGenerator{})
	require.NoError(t, err)
	p, err := dp.NewBuilder().Simple().TimeLimit(10).Kernel(k).Build()
	require.NoError(t, err)
	p.Compute()
	return p
}

func testDataset(points ...dataset.XYPoint) *dataset.Dataset {
	d := dataset.New(dataset.CoordinateXY)
	for _, p := range points {
		d.Push(dataset.Datapoint{Point: dataset.FromXY(p)})
	}
	return d
}

func TestBetween(t *testing.T) {
	t.Parallel()

	d := testDataset(
		dataset.XYPoint{X: 100, Y: 100},
		dataset.XYPoint{X: 102, Y: 101},
	)
	p := testProgram(t)

	w, err := Between(d, p, walker.Standard{}, 0, 1, 10)
	require.NoError(t, err)

	require.Len(t, w, 11)
	assert.Equal(t, dataset.XYPoint{X: 100, Y: 100}, w[0])
	assert.Equal(t, dataset.XYPoint{X: 102, Y: 101}, w[len(w)-1])
}

func TestBetweenErrors(t *testing.T) {
	t.Parallel()

	p := testProgram(t)

	gcs := dataset.New(dataset.CoordinateGCS)
	_, err := Between(gcs, p, walker.Standard{}, 0, 1, 10)
	assert.ErrorIs(t, err, ErrDatasetNotXY)

	d := testDataset(dataset.XYPoint{X: 0, Y: 0})
	_, err = Between(d, p, walker.Standard{}, 0, 1, 10)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestBuilderValidation(t *testing.T) {
	t.Parallel()

	d := testDataset(dataset.XYPoint{}, dataset.XYPoint{X: 1, Y: 1})
	p := testProgram(t)

	_, err := NewBuilder().DynamicProgram(p).Walker(walker.Standard{}).TimeSteps(10).Build()
	assert.ErrorIs(t, err, ErrNoDatasetSet)

	_, err = NewBuilder().Dataset(d).Walker(walker.Standard{}).TimeSteps(10).Build()
	assert.ErrorIs(t, err, ErrNoDynamicProgramSet)

	_, err = NewBuilder().Dataset(d).DynamicProgram(p).TimeSteps(10).Build()
	assert.ErrorIs(t, err, ErrNoWalkerSet)

	_, err = NewBuilder().Dataset(d).DynamicProgram(p).Walker(walker.Standard{}).Build()
	assert.ErrorIs(t, err, ErrNoTimeStepsSet)

	gcs := dataset.New(dataset.CoordinateGCS)
	_, err = NewBuilder().Dataset(gcs).DynamicProgram(p).Walker(walker.Standard{}).TimeSteps(10).Build()
	assert.ErrorIs(t, err, ErrDatasetNotXY)
}

func TestBuilderFixedTimeSteps(t *testing.T) {
	t.Parallel()

	d := testDataset(
		dataset.XYPoint{X: 0, Y: 0},
		dataset.XYPoint{X: 2, Y: 0},
		dataset.XYPoint{X: 2, Y: 2},
	)
	p := testProgram(t)

	walks, err := NewBuilder().
		Dataset(d).
		DynamicProgram(p).
		Walker(walker.Standard{}).
		Count(3).
		TimeSteps(10).
		Build()
	require.NoError(t, err)

	// Three walks per pair, two pairs.
	require.Len(t, walks, 6)
	for _, w := range walks {
		assert.Len(t, w, 11)
	}
	assert.Equal(t, dataset.XYPoint{X: 0, Y: 0}, walks[0][0])
	assert.Equal(t, dataset.XYPoint{X: 2, Y: 0}, walks[0][10])
	assert.Equal(t, dataset.XYPoint{X: 2, Y: 0}, walks[3][0])
	assert.Equal(t, dataset.XYPoint{X: 2, Y: 2}, walks[3][10])
}

func TestBuilderTimeStepsByDistance(t *testing.T) {
	t.Parallel()

	d := testDataset(
		dataset.XYPoint{X: 0, Y: 0},
		dataset.XYPoint{X: 2, Y: 1},
	)
	p := testProgram(t)

	// Manhattan distance 3 with multiplier 2 gives 6 steps, so 7 points.
	walks, err := NewBuilder().
		Dataset(d).
		DynamicProgram(p).
		Walker(walker.Standard{}).
		TimeStepsByDistance(2).
		Build()
	require.NoError(t, err)

	require.Len(t, walks, 1)
	assert.Len(t, walks[0], 7)
}

func TestBuilderTimeStepsByTime(t *testing.T) {
	t.Parallel()

	d := dataset.New(dataset.CoordinateXY)
	d.Push(dataset.Datapoint{
		Point:    dataset.FromXY(dataset.XYPoint{X: 0, Y: 0}),
		Metadata: map[string]string{"when": "2023-01-01 10:00:00"},
	})
	d.Push(dataset.Datapoint{
		Point:    dataset.FromXY(dataset.XYPoint{X: 1, Y: 1}),
		Metadata: map[string]string{"when": "2023-01-01 10:01:00"},
	})
	p := testProgram(t)

	// 60 seconds at 10 seconds per step gives 6 steps.
	walks, err := NewBuilder().
		Dataset(d).
		DynamicProgram(p).
		Walker(walker.Standard{}).
		TimeStepsByTime(10, "when", "").
		Build()
	require.NoError(t, err)

	require.Len(t, walks, 1)
	assert.Len(t, walks[0], 7)

	d2 := dataset.New(dataset.CoordinateXY)
	d2.Push(dataset.Datapoint{Point: dataset.FromXY(dataset.XYPoint{}), Metadata: map[string]string{"when": "bogus"}})
	d2.Push(dataset.Datapoint{Point: dataset.FromXY(dataset.XYPoint{X: 1}), Metadata: map[string]string{"when": "bogus"}})

	_, err = NewBuilder().
		Dataset(d2).
		DynamicProgram(p).
		Walker(walker.Standard{}).
		TimeStepsByTime(10, "when", "").
		Build()
	require.Error(t, err)
}
