// Package walks turns a dataset into batches of generated walks: for each
// consecutive pair of datapoints it samples walks through a computed dynamic
// program and translates them into the dataset's coordinate frame.
package walks

import (
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/monitoring"
	"github.com/banshee-data/walk.report/internal/walk"
	"github.com/banshee-data/walk.report/internal/walker"
)

var (
	// ErrNoDatasetSet is returned when no dataset was provided.
	ErrNoDatasetSet = errors.New("a dataset must be provided")

	// ErrNoDynamicProgramSet is returned when no dynamic program was provided.
	ErrNoDynamicProgramSet = errors.New("a dynamic program must be provided")

	// ErrNoWalkerSet is returned when no walker was provided.
	ErrNoWalkerSet = errors.New("a walker must be provided")

	// ErrNoTimeStepsSet is returned when neither a fixed time step count nor
	// a derivation rule was configured.
	ErrNoTimeStepsSet = errors.New("the number of time steps must be set or derived")

	// ErrDatasetNotXY is returned when the dataset is not in XY coordinates.
	// Convert GCS datasets before generating walks.
	ErrDatasetNotXY = errors.New("the dataset must contain XY points for walk generation")

	// ErrIndexOutOfBounds is returned for a from/to index outside the dataset.
	ErrIndexOutOfBounds = errors.New("datapoint index out of bounds")
)

// defaultTimeLayout parses timestamps like "2023-01-01 10:30:00".
const defaultTimeLayout = "2006-01-02 15:04:05"

// Between generates one walk between the datapoints at the given indices.
// The walk is sampled toward the relative offset of the two points and then
// translated so it starts at the from point.
func Between(d *dataset.Dataset, prog dp.Program, w walker.Walker, from, to, timeSteps int) (walk.Walk, error) {
	if d.CoordinateType() != dataset.CoordinateXY {
		return nil, ErrDatasetNotXY
	}

	pFrom, ok := d.Get(from)
	if !ok {
		return nil, fmt.Errorf("from index %d: %w", from, ErrIndexOutOfBounds)
	}
	pTo, ok := d.Get(to)
	if !ok {
		return nil, fmt.Errorf("to index %d: %w", to, ErrIndexOutOfBounds)
	}

	delta := pTo.Point.XY.Sub(pFrom.Point.XY)
	path, err := w.GeneratePath(prog, int(delta.X), int(delta.Y), timeSteps)
	if err != nil {
		return nil, fmt.Errorf("generate walk between %d and %d: %w", from, to, err)
	}
	return path.Translate(pFrom.Point.XY), nil
}

// timeStepsRule derives the number of time steps for one datapoint pair.
type timeStepsRule func(d *dataset.Dataset, i int) (int, error)

// Builder configures batch walk generation over consecutive datapoint pairs.
type Builder struct {
	dataset   *dataset.Dataset
	prog      dp.Program
	walker    walker.Walker
	from      int
	to        int
	hasTo     bool
	count     int
	timeSteps timeStepsRule
}

// NewBuilder returns a Builder generating one walk per pair by default.
func NewBuilder() *Builder {
	return &Builder{count: 1}
}

// Dataset sets the source dataset.
func (b *Builder) Dataset(d *dataset.Dataset) *Builder {
	b.dataset = d
	return b
}

// DynamicProgram sets the computed program to sample from.
func (b *Builder) DynamicProgram(prog dp.Program) *Builder {
	b.prog = prog
	return b
}

// Walker sets the path-sampling algorithm.
func (b *Builder) Walker(w walker.Walker) *Builder {
	b.walker = w
	return b
}

// From sets the first datapoint index of the pair range. Defaults to 0.
func (b *Builder) From(from int) *Builder {
	b.from = from
	return b
}

// To sets the last datapoint index of the pair range. Defaults to the last
// datapoint.
func (b *Builder) To(to int) *Builder {
	b.to = to
	b.hasTo = true
	return b
}

// Count sets how many walks to generate per datapoint pair.
func (b *Builder) Count(count int) *Builder {
	b.count = count
	return b
}

// TimeSteps fixes the number of time steps for every pair.
func (b *Builder) TimeSteps(timeSteps int) *Builder {
	b.timeSteps = func(*dataset.Dataset, int) (int, error) {
		return timeSteps, nil
	}
	return b
}

// TimeStepsByDistance derives each pair's time steps from the Manhattan
// distance between its points, scaled by the multiplier.
func (b *Builder) TimeStepsByDistance(multiplier float64) *Builder {
	b.timeSteps = func(d *dataset.Dataset, i int) (int, error) {
		p1, _ := d.Get(i)
		p2, _ := d.Get(i + 1)
		delta := p2.Point.XY.Sub(p1.Point.XY)
		dist := delta.X
		if dist < 0 {
			dist = -dist
		}
		dy := delta.Y
		if dy < 0 {
			dy = -dy
		}
		dist += dy
		return int(float64(dist) * multiplier), nil
	}
	return b
}

// TimeStepsByTime derives each pair's time steps from the timestamp
// difference between its points: one step per stepLen seconds. Timestamps are
// read from the given metadata key; an empty layout uses
// "2006-01-02 15:04:05".
func (b *Builder) TimeStepsByTime(stepLen float64, metadataKey, layout string) *Builder {
	if layout == "" {
		layout = defaultTimeLayout
	}
	b.timeSteps = func(d *dataset.Dataset, i int) (int, error) {
		p1, _ := d.Get(i)
		p2, _ := d.Get(i + 1)
		t1, err := time.Parse(layout, p1.Metadata[metadataKey])
		if err != nil {
			return 0, fmt.Errorf("datapoint %d timestamp: %w", i, err)
		}
		t2, err := time.Parse(layout, p2.Metadata[metadataKey])
		if err != nil {
			return 0, fmt.Errorf("datapoint %d timestamp: %w", i+1, err)
		}
		return int(t2.Sub(t1).Seconds() / stepLen), nil
	}
	return b
}

// Build validates the configuration and generates count walks for every
// consecutive datapoint pair in [from, to].
func (b *Builder) Build() ([]walk.Walk, error) {
	if b.dataset == nil {
		return nil, ErrNoDatasetSet
	}
	if b.prog == nil {
		return nil, ErrNoDynamicProgramSet
	}
	if b.walker == nil {
		return nil, ErrNoWalkerSet
	}
	if b.timeSteps == nil {
		return nil, ErrNoTimeStepsSet
	}
	if b.dataset.CoordinateType() != dataset.CoordinateXY {
		return nil, ErrDatasetNotXY
	}

	to := b.dataset.Len() - 1
	if b.hasTo {
		to = b.to
	}

	var walks []walk.Walk
	for i := b.from; i < to; i++ {
		timeSteps, err := b.timeSteps(b.dataset, i)
		if err != nil {
			return nil, err
		}

		for n := 0; n < b.count; n++ {
			w, err := Between(b.dataset, b.prog, b.walker, i, i+1, timeSteps)
			if err != nil {
				return nil, err
			}
			walks = append(walks, w)
		}
	}

	monitoring.Logf("[walks] generated %d walks for %d datapoint pairs", len(walks), to-b.from)
	return walks, nil
}
