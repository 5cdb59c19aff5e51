package walker

import (
	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/walk"
)

// directionVariant maps the index of the move just taken (in neighborMoves
// order: stay, west, north, east, south) to the table variant holding the
// matching persistence state (kernels ordered North, East, South, West,
// Stay). The permutation is pinned by the correlated model's construction
// order; do not rearrange it.
var directionVariant = [5]int{4, 1, 0, 3, 2}

// Correlated backward-samples through a Multi program. After each sampled
// move, the next step reads from the table variant corresponding to the
// direction just taken, so the persistence state carries through the
// reconstruction.
type Correlated struct{}

func (Correlated) GeneratePath(prog dp.Program, toX, toY, timeSteps int) (walk.Walk, error) {
	mp, ok := prog.(*dp.Multi)
	if !ok {
		return nil, ErrWrongDynamicProgramType
	}

	for variant := 0; variant < mp.Variants(); variant++ {
		if mp.AtOr(toX, toY, timeSteps, variant, 0) == 0 {
			return nil, ErrNoPathExists
		}
	}

	path := make(walk.Walk, 0, timeSteps+1)
	x, y := toX, toY

	// The final move has no successor to condition on, so each of its
	// candidates is weighted by its own variant's mass at the previous step.
	// Every later step reads the variant of the move just taken.
	lastDirection := -1
	for t := timeSteps; t >= 1; t-- {
		path = append(path, dataset.XYPoint{X: int64(x), Y: int64(y)})

		weights := make([]float64, len(neighborMoves))
		for i, m := range neighborMoves {
			variant := directionVariant[i]
			if lastDirection >= 0 {
				variant = directionVariant[lastDirection]
			}
			weights[i] = mp.AtOr(x+m.dx, y+m.dy, t-1, variant, 0)
		}

		idx, err := sampleIndex(weights)
		if err != nil {
			return nil, err
		}
		lastDirection = idx
		x += neighborMoves[idx].dx
		y += neighborMoves[idx].dy
	}

	path = append(path, dataset.XYPoint{X: int64(x), Y: int64(y)})
	reverse(path)
	return path, nil
}

func (Correlated) Name(short bool) string {
	if short {
		return "cwg"
	}
	return "Correlated Walker"
}
