package walker

import (
	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/walk"
)

// neighborMoves lists the candidate moves of the 5-point stencil in the
// sampling order stay, west, north, east, south. Walkers index candidate
// weights by this order.
var neighborMoves = [5]struct{ dx, dy int }{
	{0, 0},
	{-1, 0},
	{0, -1},
	{1, 0},
	{0, 1},
}

// Standard backward-samples through a Simple program using the 5-point
// stencil, weighting each candidate source cell by its forward probability at
// the previous time step.
type Standard struct{}

func (Standard) GeneratePath(prog dp.Program, toX, toY, timeSteps int) (walk.Walk, error) {
	sp, ok := prog.(*dp.Simple)
	if !ok {
		return nil, ErrWrongDynamicProgramType
	}

	if sp.AtOr(toX, toY, timeSteps, 0) == 0 {
		return nil, ErrNoPathExists
	}

	path := make(walk.Walk, 0, timeSteps+1)
	x, y := toX, toY

	for t := timeSteps; t >= 1; t-- {
		path = append(path, dataset.XYPoint{X: int64(x), Y: int64(y)})

		weights := make([]float64, len(neighborMoves))
		for i, m := range neighborMoves {
			weights[i] = sp.AtOr(x+m.dx, y+m.dy, t-1, 0)
		}

		idx, err := sampleIndex(weights)
		if err != nil {
			return nil, err
		}
		x += neighborMoves[idx].dx
		y += neighborMoves[idx].dy
	}

	path = append(path, dataset.XYPoint{X: int64(x), Y: int64(y)})
	reverse(path)
	return path, nil
}

func (Standard) Name(short bool) string {
	if short {
		return "swg"
	}
	return "Standard Walker"
}

func reverse(w walk.Walk) {
	for i, j := 0, len(w)-1; i < j; i, j = i+1, j-1 {
		w[i], w[j] = w[j], w[i]
	}
}
