package walker

import (
	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/walk"
)

// MultiStep backward-samples through a Simple program allowing moves of up to
// MaxStepSize cells per step. Candidates span the full square neighborhood of
// that radius, so each one is reweighted by the kernel: the weight of source
// cell b for current cell a at time t is kernel(a-b) * P(b, t-1) / P(a, t).
type MultiStep struct {
	MaxStepSize int

	// Kernel overrides the program's own kernel when set. Required for
	// programs restored from a snapshot, which carry only a placeholder.
	Kernel *kernel.Kernel
}

// squareWeights collects the reweighted candidate moves of the full square
// neighborhood of the given radius around (x, y) at time t.
func squareWeights(sp *dp.Simple, k *kernel.Kernel, x, y, t, radius int) ([]float64, [][2]int, error) {
	pa := sp.AtOr(x, y, t, 0)
	if pa == 0 {
		return nil, nil, ErrInconsistentPath
	}

	side := 2*radius + 1
	weights := make([]float64, 0, side*side)
	moves := make([][2]int, 0, side*side)

	for i := x - radius; i <= x+radius; i++ {
		for j := y - radius; j <= y+radius; j++ {
			pb := sp.AtOr(i, j, t-1, 0)
			pab := k.AtOr(x-i, y-j, 0)
			weights = append(weights, pab*pb/pa)
			moves = append(moves, [2]int{i - x, j - y})
		}
	}
	return weights, moves, nil
}

func (w MultiStep) GeneratePath(prog dp.Program, toX, toY, timeSteps int) (walk.Walk, error) {
	sp, ok := prog.(*dp.Simple)
	if !ok {
		return nil, ErrWrongDynamicProgramType
	}

	if sp.AtOr(toX, toY, timeSteps, 0) == 0 {
		return nil, ErrNoPathExists
	}

	radius := w.MaxStepSize
	if radius < 1 {
		radius = 1
	}

	k := w.Kernel
	if k == nil {
		k = sp.Kernel()
	}

	path := make(walk.Walk, 0, timeSteps+1)
	x, y := toX, toY

	for t := timeSteps; t >= 1; t-- {
		path = append(path, dataset.XYPoint{X: int64(x), Y: int64(y)})

		weights, moves, err := squareWeights(sp, k, x, y, t, radius)
		if err != nil {
			return nil, err
		}
		idx, err := sampleIndex(weights)
		if err != nil {
			return nil, err
		}
		x += moves[idx][0]
		y += moves[idx][1]
	}

	path = append(path, dataset.XYPoint{X: int64(x), Y: int64(y)})
	reverse(path)
	return path, nil
}

func (MultiStep) Name(short bool) string {
	if short {
		return "msw"
	}
	return "Multi Step Walker"
}
