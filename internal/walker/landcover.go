package walker

import (
	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/walk"
)

// LandCover backward-samples through a Simple program with a per-cell step
// radius looked up from a land-cover classification raster. LandCover is
// indexed [x+L][y+L] for a raster of side 2L+1; MaxStepSizes maps each cover
// type to the maximum step radius inside it. Cover types missing from the
// map fall back to radius 1. The kernel is carried explicitly because the
// program may have been restored from a snapshot, which holds no kernel.
type LandCover struct {
	MaxStepSizes map[int]int
	LandCover    [][]int
	Kernel       *kernel.Kernel
}

func (w LandCover) radiusAt(x, y int) int {
	limit := len(w.LandCover) / 2
	cover := w.LandCover[limit+x][limit+y]
	if r, ok := w.MaxStepSizes[cover]; ok && r >= 1 {
		return r
	}
	return 1
}

func (w LandCover) GeneratePath(prog dp.Program, toX, toY, timeSteps int) (walk.Walk, error) {
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

		weights, moves, err := squareWeights(sp, w.Kernel, x, y, t, w.radiusAt(x, y))
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

func (LandCover) Name(short bool) string {
	if short {
		return "lcw"
	}
	return "Land Cover Walker"
}
