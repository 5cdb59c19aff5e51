package walker

import (
	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/walk"
)

// Levy backward-samples through a Simple program computed with a kernel that
// carries long-range jump weights. Each step draws from one merged candidate
// set: the local 5-point stencil scaled by 1-JumpProbability and the four
// axis-aligned jumps of length JumpDistance scaled by JumpProbability, all
// reweighted by kernel(a-b) * P(b, t-1) / P(a, t). A jump consumes a single
// time step, since the forward table was computed with the same kernel.
type Levy struct {
	JumpProbability float64
	JumpDistance    int

	// Kernel overrides the program's own kernel when set. Required for
	// programs restored from a snapshot, which carry only a placeholder.
	Kernel *kernel.Kernel
}

func (w Levy) GeneratePath(prog dp.Program, toX, toY, timeSteps int) (walk.Walk, error) {
	sp, ok := prog.(*dp.Simple)
	if !ok {
		return nil, ErrWrongDynamicProgramType
	}

	if sp.AtOr(toX, toY, timeSteps, 0) == 0 {
		return nil, ErrNoPathExists
	}

	jump := w.JumpDistance
	if jump < 1 {
		jump = 1
	}

	k := w.Kernel
	if k == nil {
		k = sp.Kernel()
	}
	path := make(walk.Walk, 0, timeSteps+1)
	x, y := toX, toY

	for t := timeSteps; t >= 1; t-- {
		path = append(path, dataset.XYPoint{X: int64(x), Y: int64(y)})

		pa := sp.AtOr(x, y, t, 0)
		if pa == 0 {
			return nil, ErrInconsistentPath
		}

		weights := make([]float64, 0, len(neighborMoves)+4)
		moves := make([][2]int, 0, len(neighborMoves)+4)

		for _, m := range neighborMoves {
			pb := sp.AtOr(x+m.dx, y+m.dy, t-1, 0)
			pab := k.AtOr(-m.dx, -m.dy, 0)
			weights = append(weights, (1-w.JumpProbability)*pab*pb/pa)
			moves = append(moves, [2]int{m.dx, m.dy})
		}
		for _, m := range neighborMoves[1:] {
			dx, dy := m.dx*jump, m.dy*jump
			pb := sp.AtOr(x+dx, y+dy, t-1, 0)
			pab := k.AtOr(-dx, -dy, 0)
			weights = append(weights, w.JumpProbability*pab*pb/pa)
			moves = append(moves, [2]int{dx, dy})
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

func (Levy) Name(short bool) string {
	if short {
		return "lw"
	}
	return "Lévy Walker"
}
