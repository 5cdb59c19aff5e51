package dp

import (
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/monitoring"
)

// Multi is a dynamic program keeping one table per kernel variant. Each
// variant propagates independently with its own kernel; all variants share
// the same field mask. Correlated walks use one variant per last direction
// taken.
type Multi struct {
	// table is indexed [t][variant][x+T][y+T].
	table              [][][][]float64
	timeLimit          int
	kernels            []*kernel.Kernel
	fieldProbabilities [][]float64
	fieldTypes         [][]int
}

func newMulti(timeLimit int, kernels []*kernel.Kernel, fieldProbabilities [][]float64) *Multi {
	side := 2*timeLimit + 1
	table := make([][][][]float64, timeLimit+1)
	for t := range table {
		table[t] = make([][][]float64, len(kernels))
		for v := range table[t] {
			table[t][v] = make([][]float64, side)
			for x := range table[t][v] {
				table[t][v][x] = make([]float64, side)
			}
		}
	}
	return &Multi{
		table:              table,
		timeLimit:          timeLimit,
		kernels:            kernels,
		fieldProbabilities: fieldProbabilities,
	}
}

// At returns the probability of cell (x, y) at time t for the given variant.
func (dp *Multi) At(x, y, t, variant int) float64 {
	return dp.table[t][variant][dp.timeLimit+x][dp.timeLimit+y]
}

// AtOr returns the probability of cell (x, y) at time t for the given
// variant, or def if the cell or time step lies outside the table.
func (dp *Multi) AtOr(x, y, t, variant int, def float64) float64 {
	if t < 0 || t > dp.timeLimit {
		return def
	}
	if x < -dp.timeLimit || x > dp.timeLimit || y < -dp.timeLimit || y > dp.timeLimit {
		return def
	}
	return dp.At(x, y, t, variant)
}

// Set stores a probability for cell (x, y) at time t for the given variant.
func (dp *Multi) Set(x, y, t, variant int, val float64) {
	dp.table[t][variant][dp.timeLimit+x][dp.timeLimit+y] = val
}

// Variants returns the number of kernel variants.
func (dp *Multi) Variants() int {
	return len(dp.kernels)
}

// Kernels returns the variant kernels. For loaded programs these are
// placeholders and must not be used to recompute.
func (dp *Multi) Kernels() []*kernel.Kernel {
	return dp.kernels
}

// Limits returns the inclusive logical coordinate range (-T, T).
func (dp *Multi) Limits() (int, int) {
	return -dp.timeLimit, dp.timeLimit
}

// TimeLimit returns the time horizon T.
func (dp *Multi) TimeLimit() int {
	return dp.timeLimit
}

func (dp *Multi) fieldProbabilityAt(x, y int) float64 {
	return dp.fieldProbabilities[dp.timeLimit+x][dp.timeLimit+y]
}

// applyKernelsAt recomputes cell (x, y) at time t for every variant.
func (dp *Multi) applyKernelsAt(x, y, t int) {
	limitNeg, limitPos := dp.Limits()

	for variant, k := range dp.kernels {
		ks := k.Size() / 2
		sum := 0.0

		for i := x - ks; i <= x+ks; i++ {
			if i < limitNeg || i > limitPos {
				continue
			}
			for j := y - ks; j <= y+ks; j++ {
				if j < limitNeg || j > limitPos {
					continue
				}
				sum += dp.At(i, j, t-1, variant) * k.At(x-i, y-j)
			}
		}

		dp.Set(x, y, t, variant, sum*dp.fieldProbabilityAt(x, y))
	}
}

// Compute fills all variant tables serially, seeding every variant's origin
// at t = 0 with probability 1.
func (dp *Multi) Compute() {
	defer func(start time.Time) {
		monitoring.TimeTrack("dp.compute", time.Since(start))
	}(time.Now())

	limitNeg, limitPos := dp.Limits()
	for variant := range dp.kernels {
		dp.Set(0, 0, 0, variant, 1.0)
	}

	for t := 1; t <= dp.timeLimit; t++ {
		for x := limitNeg; x <= limitPos; x++ {
			for y := limitNeg; y <= limitPos; y++ {
				dp.applyKernelsAt(x, y, t)
			}
		}
	}
}

// FieldProbabilities returns the per-cell mask grid.
func (dp *Multi) FieldProbabilities() [][]float64 {
	return dp.fieldProbabilities
}

// FieldTypes returns the per-cell type grid, or nil for untyped programs.
func (dp *Multi) FieldTypes() [][]int {
	return dp.fieldTypes
}

// Print writes the table at time step t to w, variant by variant.
func (dp *Multi) Print(w io.Writer, t int) {
	side := 2*dp.timeLimit + 1
	for variant := range dp.kernels {
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				fmt.Fprintf(w, "%v ", dp.table[t][variant][x][y])
			}
			fmt.Fprintln(w)
		}
	}
}
