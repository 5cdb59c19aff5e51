package dp

import (
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/monitoring"
)

// Simple is a single-table dynamic program driven by one kernel. The table
// holds, for every time step t in [0, T] and every cell (x, y) in [-T, T], the
// probability that a walk starting at the origin occupies that cell at t.
type Simple struct {
	// table is indexed [t][x+T][y+T].
	table              [][][]float64
	timeLimit          int
	kernel             *kernel.Kernel
	fieldProbabilities [][]float64
	fieldTypes         [][]int
}

func newSimple(timeLimit int, k *kernel.Kernel, fieldProbabilities [][]float64) *Simple {
	side := 2*timeLimit + 1
	table := make([][][]float64, timeLimit+1)
	for t := range table {
		table[t] = make([][]float64, side)
		for x := range table[t] {
			table[t][x] = make([]float64, side)
		}
	}
	return &Simple{
		table:              table,
		timeLimit:          timeLimit,
		kernel:             k,
		fieldProbabilities: fieldProbabilities,
	}
}

// At returns the probability of cell (x, y) at time t. Coordinates are
// logical, i.e. in [-T, T].
func (dp *Simple) At(x, y, t int) float64 {
	return dp.table[t][dp.timeLimit+x][dp.timeLimit+y]
}

// AtOr returns the probability of cell (x, y) at time t, or def if the cell
// or time step lies outside the table.
func (dp *Simple) AtOr(x, y, t int, def float64) float64 {
	if t < 0 || t > dp.timeLimit {
		return def
	}
	if x < -dp.timeLimit || x > dp.timeLimit || y < -dp.timeLimit || y > dp.timeLimit {
		return def
	}
	return dp.At(x, y, t)
}

// Set stores a probability for cell (x, y) at time t.
func (dp *Simple) Set(x, y, t int, val float64) {
	dp.table[t][dp.timeLimit+x][dp.timeLimit+y] = val
}

// Kernel returns the kernel driving the program. For loaded programs this is
// a placeholder and must not be used to recompute.
func (dp *Simple) Kernel() *kernel.Kernel {
	return dp.kernel
}

// Limits returns the inclusive logical coordinate range (-T, T).
func (dp *Simple) Limits() (int, int) {
	return -dp.timeLimit, dp.timeLimit
}

// TimeLimit returns the time horizon T.
func (dp *Simple) TimeLimit() int {
	return dp.timeLimit
}

func (dp *Simple) fieldProbabilityAt(x, y int) float64 {
	return dp.fieldProbabilities[dp.timeLimit+x][dp.timeLimit+y]
}

// FieldProbabilityAt returns the mask value of cell (x, y), or 0 outside the
// table range.
func (dp *Simple) FieldProbabilityAt(x, y int) float64 {
	if x < -dp.timeLimit || x > dp.timeLimit || y < -dp.timeLimit || y > dp.timeLimit {
		return 0
	}
	return dp.fieldProbabilityAt(x, y)
}

// FieldTypeAt returns the field type id of cell (x, y). ok is false outside
// the table range or when the program carries no type grid.
func (dp *Simple) FieldTypeAt(x, y int) (int, bool) {
	if dp.fieldTypes == nil {
		return 0, false
	}
	if x < -dp.timeLimit || x > dp.timeLimit || y < -dp.timeLimit || y > dp.timeLimit {
		return 0, false
	}
	return dp.fieldTypes[dp.timeLimit+x][dp.timeLimit+y], true
}

// applyKernelAt recomputes cell (x, y) at time t from the previous step. The
// new value sums probability flowing in from every cell the kernel reaches,
// then applies the destination cell's own mask. Mass aimed outside the table
// is truncated.
func (dp *Simple) applyKernelAt(x, y, t int) {
	ks := dp.kernel.Size() / 2
	limitNeg, limitPos := dp.Limits()
	sum := 0.0

	for i := x - ks; i <= x+ks; i++ {
		if i < limitNeg || i > limitPos {
			continue
		}
		for j := y - ks; j <= y+ks; j++ {
			if j < limitNeg || j > limitPos {
				continue
			}
			// The kernel is addressed by the offset from source to
			// destination.
			sum += dp.At(i, j, t-1) * dp.kernel.At(x-i, y-j)
		}
	}

	dp.Set(x, y, t, sum*dp.fieldProbabilityAt(x, y))
}

// Compute fills the table serially, seeding the origin at t = 0 with
// probability 1.
func (dp *Simple) Compute() {
	defer func(start time.Time) {
		monitoring.TimeTrack("dp.compute", time.Since(start))
	}(time.Now())

	limitNeg, limitPos := dp.Limits()
	dp.Set(0, 0, 0, 1.0)

	for t := 1; t <= dp.timeLimit; t++ {
		for x := limitNeg; x <= limitPos; x++ {
			for y := limitNeg; y <= limitPos; y++ {
				dp.applyKernelAt(x, y, t)
			}
		}
	}
}

// FieldProbabilities returns the per-cell mask grid.
func (dp *Simple) FieldProbabilities() [][]float64 {
	return dp.fieldProbabilities
}

// FieldTypes returns the per-cell type grid, or nil for untyped programs.
func (dp *Simple) FieldTypes() [][]int {
	return dp.fieldTypes
}

// Print writes the table at time step t to w, one row per line, northernmost
// row first.
func (dp *Simple) Print(w io.Writer, t int) {
	side := 2*dp.timeLimit + 1
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			fmt.Fprintf(w, "%v ", dp.table[t][x][y])
		}
		fmt.Fprintln(w)
	}
}
