// Package dp implements the dynamic programs that propagate one-step
// transition kernels across a bounded 2D grid, producing for every cell and
// time step the probability of occupying that cell. Computed tables are
// consumed by the walker package to backward-sample concrete paths.
package dp

import "io"

// Kind selects between the two dynamic program layouts. The set is closed:
// persistence and building switch exhaustively over it.
type Kind int

const (
	// KindSimple is a single-table program driven by one kernel.
	KindSimple Kind = iota

	// KindMulti keeps one table per kernel variant, e.g. one per last
	// direction taken for correlated walks.
	KindMulti
)

// Program is the capability surface shared by both program kinds. Cell access
// differs in arity between the kinds (Multi adds a variant axis), so it lives
// on the concrete types.
type Program interface {
	// Limits returns the inclusive logical coordinate range (-T, T).
	Limits() (int, int)

	// TimeLimit returns the time horizon T.
	TimeLimit() int

	// Compute fills the table serially. It recomputes from scratch and may be
	// invoked again.
	Compute()

	// ComputeParallel fills the table using the tiled worker pool. Time steps
	// remain strictly sequential; within a step the grid is split into a 3x3
	// tile grid computed concurrently.
	ComputeParallel()

	// FieldProbabilities returns the per-cell mask grid. Values are in [0, 1];
	// 0 marks an impassable barrier.
	FieldProbabilities() [][]float64

	// FieldTypes returns the per-cell field type grid, or nil if the program
	// was built from plain probabilities.
	FieldTypes() [][]int

	// Print writes the table at time step t to w.
	Print(w io.Writer, t int)

	// Save writes the computed table and field mask to w in the compressed
	// binary format understood by LoadSimple/LoadMulti.
	Save(w io.Writer) error
}
