// Package walker provides the algorithms that reconstruct concrete paths
// from a computed dynamic program by backward, probability-weighted sampling
// from the target cell to the origin.
package walker

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/walk"
)

var (
	// ErrWrongDynamicProgramType is returned when a walker is paired with a
	// program of the wrong shape, e.g. a single-table walker given a
	// multi-variant program.
	ErrWrongDynamicProgramType = errors.New("wrong type of dynamic program given")

	// ErrNoPathExists is returned when the target cell holds no probability
	// mass at the requested time step. This is deterministic and checked
	// before any sampling.
	ErrNoPathExists = errors.New("no path exists")

	// ErrInconsistentPath is returned when every candidate weight is zero in
	// the middle of a reconstruction. This is a legitimate outcome near
	// barriers or when the walker model does not match the program.
	ErrInconsistentPath = errors.New("inconsistent path")

	// ErrRandomDistribution is returned for malformed candidate weights other
	// than the all-zero case, e.g. NaN or negative values.
	ErrRandomDistribution = errors.New("could not build random distribution from weights")
)

// Walker reconstructs a single path of length timeSteps+1 ending at
// (toX, toY). Every call is independently randomized; concurrent calls need
// no synchronization.
type Walker interface {
	GeneratePath(prog dp.Program, toX, toY, timeSteps int) (walk.Walk, error)
	Name(short bool) string
}

// GeneratePaths repeats independent GeneratePath calls qty times. It stops at
// the first error.
func GeneratePaths(w Walker, prog dp.Program, qty, toX, toY, timeSteps int) ([]walk.Walk, error) {
	paths := make([]walk.Walk, 0, qty)
	for i := 0; i < qty; i++ {
		p, err := w.GeneratePath(prog, toX, toY, timeSteps)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// sampleIndex draws one index from the categorical distribution given by the
// weights. All-zero weights report ErrInconsistentPath; NaN, infinite or
// negative weights report ErrRandomDistribution.
func sampleIndex(weights []float64) (int, error) {
	sum := 0.0
	for _, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, ErrRandomDistribution
		}
		sum += w
	}
	if sum == 0 {
		return 0, ErrInconsistentPath
	}

	idx, ok := sampleuv.NewWeighted(weights, nil).Take()
	if !ok {
		return 0, ErrInconsistentPath
	}
	return idx, nil
}
