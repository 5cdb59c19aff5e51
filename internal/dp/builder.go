package dp

import (
	"errors"

	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/kernel"
)

var (
	// ErrNoKindSet is returned when neither Simple nor Multi was chosen.
	ErrNoKindSet = errors.New("a kind of dynamic program must be chosen")

	// ErrNoTimeLimitSet is returned when no time limit was set.
	ErrNoTimeLimitSet = errors.New("a time limit must be set")

	// ErrNoKernelSet is returned when a simple program is built without a kernel.
	ErrNoKernelSet = errors.New("a kernel must be set")

	// ErrNoKernelsSet is returned when a multi program is built without kernels.
	ErrNoKernelsSet = errors.New("kernels must be set")

	// ErrSingleKernelForMulti is returned when a multi program is given a
	// single kernel via Kernel instead of Kernels.
	ErrSingleKernelForMulti = errors.New("a multi dynamic program takes multiple kernels, not a single one")

	// ErrMultipleKernelsForSimple is returned when a simple program is given
	// kernels via Kernels instead of Kernel.
	ErrMultipleKernelsForSimple = errors.New("a simple dynamic program takes one kernel, not multiple ones")

	// ErrWrongSizeOfFieldProbabilities is returned when the mask grid does not
	// match the table side length 2T+1.
	ErrWrongSizeOfFieldProbabilities = errors.New("field probabilities must have the same size as the table")

	// ErrWrongSizeOfFieldTypes is returned when the type grid does not match
	// the table side length 2T+1.
	ErrWrongSizeOfFieldTypes = errors.New("field types must have the same size as the table")

	// ErrUnknownFieldType is returned when a type grid references an id that
	// has no probability mapping.
	ErrUnknownFieldType = errors.New("field type has no probability mapping")

	// ErrBarrierOutOfRange is returned when a barrier lies outside [-T, T].
	ErrBarrierOutOfRange = errors.New("barriers must be inside the time limit range")
)

// Builder assembles a dynamic program. A kind and a time limit are required;
// a Simple program additionally needs exactly one kernel and a Multi program
// a kernel slice. Barriers and field probabilities are optional.
type Builder struct {
	kind               Kind
	hasKind            bool
	timeLimit          int
	hasTimeLimit       bool
	kernel             *kernel.Kernel
	kernels            []*kernel.Kernel
	fieldProbabilities [][]float64
	fieldTypes         [][]int
	typeProbabilities  map[int]float64
	barriers           []dataset.XYPoint
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Simple selects the single-table program kind.
func (b *Builder) Simple() *Builder {
	b.kind = KindSimple
	b.hasKind = true
	return b
}

// Multi selects the per-variant program kind.
func (b *Builder) Multi() *Builder {
	b.kind = KindMulti
	b.hasKind = true
	return b
}

// WithKind selects the program kind explicitly.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	b.hasKind = true
	return b
}

// TimeLimit sets the time horizon T. The table covers coordinates [-T, T].
func (b *Builder) TimeLimit(timeLimit int) *Builder {
	b.timeLimit = timeLimit
	b.hasTimeLimit = true
	return b
}

// Kernel sets the kernel for a simple program.
func (b *Builder) Kernel(k *kernel.Kernel) *Builder {
	b.kernel = k
	return b
}

// Kernels sets the variant kernels for a multi program.
func (b *Builder) Kernels(ks []*kernel.Kernel) *Builder {
	b.kernels = ks
	return b
}

// FieldProbabilities sets the per-cell mask grid, indexed [x+T][y+T] with
// values in [0, 1]. Cells set to 0 are impassable.
func (b *Builder) FieldProbabilities(probabilities [][]float64) *Builder {
	b.fieldProbabilities = probabilities
	return b
}

// FieldTypes sets a per-cell type grid, indexed [x+T][y+T], together with a
// mapping from type id to field probability. The mask grid is derived from
// the mapping during Build.
func (b *Builder) FieldTypes(types [][]int, probabilities map[int]float64) *Builder {
	b.fieldTypes = types
	b.typeProbabilities = probabilities
	return b
}

// AddSingleBarrier blocks a single cell.
func (b *Builder) AddSingleBarrier(at dataset.XYPoint) *Builder {
	b.barriers = append(b.barriers, at)
	return b
}

// AddRectBarrier blocks every cell in the inclusive rectangle spanned by from
// and to.
func (b *Builder) AddRectBarrier(from, to dataset.XYPoint) *Builder {
	for x := from.X; x <= to.X; x++ {
		for y := from.Y; y <= to.Y; y++ {
			b.barriers = append(b.barriers, dataset.XYPoint{X: x, Y: y})
		}
	}
	return b
}

// Build validates the configuration and returns the assembled program.
func (b *Builder) Build() (Program, error) {
	if !b.hasTimeLimit {
		return nil, ErrNoTimeLimitSet
	}
	if !b.hasKind {
		return nil, ErrNoKindSet
	}

	side := 2*b.timeLimit + 1

	// The mask grid is copied so that type derivation and barriers below
	// never write into the caller's slice.
	var fieldProbabilities [][]float64
	if b.fieldProbabilities != nil {
		if len(b.fieldProbabilities) != side {
			return nil, ErrWrongSizeOfFieldProbabilities
		}
		fieldProbabilities = make([][]float64, side)
		for x, col := range b.fieldProbabilities {
			if len(col) != side {
				return nil, ErrWrongSizeOfFieldProbabilities
			}
			fieldProbabilities[x] = append([]float64(nil), col...)
		}
	} else {
		fieldProbabilities = make([][]float64, side)
		for x := range fieldProbabilities {
			fieldProbabilities[x] = make([]float64, side)
			for y := range fieldProbabilities[x] {
				fieldProbabilities[x][y] = 1.0
			}
		}
	}

	if b.fieldTypes != nil {
		if len(b.fieldTypes) != side {
			return nil, ErrWrongSizeOfFieldTypes
		}
		for x, col := range b.fieldTypes {
			if len(col) != side {
				return nil, ErrWrongSizeOfFieldTypes
			}
			for y, id := range col {
				p, ok := b.typeProbabilities[id]
				if !ok {
					return nil, ErrUnknownFieldType
				}
				fieldProbabilities[x][y] = p
			}
		}
	}

	limit := int64(b.timeLimit)
	for _, p := range b.barriers {
		if p.X < -limit || p.X > limit || p.Y < -limit || p.Y > limit {
			return nil, ErrBarrierOutOfRange
		}
		fieldProbabilities[limit+p.X][limit+p.Y] = 0.0
	}

	switch b.kind {
	case KindSimple:
		if b.kernels != nil {
			return nil, ErrMultipleKernelsForSimple
		}
		if b.kernel == nil {
			return nil, ErrNoKernelSet
		}
		dp := newSimple(b.timeLimit, b.kernel, fieldProbabilities)
		dp.fieldTypes = b.fieldTypes
		return dp, nil
	case KindMulti:
		if b.kernel != nil {
			return nil, ErrSingleKernelForMulti
		}
		if len(b.kernels) == 0 {
			return nil, ErrNoKernelsSet
		}
		dp := newMulti(b.timeLimit, b.kernels, fieldProbabilities)
		dp.fieldTypes = b.fieldTypes
		return dp, nil
	}
	return nil, ErrNoKindSet
}
