package kernel

import "errors"

var (
	// ErrOneKernelRequired is returned when a generator is driven without the
	// single kernel slot it expects.
	ErrOneKernelRequired = errors.New("generator requires exactly one kernel")

	// ErrNotEnoughKernels is returned when a generator is driven with fewer
	// kernel slots than it declares through GeneratesQty.
	ErrNotEnoughKernels = errors.New("not enough kernels for generator")
)

// Generator produces one or more kernels in two phases: Prepare sizes the
// kernel slots, Generate fills in the weights. GeneratesQty declares how many
// kernels the generator produces; direction-aware models produce five, one
// per last direction taken (North, East, South, West, Stay).
type Generator interface {
	Prepare(kernels []*Kernel) error
	Generate(kernels []*Kernel) error
	GeneratesQty() int
	Name() (short, long string)
}

// FromGenerator drives a single-kernel generator and returns the result.
func FromGenerator(g Generator) (*Kernel, error) {
	if g.GeneratesQty() != 1 {
		return nil, ErrOneKernelRequired
	}
	short, long := g.Name()
	kernels := []*Kernel{{shortName: short, longName: long}}
	if err := g.Prepare(kernels); err != nil {
		return nil, err
	}
	if err := g.Generate(kernels); err != nil {
		return nil, err
	}
	return kernels[0], nil
}

// MultipleFromGenerator drives a generator that declares multiple kernels and
// returns all of them in declaration order.
func MultipleFromGenerator(g Generator) ([]*Kernel, error) {
	short, long := g.Name()
	kernels := make([]*Kernel, g.GeneratesQty())
	for i := range kernels {
		kernels[i] = &Kernel{shortName: short, longName: long}
	}
	if err := g.Prepare(kernels); err != nil {
		return nil, err
	}
	if err := g.Generate(kernels); err != nil {
		return nil, err
	}
	return kernels, nil
}
