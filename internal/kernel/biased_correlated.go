package kernel

// BiasedCorrelatedRwGenerator combines a directional pull with step
// persistence: each correlated variant kernel is multiplied elementwise by a
// single biased kernel and renormalized to sum 1.
type BiasedCorrelatedRwGenerator struct {
	Probability float64
	Direction   Direction
	Persistence float64
}

func (g BiasedCorrelatedRwGenerator) Prepare(kernels []*Kernel) error {
	if len(kernels) != g.GeneratesQty() {
		return ErrNotEnoughKernels
	}
	for _, k := range kernels {
		if err := k.Initialize(3); err != nil {
			return err
		}
	}
	return nil
}

func (g BiasedCorrelatedRwGenerator) Generate(kernels []*Kernel) error {
	if len(kernels) != g.GeneratesQty() {
		return ErrNotEnoughKernels
	}

	correlated, err := MultipleFromGenerator(CorrelatedRwGenerator{Persistence: g.Persistence})
	if err != nil {
		return err
	}
	biased, err := FromGenerator(BiasedRwGenerator{
		Probability: g.Probability,
		Direction:   g.Direction,
	})
	if err != nil {
		return err
	}

	for i, k := range correlated {
		if err := k.MulAssign(biased); err != nil {
			return err
		}
		k.Scale(1.0 / k.Sum())
		*kernels[i] = *k
	}
	return nil
}

func (g BiasedCorrelatedRwGenerator) GeneratesQty() int { return 5 }

func (g BiasedCorrelatedRwGenerator) Name() (string, string) {
	return "bcrw", "Biased and correlated RW"
}
