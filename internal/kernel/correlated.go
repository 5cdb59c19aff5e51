package kernel

// CorrelatedRwGenerator produces five kernels, one per last direction taken.
// Each kernel biases the walk toward repeating that direction with weight
// Persistence. The variant order matches Directions.
type CorrelatedRwGenerator struct {
	Persistence float64
}

func (g CorrelatedRwGenerator) Prepare(kernels []*Kernel) error {
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

func (g CorrelatedRwGenerator) Generate(kernels []*Kernel) error {
	if len(kernels) != g.GeneratesQty() {
		return ErrNotEnoughKernels
	}
	for i, d := range Directions {
		k, err := FromGenerator(BiasedRwGenerator{
			Probability: g.Persistence,
			Direction:   d,
		})
		if err != nil {
			return err
		}
		*kernels[i] = *k
	}
	return nil
}

func (g CorrelatedRwGenerator) GeneratesQty() int { return 5 }

func (g CorrelatedRwGenerator) Name() (string, string) { return "crw", "Correlated RW" }
