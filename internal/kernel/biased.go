package kernel

// BiasedRwGenerator produces the kernel of a random walk pulled toward one
// direction: weight Probability on Direction and the remainder split evenly
// over the other four moves.
type BiasedRwGenerator struct {
	Probability float64
	Direction   Direction
}

func (g BiasedRwGenerator) Prepare(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	return kernels[0].Initialize(3)
}

func (g BiasedRwGenerator) Generate(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	k := kernels[0]
	otherProb := (1.0 - g.Probability) / 4.0

	dx, dy := g.Direction.Offset()
	k.Set(dx, dy, g.Probability)

	for _, d := range Directions {
		if d == g.Direction {
			continue
		}
		dx, dy := d.Offset()
		k.Set(dx, dy, otherProb)
	}
	return nil
}

func (g BiasedRwGenerator) GeneratesQty() int { return 1 }

func (g BiasedRwGenerator) Name() (string, string) { return "brw", "Biased RW" }
