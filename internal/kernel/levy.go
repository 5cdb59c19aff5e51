package kernel

// LevyWalkGenerator produces a 21x21 kernel mixing the usual 5-point local
// stencil with four long-range jumps at distance 10, approximating a Lévy
// flight on the grid.
type LevyWalkGenerator struct{}

func (LevyWalkGenerator) Prepare(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	return kernels[0].Initialize(21)
}

func (LevyWalkGenerator) Generate(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	k := kernels[0]

	k.Set(-10, 0, 0.05)
	k.Set(10, 0, 0.05)
	k.Set(0, -10, 0.05)
	k.Set(0, 10, 0.05)

	k.Set(0, 0, 0.2)
	k.Set(-1, 0, 0.2)
	k.Set(1, 0, 0.2)
	k.Set(0, -1, 0.2)
	k.Set(0, 1, 0.2)
	return nil
}

func (LevyWalkGenerator) GeneratesQty() int { return 1 }

func (LevyWalkGenerator) Name() (string, string) { return "lw", "Lévy Walk" }
