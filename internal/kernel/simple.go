package kernel

// SimpleRwGenerator produces the kernel of an unbiased random walk: equal
// weight on staying put and each of the four orthogonal neighbors.
type SimpleRwGenerator struct{}

func (SimpleRwGenerator) Prepare(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	return kernels[0].Initialize(3)
}

func (SimpleRwGenerator) Generate(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	k := kernels[0]
	k.Set(0, 0, 0.2)
	k.Set(0, -1, 0.2)
	k.Set(1, 0, 0.2)
	k.Set(0, 1, 0.2)
	k.Set(-1, 0, 0.2)
	return nil
}

func (SimpleRwGenerator) GeneratesQty() int { return 1 }

func (SimpleRwGenerator) Name() (string, string) { return "srw", "Simple RW" }
