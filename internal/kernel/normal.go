package kernel

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// NormalDistGenerator fills a kernel with the density of a bivariate normal
// distribution centered on the kernel, with diagonal covariance Diffusion.
// The weights are normalized to sum 1 over the kernel footprint.
type NormalDistGenerator struct {
	Diffusion float64
	Size      int
}

func (g NormalDistGenerator) Prepare(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	return kernels[0].Initialize(g.Size)
}

func (g NormalDistGenerator) Generate(kernels []*Kernel) error {
	if len(kernels) < 1 {
		return ErrOneKernelRequired
	}
	k := kernels[0]

	sigma := mat.NewSymDense(2, []float64{g.Diffusion, 0, 0, g.Diffusion})
	dist, ok := distmv.NewNormal([]float64{0, 0}, sigma, nil)
	if !ok {
		return errors.New("covariance matrix is not positive definite")
	}

	half := g.Size / 2
	weights := make([]float64, 0, g.Size*g.Size)
	for dx := -half; dx <= half; dx++ {
		for dy := -half; dy <= half; dy++ {
			weights = append(weights, math.Exp(dist.LogProb([]float64{float64(dx), float64(dy)})))
		}
	}
	floats.Scale(1.0/floats.Sum(weights), weights)

	i := 0
	for dx := -half; dx <= half; dx++ {
		for dy := -half; dy <= half; dy++ {
			k.Set(dx, dy, weights[i])
			i++
		}
	}
	return nil
}

func (g NormalDistGenerator) GeneratesQty() int { return 1 }

func (g NormalDistGenerator) Name() (string, string) { return "nd", "Normal Distribution" }
