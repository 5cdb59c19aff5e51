// Package kernel provides odd-sized transition-probability kernels and the
// generators that produce them for the built-in random walk models.
package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrSizeEven is returned when a kernel is initialized with an even size.
	ErrSizeEven = errors.New("kernel size must be odd")

	// ErrSizeMismatch is returned when two kernels of different sizes are
	// combined elementwise.
	ErrSizeMismatch = errors.New("both kernels must have the same size")

	// ErrNotSquare is returned when a kernel literal is built from a value
	// count that is not a perfect square.
	ErrNotSquare = errors.New("kernel literal needs n^2 values to build a kernel of size n")

	// ErrRotation is returned for rotations that are not a multiple of 90 degrees.
	ErrRotation = errors.New("rotation must be a multiple of 90 degrees")
)

// Kernel is an odd-sized square matrix of one-step transition probabilities
// centered on a cell. Offsets are addressed relative to the center, so for a
// kernel of size n valid offsets are in [-n/2, n/2].
//
// probs is indexed [x][y]: x grows east, y grows south. North is (0, -1).
type Kernel struct {
	probs     [][]float64
	shortName string
	longName  string
}

// New allocates a zeroed kernel of the given odd size.
func New(size int, shortName, longName string) (*Kernel, error) {
	if size%2 == 0 {
		return nil, ErrSizeEven
	}
	k := &Kernel{shortName: shortName, longName: longName}
	k.alloc(size)
	return k, nil
}

// FromValues builds a kernel from n*n row-major probability values, the way
// they would be written down on paper (first row is the northernmost).
func FromValues(values ...float64) (*Kernel, error) {
	size := int(math.Sqrt(float64(len(values))))
	if size*size != len(values) {
		return nil, ErrNotSquare
	}
	k, err := New(size, "ck", "Custom Kernel")
	if err != nil {
		return nil, err
	}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			k.probs[col][row] = values[row*size+col]
		}
	}
	return k, nil
}

func (k *Kernel) alloc(size int) {
	k.probs = make([][]float64, size)
	for i := range k.probs {
		k.probs[i] = make([]float64, size)
	}
}

// Initialize reallocates the kernel as a zeroed matrix of the given odd size.
func (k *Kernel) Initialize(size int) error {
	if size%2 == 0 {
		return ErrSizeEven
	}
	k.alloc(size)
	return nil
}

// Size returns the side length of the kernel.
func (k *Kernel) Size() int {
	return len(k.probs)
}

// Set stores a weight at the given center-relative offset.
func (k *Kernel) Set(dx, dy int, val float64) {
	half := len(k.probs) / 2
	k.probs[half+dx][half+dy] = val
}

// At returns the weight at the given center-relative offset.
func (k *Kernel) At(dx, dy int) float64 {
	half := len(k.probs) / 2
	return k.probs[half+dx][half+dy]
}

// AtOr returns the weight at the given center-relative offset, or def if the
// offset lies outside the kernel footprint.
func (k *Kernel) AtOr(dx, dy int, def float64) float64 {
	half := len(k.probs) / 2
	if dx < -half || dx > half || dy < -half || dy > half {
		return def
	}
	return k.probs[half+dx][half+dy]
}

// Sum returns the sum of all weights.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, col := range k.probs {
		for _, v := range col {
			sum += v
		}
	}
	return sum
}

// Rotate rotates the kernel clockwise by the given degrees, which must be a
// multiple of 90.
func (k *Kernel) Rotate(degrees int) error {
	if degrees%90 != 0 {
		return ErrRotation
	}
	n := len(k.probs)
	for r := 0; r < degrees/90; r++ {
		for i := 0; i < n/2; i++ {
			for j := i; j < n-i-1; j++ {
				tmp := k.probs[i][j]
				k.probs[i][j] = k.probs[j][n-1-i]
				k.probs[j][n-1-i] = k.probs[n-1-i][n-1-j]
				k.probs[n-1-i][n-1-j] = k.probs[n-1-j][i]
				k.probs[n-1-j][i] = tmp
			}
		}
	}
	return nil
}

// Mul returns the elementwise product of two kernels of equal size.
func (k *Kernel) Mul(other *Kernel) (*Kernel, error) {
	if k.Size() != other.Size() {
		return nil, ErrSizeMismatch
	}
	out := k.Clone()
	for x := range out.probs {
		for y := range out.probs[x] {
			out.probs[x][y] *= other.probs[x][y]
		}
	}
	return out, nil
}

// MulAssign multiplies the kernel elementwise by another kernel of equal size.
func (k *Kernel) MulAssign(other *Kernel) error {
	if k.Size() != other.Size() {
		return ErrSizeMismatch
	}
	for x := range k.probs {
		for y := range k.probs[x] {
			k.probs[x][y] *= other.probs[x][y]
		}
	}
	return nil
}

// Scale multiplies every weight by the given factor.
func (k *Kernel) Scale(factor float64) {
	for x := range k.probs {
		for y := range k.probs[x] {
			k.probs[x][y] *= factor
		}
	}
}

// Clone returns a deep copy of the kernel.
func (k *Kernel) Clone() *Kernel {
	out := &Kernel{shortName: k.shortName, longName: k.longName}
	out.probs = make([][]float64, len(k.probs))
	for i := range k.probs {
		out.probs[i] = make([]float64, len(k.probs[i]))
		copy(out.probs[i], k.probs[i])
	}
	return out
}

// Equal reports whether two kernels hold identical weights.
func (k *Kernel) Equal(other *Kernel) bool {
	if k.Size() != other.Size() {
		return false
	}
	for x := range k.probs {
		for y := range k.probs[x] {
			if k.probs[x][y] != other.probs[x][y] {
				return false
			}
		}
	}
	return true
}

// Name returns the short or long display name of the kernel.
func (k *Kernel) Name(short bool) string {
	if short {
		return k.shortName
	}
	return k.longName
}

// String renders the kernel row by row for debugging.
func (k *Kernel) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", k.longName)
	for y := 0; y < len(k.probs); y++ {
		b.WriteString("| ")
		for x := 0; x < len(k.probs); x++ {
			fmt.Fprintf(&b, "%v ", k.probs[x][y])
		}
		b.WriteString("|\n")
	}
	return b.String()
}
