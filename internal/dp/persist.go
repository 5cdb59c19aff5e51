package dp

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/banshee-data/walk.report/internal/kernel"
)

// Table snapshots are gzip-compressed little-endian binary streams. A Simple
// snapshot is the u64 time limit followed by the f64 table in (t, x, y) order
// and the mask trailer in (x, y) order. A Multi snapshot inserts a u64
// variant count after the time limit and orders the table (t, variant, x, y).
// The trailer holds f64 field probabilities, or u64 type ids for programs
// built from a type grid; both are 8 bytes per cell, so the caller must know
// which flavor a file holds.

// maxLoadTimeLimit bounds the time limit accepted from a snapshot, so a
// corrupt header fails fast instead of attempting an enormous allocation.
const maxLoadTimeLimit = 1 << 16

// maxLoadVariants bounds the variant count accepted from a Multi snapshot.
const maxLoadVariants = 64

// placeholderKernel is attached to loaded programs, which carry no kernel of
// their own. Walkers that need kernel weights cannot run on loaded programs.
func placeholderKernel() *kernel.Kernel {
	k, err := kernel.New(1, "none", "Placeholder Kernel")
	if err != nil {
		panic(err)
	}
	return k
}

func writeMask(w io.Writer, fieldProbabilities [][]float64, fieldTypes [][]int) error {
	if fieldTypes != nil {
		for x := range fieldTypes {
			for _, id := range fieldTypes[x] {
				if err := binary.Write(w, binary.LittleEndian, uint64(id)); err != nil {
					return fmt.Errorf("write field types: %w", err)
				}
			}
		}
		return nil
	}
	for x := range fieldProbabilities {
		if err := binary.Write(w, binary.LittleEndian, fieldProbabilities[x]); err != nil {
			return fmt.Errorf("write field probabilities: %w", err)
		}
	}
	return nil
}

// Save writes the table and mask to w. Programs built from a type grid write
// type ids in the trailer instead of probabilities.
func (dp *Simple) Save(w io.Writer) error {
	gz := gzip.NewWriter(w)

	if err := binary.Write(gz, binary.LittleEndian, uint64(dp.timeLimit)); err != nil {
		return fmt.Errorf("write time limit: %w", err)
	}
	for t := range dp.table {
		for x := range dp.table[t] {
			if err := binary.Write(gz, binary.LittleEndian, dp.table[t][x]); err != nil {
				return fmt.Errorf("write table at t=%d: %w", t, err)
			}
		}
	}
	if err := writeMask(gz, dp.fieldProbabilities, dp.fieldTypes); err != nil {
		return err
	}
	return gz.Close()
}

// Save writes the variant tables and mask to w.
func (dp *Multi) Save(w io.Writer) error {
	gz := gzip.NewWriter(w)

	if err := binary.Write(gz, binary.LittleEndian, uint64(dp.timeLimit)); err != nil {
		return fmt.Errorf("write time limit: %w", err)
	}
	if err := binary.Write(gz, binary.LittleEndian, uint64(len(dp.kernels))); err != nil {
		return fmt.Errorf("write variant count: %w", err)
	}
	for t := range dp.table {
		for v := range dp.table[t] {
			for x := range dp.table[t][v] {
				if err := binary.Write(gz, binary.LittleEndian, dp.table[t][v][x]); err != nil {
					return fmt.Errorf("write table at t=%d variant=%d: %w", t, v, err)
				}
			}
		}
	}
	if err := writeMask(gz, dp.fieldProbabilities, dp.fieldTypes); err != nil {
		return err
	}
	return gz.Close()
}

func readTimeLimit(r io.Reader) (int, error) {
	var tl uint64
	if err := binary.Read(r, binary.LittleEndian, &tl); err != nil {
		return 0, fmt.Errorf("read time limit: %w", err)
	}
	if tl > maxLoadTimeLimit {
		return 0, fmt.Errorf("implausible time limit %d in snapshot", tl)
	}
	return int(tl), nil
}

func readMaskProbs(r io.Reader, fieldProbabilities [][]float64) error {
	for x := range fieldProbabilities {
		if err := binary.Read(r, binary.LittleEndian, fieldProbabilities[x]); err != nil {
			return fmt.Errorf("read field probabilities: %w", err)
		}
	}
	return nil
}

func readMaskTypes(r io.Reader, side int, typeProbabilities map[int]float64) ([][]float64, [][]int, error) {
	fieldProbabilities := make([][]float64, side)
	fieldTypes := make([][]int, side)
	for x := 0; x < side; x++ {
		fieldProbabilities[x] = make([]float64, side)
		fieldTypes[x] = make([]int, side)
		for y := 0; y < side; y++ {
			var id uint64
			if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
				return nil, nil, fmt.Errorf("read field types: %w", err)
			}
			p, ok := typeProbabilities[int(id)]
			if !ok {
				return nil, nil, fmt.Errorf("field type %d: %w", id, ErrUnknownFieldType)
			}
			fieldTypes[x][y] = int(id)
			fieldProbabilities[x][y] = p
		}
	}
	return fieldProbabilities, fieldTypes, nil
}

func loadSimple(r io.Reader, typeProbabilities map[int]float64) (*Simple, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open compressed snapshot: %w", err)
	}
	defer gz.Close()

	timeLimit, err := readTimeLimit(gz)
	if err != nil {
		return nil, err
	}

	dp := newSimple(timeLimit, placeholderKernel(), nil)
	for t := range dp.table {
		for x := range dp.table[t] {
			if err := binary.Read(gz, binary.LittleEndian, dp.table[t][x]); err != nil {
				return nil, fmt.Errorf("read table at t=%d: %w", t, err)
			}
		}
	}

	side := 2*timeLimit + 1
	if typeProbabilities != nil {
		dp.fieldProbabilities, dp.fieldTypes, err = readMaskTypes(gz, side, typeProbabilities)
		if err != nil {
			return nil, err
		}
		return dp, nil
	}

	dp.fieldProbabilities = make([][]float64, side)
	for x := range dp.fieldProbabilities {
		dp.fieldProbabilities[x] = make([]float64, side)
	}
	if err := readMaskProbs(gz, dp.fieldProbabilities); err != nil {
		return nil, err
	}
	return dp, nil
}

// LoadSimple restores a Simple program from a snapshot written by Save. The
// restored program carries a placeholder kernel and is read-only in the sense
// that recomputing it is not meaningful.
func LoadSimple(r io.Reader) (*Simple, error) {
	return loadSimple(r, nil)
}

// LoadSimpleTyped restores a Simple program whose snapshot trailer holds
// field type ids, deriving the mask from the given id to probability mapping.
func LoadSimpleTyped(r io.Reader, typeProbabilities map[int]float64) (*Simple, error) {
	if typeProbabilities == nil {
		typeProbabilities = map[int]float64{}
	}
	return loadSimple(r, typeProbabilities)
}

func loadMulti(r io.Reader, typeProbabilities map[int]float64) (*Multi, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open compressed snapshot: %w", err)
	}
	defer gz.Close()

	timeLimit, err := readTimeLimit(gz)
	if err != nil {
		return nil, err
	}

	var variants uint64
	if err := binary.Read(gz, binary.LittleEndian, &variants); err != nil {
		return nil, fmt.Errorf("read variant count: %w", err)
	}
	if variants == 0 || variants > maxLoadVariants {
		return nil, fmt.Errorf("implausible variant count %d in snapshot", variants)
	}

	kernels := make([]*kernel.Kernel, variants)
	for i := range kernels {
		kernels[i] = placeholderKernel()
	}

	dp := newMulti(timeLimit, kernels, nil)
	for t := range dp.table {
		for v := range dp.table[t] {
			for x := range dp.table[t][v] {
				if err := binary.Read(gz, binary.LittleEndian, dp.table[t][v][x]); err != nil {
					return nil, fmt.Errorf("read table at t=%d variant=%d: %w", t, v, err)
				}
			}
		}
	}

	side := 2*timeLimit + 1
	if typeProbabilities != nil {
		dp.fieldProbabilities, dp.fieldTypes, err = readMaskTypes(gz, side, typeProbabilities)
		if err != nil {
			return nil, err
		}
		return dp, nil
	}

	dp.fieldProbabilities = make([][]float64, side)
	for x := range dp.fieldProbabilities {
		dp.fieldProbabilities[x] = make([]float64, side)
	}
	if err := readMaskProbs(gz, dp.fieldProbabilities); err != nil {
		return nil, err
	}
	return dp, nil
}

// LoadMulti restores a Multi program from a snapshot written by Save.
func LoadMulti(r io.Reader) (*Multi, error) {
	return loadMulti(r, nil)
}

// LoadMultiTyped restores a Multi program whose snapshot trailer holds field
// type ids, deriving the mask from the given id to probability mapping.
func LoadMultiTyped(r io.Reader, typeProbabilities map[int]float64) (*Multi, error) {
	if typeProbabilities == nil {
		typeProbabilities = map[int]float64{}
	}
	return loadMulti(r, typeProbabilities)
}
