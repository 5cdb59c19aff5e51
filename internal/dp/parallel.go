package dp

import (
	"sync"
	"time"

	"github.com/banshee-data/walk.report/internal/monitoring"
)

// tileGridSize is the number of tile rows and columns the table is split
// into for parallel computation. The pool runs one worker per tile.
const tileGridSize = 3

// tile is an inclusive rectangle of logical cell coordinates.
type tile struct {
	x0, x1 int
	y0, y1 int
}

// splitTiles partitions the inclusive range [limitNeg, limitPos] into a
// tileGridSize x tileGridSize grid. Tiles that would be empty on small tables
// are dropped.
func splitTiles(limitNeg, limitPos int) []tile {
	side := limitPos - limitNeg + 1
	bounds := make([]int, tileGridSize+1)
	for i := 0; i <= tileGridSize; i++ {
		bounds[i] = limitNeg + i*side/tileGridSize
	}

	var tiles []tile
	for i := 0; i < tileGridSize; i++ {
		for j := 0; j < tileGridSize; j++ {
			t := tile{
				x0: bounds[i], x1: bounds[i+1] - 1,
				y0: bounds[j], y1: bounds[j+1] - 1,
			}
			if t.x0 > t.x1 || t.y0 > t.y1 {
				continue
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// runTiled drives the tiled worker pool. Each time step is computed by
// fanning the tiles out to the pool and joining on all of them before the
// next step starts, since step t reads only the completed step t-1. Within a
// step tiles touch disjoint cells, so no locking is needed.
func runTiled(timeLimit, limitNeg, limitPos int, applyAt func(x, y, t int)) {
	tiles := splitTiles(limitNeg, limitPos)

	type job struct {
		t  int
		tl tile
	}

	jobs := make(chan job)
	var wg sync.WaitGroup

	for w := 0; w < len(tiles); w++ {
		go func() {
			for j := range jobs {
				for x := j.tl.x0; x <= j.tl.x1; x++ {
					for y := j.tl.y0; y <= j.tl.y1; y++ {
						applyAt(x, y, j.t)
					}
				}
				wg.Done()
			}
		}()
	}

	for t := 1; t <= timeLimit; t++ {
		wg.Add(len(tiles))
		for _, tl := range tiles {
			jobs <- job{t: t, tl: tl}
		}
		wg.Wait()
	}
	close(jobs)
}

// ComputeParallel fills the table using the tiled worker pool. The result is
// identical to Compute.
func (dp *Simple) ComputeParallel() {
	defer func(start time.Time) {
		monitoring.TimeTrack("dp.compute_parallel", time.Since(start))
	}(time.Now())

	limitNeg, limitPos := dp.Limits()
	dp.Set(0, 0, 0, 1.0)
	runTiled(dp.timeLimit, limitNeg, limitPos, dp.applyKernelAt)
}

// ComputeParallel fills all variant tables using the tiled worker pool. The
// result is identical to Compute.
func (dp *Multi) ComputeParallel() {
	defer func(start time.Time) {
		monitoring.TimeTrack("dp.compute_parallel", time.Since(start))
	}(time.Now())

	limitNeg, limitPos := dp.Limits()
	for variant := range dp.kernels {
		dp.Set(0, 0, 0, variant, 1.0)
	}
	runTiled(dp.timeLimit, limitNeg, limitPos, dp.applyKernelsAt)
}
