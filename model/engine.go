package model

import (
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/tri-life/rules"
)

// DefaultProbability is the per-cell chance of life used by Randomize callers
// that have no preference.
const DefaultProbability = 0.3

// ErrInvalidDimensions is returned by NewEngine for a negative row or column count.
var ErrInvalidDimensions = errors.New("grid dimensions must not be negative")

// Engine owns a grid of tri-state cells and a generation counter and applies
// the B3/S23 rule to it. It is not safe for concurrent use; callers must
// serialize every call on the same instance.
type Engine struct {
	rows       int
	cols       int
	cur        *Grid
	next       *Grid
	generation int

	workers int
	bounded bool
	pool    *GridPool
	rng     *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers computes each generation in n concurrent row bands. n <= 1
// steps sequentially; a negative n uses one worker per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 0 {
			n = runtime.NumCPU()
		}
		e.workers = n
	}
}

// WithBoundedStep restricts evaluation to the box around the live cells.
func WithBoundedStep(enabled bool) Option {
	return func(e *Engine) {
		e.bounded = enabled
	}
}

// WithPool takes grid buffers from pool and gives them back on Release.
func WithPool(pool *GridPool) Option {
	return func(e *Engine) {
		e.pool = pool
	}
}

// WithSeed makes Randomize deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}
}

// NewEngine creates a rows x cols engine with every cell NeverLived at
// generation 0. Zero-sized grids are allowed.
func NewEngine(rows, cols int, opts ...Option) (*Engine, error) {
	if rows < 0 || cols < 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewEngine] rows=%d cols=%d", rows, cols)
	}

	e := &Engine{rows: rows, cols: cols}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	e.cur = e.allocate()
	e.next = e.allocate()

	return e, nil
}

func (e *Engine) allocate() *Grid {
	if e.pool != nil {
		return e.pool.Get(e.rows, e.cols)
	}
	return newGrid(e.rows, e.cols)
}

// Rows returns the number of grid rows
func (e *Engine) Rows() int { return e.rows }

// Cols returns the number of grid columns
func (e *Engine) Cols() int { return e.cols }

// Grid returns the current generation. The returned grid is only valid
// until the next call to NextGeneration, Reset or Release.
func (e *Engine) Grid() *Grid { return e.cur }

// Generation returns the number of steps since construction or the last Reset.
func (e *Engine) Generation() int { return e.generation }

// SetCell marks (row, col) Alive or Dead. Out-of-bounds coordinates are ignored.
func (e *Engine) SetCell(row, col int, alive bool) {
	if !e.cur.InBounds(row, col) {
		return
	}
	if alive {
		e.cur.set(row, col, Alive)
		return
	}
	e.cur.set(row, col, Dead)
}

// ToggleCellAliveOnly flips (row, col) between NeverLived and Alive. A Dead
// cell becomes Alive. Out-of-bounds coordinates are ignored.
func (e *Engine) ToggleCellAliveOnly(row, col int) {
	if !e.cur.InBounds(row, col) {
		return
	}
	if e.cur.At(row, col) == Alive {
		e.cur.set(row, col, NeverLived)
		return
	}
	e.cur.set(row, col, Alive)
}

// CountLiveNeighbors counts the Alive cells around (row, col) in the current generation.
func (e *Engine) CountLiveNeighbors(row, col int) int {
	return e.cur.CountLiveNeighbors(row, col)
}

// NextGeneration advances the grid by one generation and increments the
// generation counter.
func (e *Engine) NextGeneration() {
	e.step(e.cur, e.next)
	e.cur, e.next = e.next, e.cur
	e.generation++
}

// Reset clears every cell to NeverLived and sets the generation back to 0.
func (e *Engine) Reset() {
	e.cur.clear()
	e.generation = 0
}

// Randomize makes every cell Alive with probability p, otherwise NeverLived.
// p is clamped to [0, 1]; NaN counts as 0. The generation is left alone.
func (e *Engine) Randomize(p float64) {
	switch {
	case math.IsNaN(p) || p < 0:
		p = 0
	case p > 1:
		p = 1
	}

	for row := range e.rows {
		for col := range e.cols {
			if e.rng.Float64() < p {
				e.cur.set(row, col, Alive)
			} else {
				e.cur.set(row, col, NeverLived)
			}
		}
	}
}

// Release hands both grid buffers back to the pool. The engine must not be
// used afterwards.
func (e *Engine) Release() {
	e.pool.Recycle(e.cur, e.next)
	e.cur, e.next = nil, nil
}

// step writes the generation following src into dst. Every cell of dst is
// written and src is only read, so workers never observe a partial generation.
func (e *Engine) step(src, dst *Grid) {
	active, ok := src.fullRegion()
	if e.bounded {
		active, ok = src.activeRegion()
	}

	e.forEachBand(src.rows, func(startRow, endRow int) {
		for row := startRow; row < endRow; row++ {
			copy(dst.cells[row], src.cells[row])
			if !ok || row < active.minRow || row > active.maxRow {
				continue
			}
			for col := active.minCol; col <= active.maxCol; col++ {
				dst.cells[row][col] = nextState(src.cells[row][col], src.CountLiveNeighbors(row, col))
			}
		}
	})
}

// forEachBand splits [0, rows) into contiguous bands and runs fn on each,
// concurrently when the engine has more than one worker.
func (e *Engine) forEachBand(rows int, fn func(startRow, endRow int)) {
	numWorkers := min(e.workers, rows)
	if numWorkers <= 1 {
		fn(0, rows)
		return
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, rows)
		)
		if startRow >= rows {
			break
		}

		eg.Go(func() error {
			fn(startRow, endRow)
			return nil
		})
	}

	// bands never fail
	_ = eg.Wait()
}

// nextState applies B3/S23 to one cell. Only Alive cells change to Dead;
// cells that stay not-alive keep NeverLived or Dead as they were.
func nextState(c Cell, neighbors int) Cell {
	if c == Alive {
		if rules.Survives(neighbors) {
			return Alive
		}
		return Dead
	}
	if rules.Born(neighbors) {
		return Alive
	}
	return c
}
