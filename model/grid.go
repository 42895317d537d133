package model

import (
	"crypto/md5"
	"fmt"
)

// Grid is a rows x cols board of cells indexed [row][col].
//
// A Grid handed out by an Engine is read-only for callers; it is rewritten
// by the engine on the next step or reset.
type Grid struct {
	rows  int
	cols  int
	cells [][]Cell
}

// region is an inclusive rectangle of grid coordinates.
type region struct {
	minRow, maxRow, minCol, maxCol int
}

func newGrid(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the state of a cell. Coordinates outside the grid read as NeverLived.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return NeverLived
	}
	return g.cells[row][col]
}

// CountLiveNeighbors counts the Alive cells in the Moore neighborhood of
// (row, col). Positions outside the grid are absent, not wrapped.
func (g *Grid) CountLiveNeighbors(row, col int) int {
	if !g.InBounds(row, col) {
		return 0
	}

	count := 0
	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.cols-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue // Skip the cell itself
			}
			if g.cells[r][c] == Alive {
				count++
			}
		}
	}

	return count
}

// Census counts cells per state.
func (g *Grid) Census() (c Census) {
	for _, row := range g.cells {
		for _, cell := range row {
			switch cell {
			case Alive:
				c.Alive++
			case Dead:
				c.Dead++
			default:
				c.NeverLived++
			}
		}
	}
	return
}

// Snapshot returns a deep copy of the cells that stays valid after the
// engine moves on.
func (g *Grid) Snapshot() [][]Cell {
	out := make([][]Cell, g.rows)
	for i, row := range g.cells {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Hash returns an MD5 digest of the grid state, dimensions included.
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.rows, g.cols)
	buf := make([]byte, g.cols)
	for _, row := range g.cells {
		for i, cell := range row {
			buf[i] = byte(cell)
		}
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// activeRegion returns the bounding box of Alive cells grown by one cell on
// every side and clipped to the grid. ok is false when nothing is alive.
func (g *Grid) activeRegion() (b region, ok bool) {
	for r, row := range g.cells {
		for c, cell := range row {
			if cell != Alive {
				continue
			}
			if !ok {
				b = region{minRow: r, maxRow: r, minCol: c, maxCol: c}
				ok = true
				continue
			}
			b.minRow = min(b.minRow, r)
			b.maxRow = max(b.maxRow, r)
			b.minCol = min(b.minCol, c)
			b.maxCol = max(b.maxCol, c)
		}
	}
	if !ok {
		return b, false
	}

	b.minRow = max(0, b.minRow-1)
	b.maxRow = min(g.rows-1, b.maxRow+1)
	b.minCol = max(0, b.minCol-1)
	b.maxCol = min(g.cols-1, b.maxCol+1)
	return b, true
}

// fullRegion covers the whole grid. ok is false for an empty grid.
func (g *Grid) fullRegion() (region, bool) {
	return region{maxRow: g.rows - 1, maxCol: g.cols - 1}, g.rows > 0 && g.cols > 0
}

func (g *Grid) set(row, col int, c Cell) {
	g.cells[row][col] = c
}

// resize reshapes the grid to rows x cols, reusing row slices where it can,
// and leaves every cell NeverLived.
func (g *Grid) resize(rows, cols int) {
	g.rows = rows
	g.cols = cols

	if cap(g.cells) < rows {
		g.cells = make([][]Cell, rows)
	}
	g.cells = g.cells[:rows]
	for i := range g.cells {
		if cap(g.cells[i]) < cols {
			g.cells[i] = make([]Cell, cols)
			continue
		}
		g.cells[i] = g.cells[i][:cols]
	}
	g.clear()
}

// clear sets every cell to NeverLived
func (g *Grid) clear() {
	for _, row := range g.cells {
		for i := range row {
			row[i] = NeverLived
		}
	}
}
