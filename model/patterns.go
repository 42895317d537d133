package model

// Pattern is a set of live cells given as (row, col) offsets from an anchor.
type Pattern struct {
	Name  string
	Cells [][2]int
}

var (
	// Glider travels down and to the right one cell every four generations.
	Glider = Pattern{
		Name:  "glider",
		Cells: [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}

	// Blinker is the horizontal period 2 oscillator.
	Blinker = Pattern{
		Name:  "blinker",
		Cells: [][2]int{{0, 0}, {0, 1}, {0, 2}},
	}

	// Block is the 2x2 still life.
	Block = Pattern{
		Name:  "block",
		Cells: [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}
)

// Stamp sets the cells of p Alive with its anchor at (row, col). Cells that
// fall outside the grid are dropped.
func (e *Engine) Stamp(p Pattern, row, col int) {
	for _, offset := range p.Cells {
		e.SetCell(row+offset[0], col+offset[1], true)
	}
}
