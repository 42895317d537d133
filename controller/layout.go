package controller

// statusLines is the number of terminal lines below the grid.
const statusLines = 1

// Layout sizes the grid to fill a width x height terminal, leaving room for
// the status bar. Every cell takes cellWidth columns.
func Layout(width, height, cellWidth int) (rows, cols int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	return max(0, height-statusLines), max(0, width/cellWidth)
}

// CellAt maps a terminal position to grid coordinates. Positions past the
// grid map to coordinates the engine ignores.
func CellAt(x, y, cellWidth int) (row, col int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	if x < 0 {
		return y, -1
	}
	return y, x / cellWidth
}
