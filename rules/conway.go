package rules

// MaxNeighbors is the size of the Moore neighborhood.
const MaxNeighbors = 8

// Survives reports whether a live cell with the given number of live
// neighbors stays alive (S23).
func Survives(neighbors int) bool {
	return neighbors == 2 || neighbors == 3
}

// Born reports whether a cell that is not alive comes to life (B3).
func Born(neighbors int) bool {
	return neighbors == 3
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine whether a cell is alive in the next generation.

Conway's Game of Life rules: (alive && neighbors in {2, 3}) || (!alive && neighbors == 3)
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return Survives(neighbors)
	}
	return Born(neighbors)
}
