package model

// Cell is the state of a single grid position.
//
// Only Alive takes part in the transition rule. Dead is kept apart from
// NeverLived so a display can tell cells that died from cells that were
// never touched.
type Cell uint8

const (
	NeverLived Cell = iota
	Alive
	Dead
)

func (c Cell) String() string {
	switch c {
	case NeverLived:
		return "never-lived"
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Census counts the cells of a grid per state.
type Census struct {
	NeverLived int
	Alive      int
	Dead       int
}

// Total returns the number of cells counted.
func (c Census) Total() int {
	return c.NeverLived + c.Alive + c.Dead
}
