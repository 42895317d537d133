package model

// stagnationWindow is how many recent states a grid is compared against,
// which catches still lifes and oscillators of period 2 and 3.
const stagnationWindow = 3

// History remembers the hashes of recently observed grids to detect a
// simulation that has settled into a cycle.
type History struct {
	size   int
	hashes []string
}

// NewHistory keeps at most size hashes; sizes below the stagnation window are raised to it.
func NewHistory(size int) *History {
	return &History{size: max(size, stagnationWindow)}
}

// Observe records g and reports whether it repeats one of the last three
// recorded states.
func (h *History) Observe(g *Grid) bool {
	hash := g.Hash()

	stagnant := false
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-stagnationWindow; i-- {
		if h.hashes[i] == hash {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[len(h.hashes)-h.size:]
	}

	return stagnant
}

// Len returns the number of recorded hashes
func (h *History) Len() int { return len(h.hashes) }

// Clear forgets every recorded state
func (h *History) Clear() { h.hashes = h.hashes[:0] }
