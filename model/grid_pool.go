package model

import "sync"

// GridPool recycles grid buffers between engines, e.g. when a controller
// rebuilds its engine after every terminal resize.
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a grid from the pool shaped to rows x cols, all NeverLived
func (p *GridPool) Get(rows, cols int) *Grid {
	g := p.pool.Get().(*Grid)
	g.resize(rows, cols)
	return g
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.clear()
	p.pool.Put(g)
}

// Recycle puts every non-nil grid back. A nil pool drops them for the GC.
func (p *GridPool) Recycle(grids ...*Grid) {
	if p == nil {
		return
	}
	for _, g := range grids {
		if g != nil {
			p.Put(g)
		}
	}
}
