package controller

import (
	"time"

	"github.com/sheikhrachel/tri-life/model"
)

// State is everything the controller knows between events. It is owned by
// one Controller and only touched from its event loop.
type State struct {
	Rows   int
	Cols   int
	Engine *model.Engine

	Running   bool
	MouseDown bool
	Interval  time.Duration

	// Last cell under the pointer, used for drag painting and stamping.
	PointerRow  int
	PointerCol  int
	PointerSeen bool

	Stagnant      bool
	ResizePending bool
}

// Extinct reports whether a simulation that has been stepped has no live cells left.
func (s *State) Extinct() bool {
	return s.Engine.Generation() > 0 && s.Engine.Grid().Census().Alive == 0
}
