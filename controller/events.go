package controller

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// HandleEvent applies one screen event and reports whether the user asked to quit.
func (c *Controller) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.handleKey(ev)
	case *tcell.EventMouse:
		c.handleMouse(ev)
	case *tcell.EventResize:
		c.screen.Sync()
		c.state.ResizePending = true
	}
	return false
}

func (c *Controller) handleKey(ev *tcell.EventKey) bool {
	delta := time.Duration(c.cfg.StepIntervalDeltaMs) * time.Millisecond

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRight:
		c.AdjustInterval(delta)
	case tcell.KeyLeft:
		c.AdjustInterval(-delta)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ', 's':
			if c.state.Running {
				c.Stop()
			} else {
				c.Start()
			}
			c.Draw()
		case 'n':
			if !c.state.Running {
				c.Step()
			}
		case 'r':
			c.Reset()
		case 'x':
			c.Randomize()
		case 'g':
			c.StampGlider()
		case '+', '=':
			c.AdjustInterval(delta)
		case '-', '_':
			c.AdjustInterval(-delta)
		}
	}
	return false
}

// handleMouse toggles the cell under a fresh button press and paints cells
// alive while the button is held and the pointer moves to another cell.
func (c *Controller) handleMouse(ev *tcell.EventMouse) {
	s := c.state
	x, y := ev.Position()
	row, col := CellAt(x, y, c.cfg.CellWidth)
	moved := !s.PointerSeen || row != s.PointerRow || col != s.PointerCol
	s.PointerRow, s.PointerCol, s.PointerSeen = row, col, true

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !s.MouseDown:
		s.MouseDown = true
		s.Engine.ToggleCellAliveOnly(row, col)
	case pressed && moved:
		s.Engine.SetCell(row, col, true)
	case !pressed:
		s.MouseDown = false
		return
	default:
		return
	}

	c.recorder.Record(s.Engine.Generation(), s.Engine.Grid().Census())
	c.Draw()
}
