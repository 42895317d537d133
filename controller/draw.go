package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/tri-life/model"
)

const helpText = "space:run n:step r:reset x:random +/-:interval g:glider q:quit"

type styles struct {
	neverLived tcell.Style
	alive      tcell.Style
	dead       tcell.Style
	status     tcell.Style
}

func newStyles(aliveColor string) styles {
	alive := tcell.GetColor(aliveColor)
	if alive == tcell.ColorDefault {
		alive = tcell.ColorBlue
	}
	return styles{
		neverLived: tcell.StyleDefault,
		alive:      tcell.StyleDefault.Background(alive),
		dead:       tcell.StyleDefault.Background(tcell.ColorGray),
		status:     tcell.StyleDefault.Reverse(true),
	}
}

func (st styles) cell(c model.Cell) tcell.Style {
	switch c {
	case model.Alive:
		return st.alive
	case model.Dead:
		return st.dead
	default:
		return st.neverLived
	}
}

// Draw renders the grid and the status bar.
func (c *Controller) Draw() {
	c.screen.Clear()

	g := c.state.Engine.Grid()
	cw := c.cfg.CellWidth
	for row := range g.Rows() {
		for col := range g.Cols() {
			style := c.styles.cell(g.At(row, col))
			for i := range cw {
				c.screen.SetContent(col*cw+i, row, ' ', nil, style)
			}
		}
	}

	width, _ := c.screen.Size()
	drawText(c.screen, 0, c.state.Rows, width, c.styles.status, c.statusLine())
	c.screen.Show()
}

func (c *Controller) statusLine() string {
	s := c.state
	census := s.Engine.Grid().Census()

	mode := "stopped"
	if s.Running {
		mode = "running"
	}
	switch {
	case s.Extinct():
		mode += " (extinct)"
	case s.Stagnant:
		mode += " (stagnant)"
	}

	return fmt.Sprintf(" gen %d | alive %d | dead %d | %d ms | %s | %s",
		s.Engine.Generation(), census.Alive, census.Dead, s.Interval.Milliseconds(), mode, helpText)
}

// drawText writes text on line y, padding with the style up to width.
func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
