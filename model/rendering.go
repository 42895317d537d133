package model

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosAlive      = "██"
	gridPosDead       = "░░"
	gridPosNeverLived = "  "

	ansiClear = "\033[H\033[2J"
)

// TextRenderer draws grids as plain text, two characters per cell
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Display writes the grid, one line per row
func (r *TextRenderer) Display(g *Grid) error {
	var sb strings.Builder
	sb.Grow(g.Rows() * (g.Cols()*len(gridPosAlive) + 1))

	for row := range g.Rows() {
		for col := range g.Cols() {
			switch g.At(row, col) {
			case Alive:
				sb.WriteString(gridPosAlive)
			case Dead:
				sb.WriteString(gridPosDead)
			default:
				sb.WriteString(gridPosNeverLived)
			}
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(r.w, sb.String()); err != nil {
		return errors.Wrap(err, "[Display] failed to write grid")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TextRenderer) Clear() error {
	if _, err := io.WriteString(r.w, ansiClear); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
