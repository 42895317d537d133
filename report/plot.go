package report

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sheikhrachel/tri-life/store"
)

// ErrNoSamples is returned when there is nothing to plot.
var ErrNoSamples = errors.New("no samples to plot")

var (
	aliveColor = color.RGBA{R: 0x1e, G: 0x63, B: 0xd6, A: 0xff}
	deadColor  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

// WritePopulationPlot draws alive and dead counts per generation and saves
// the chart to path. The image format follows the file extension.
func WritePopulationPlot(path string, samples []store.Sample) error {
	if len(samples) == 0 {
		return errors.Wrapf(ErrNoSamples, "[WritePopulationPlot] %s", path)
	}

	p := plot.New()
	p.Title.Text = "Population per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Cells"

	alivePts := make(plotter.XYs, len(samples))
	deadPts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		alivePts[i] = plotter.XY{X: float64(s.Generation), Y: float64(s.Census.Alive)}
		deadPts[i] = plotter.XY{X: float64(s.Generation), Y: float64(s.Census.Dead)}
	}

	for _, series := range []struct {
		label string
		pts   plotter.XYs
		color color.Color
	}{
		{"alive", alivePts, aliveColor},
		{"dead", deadPts, deadColor},
	} {
		line, err := plotter.NewLine(series.pts)
		if err != nil {
			return errors.Wrapf(err, "[WritePopulationPlot] %s line", series.label)
		}
		line.Color = series.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(series.label, line)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "[WritePopulationPlot] failed to save %s", path)
	}
	return nil
}
