package controller

import (
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/tri-life/model"
)

// Rebuild sizes the grid to the current screen. A new engine is only built
// when the dimensions changed; its cells start NeverLived.
func (c *Controller) Rebuild() error {
	width, height := c.screen.Size()
	rows, cols := Layout(width, height, c.cfg.CellWidth)

	s := c.state
	if s.Engine != nil && s.Rows == rows && s.Cols == cols {
		c.Draw()
		return nil
	}

	engine, err := model.NewEngine(rows, cols, EngineOptions(c.cfg, c.pool)...)
	if err != nil {
		return errors.Wrapf(err, "[Rebuild] screen %dx%d", width, height)
	}
	if s.Engine != nil {
		s.Engine.Release()
	}

	s.Engine, s.Rows, s.Cols = engine, rows, cols
	s.MouseDown = false
	c.restart()
	c.Draw()
	return nil
}

// Step advances one generation and redraws.
func (c *Controller) Step() {
	e := c.state.Engine
	e.NextGeneration()

	census := e.Grid().Census()
	now := time.Now()
	c.stats.Update(e.Generation(), census.Alive, now.Sub(c.lastStep))
	c.lastStep = now
	c.state.Stagnant = c.history.Observe(e.Grid())
	c.recorder.Record(e.Generation(), census)

	c.Draw()
}

// Start begins stepping on every tick.
func (c *Controller) Start() {
	c.state.Running = true
	c.lastStep = time.Now()
}

// Stop halts stepping; the grid is kept.
func (c *Controller) Stop() {
	c.state.Running = false
}

// Reset stops the simulation and clears the grid.
func (c *Controller) Reset() {
	c.Stop()
	c.state.Engine.Reset()
	c.restart()
	c.Draw()
}

// Randomize reseeds the grid with the configured probability of life.
func (c *Controller) Randomize() {
	e := c.state.Engine
	e.Randomize(c.cfg.RandomizeProbability)
	c.history.Clear()
	c.state.Stagnant = false
	c.recorder.Record(e.Generation(), e.Grid().Census())
	c.Draw()
}

// StampGlider drops a glider at the last pointer position.
func (c *Controller) StampGlider() {
	if !c.state.PointerSeen {
		return
	}
	e := c.state.Engine
	e.Stamp(model.Glider, c.state.PointerRow, c.state.PointerCol)
	c.recorder.Record(e.Generation(), e.Grid().Census())
	c.Draw()
}

// AdjustInterval changes the step interval by delta, clamped to the configured range.
func (c *Controller) AdjustInterval(delta time.Duration) {
	var (
		lo = time.Duration(c.cfg.MinStepIntervalMs) * time.Millisecond
		hi = time.Duration(c.cfg.MaxStepIntervalMs) * time.Millisecond
	)
	c.state.Interval = min(hi, max(lo, c.state.Interval+delta))
	c.Draw()
}

// restart starts a new recorded run for the current engine state.
func (c *Controller) restart() {
	e := c.state.Engine
	c.history.Clear()
	c.stats.Reset()
	c.state.Stagnant = false
	c.recorder.StartRun(e.Rows(), e.Cols())
	c.recorder.Record(e.Generation(), e.Grid().Census())
}
