package controller

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/tri-life/model"
	"github.com/sheikhrachel/tri-life/utils"
)

// Recorder receives the census of every generation the controller shows.
type Recorder interface {
	// StartRun is called whenever a new engine is built or the engine is reset.
	StartRun(rows, cols int)
	Record(generation int, c model.Census)
}

type nopRecorder struct{}

func (nopRecorder) StartRun(int, int) {}
func (nopRecorder) Record(int, model.Census) {}

// Controller drives an engine from a terminal: it sizes the grid to the
// screen, turns mouse and key events into engine calls and steps the engine
// on a ticker while running.
type Controller struct {
	screen   tcell.Screen
	cfg      utils.Config
	state    *State
	pool     *model.GridPool
	history  *model.History
	stats    *utils.Stats
	recorder Recorder
	styles   styles
	lastStep time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder reports every generation to r.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// EngineOptions translates the engine related config fields.
func EngineOptions(cfg utils.Config, pool *model.GridPool) []model.Option {
	opts := []model.Option{
		model.WithWorkers(cfg.EngineWorkers()),
		model.WithBoundedStep(cfg.UseBoundedGrid),
	}
	if pool != nil {
		opts = append(opts, model.WithPool(pool))
	}
	if cfg.Seed != 0 {
		opts = append(opts, model.WithSeed(cfg.Seed))
	}
	return opts
}

// New builds a controller on an initialized screen and sizes the first
// engine to it.
func New(screen tcell.Screen, cfg utils.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "[controller.New] invalid config")
	}

	c := &Controller{
		screen:   screen,
		cfg:      cfg,
		state:    &State{Interval: cfg.StepInterval()},
		history:  model.NewHistory(cfg.HistorySize),
		stats:    utils.NewStats(),
		recorder: nopRecorder{},
		styles:   newStyles(cfg.AliveColor),
		lastStep: time.Now(),
	}
	if cfg.UseMemoryPool {
		c.pool = model.NewGridPool()
	}
	for _, opt := range opts {
		opt(c)
	}

	screen.EnableMouse()
	screen.HideCursor()

	if err := c.Rebuild(); err != nil {
		return nil, err
	}
	return c, nil
}

// State exposes the controller state for inspection.
func (c *Controller) State() *State { return c.state }

// Stats returns the runtime statistics of the current engine.
func (c *Controller) Stats() *utils.Stats { return c.stats }

// Run processes screen events and steps the engine until the user quits or
// ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go c.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(c.state.Interval)
	defer ticker.Stop()

	var (
		resizeTimer *time.Timer
		resizeC     <-chan time.Time
	)
	defer func() {
		if resizeTimer != nil {
			resizeTimer.Stop()
		}
	}()

	c.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			interval := c.state.Interval
			if c.HandleEvent(ev) {
				return nil
			}
			if c.state.Interval != interval {
				ticker.Reset(c.state.Interval)
			}
			if c.state.ResizePending {
				c.state.ResizePending = false
				if resizeTimer == nil {
					resizeTimer = time.NewTimer(c.cfg.ResizeDebounce())
				} else {
					resizeTimer.Reset(c.cfg.ResizeDebounce())
				}
				resizeC = resizeTimer.C
			}

		case <-resizeC:
			resizeC = nil
			if err := c.Rebuild(); err != nil {
				return err
			}

		case <-ticker.C:
			if c.state.Running {
				c.Step()
			}
		}
	}
}
