package controller

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/tri-life/model"
	"github.com/sheikhrachel/tri-life/utils"
)

type fakeRecorder struct {
	starts      [][2]int
	generations []int
	last        model.Census
}

func (r *fakeRecorder) StartRun(rows, cols int) {
	r.starts = append(r.starts, [2]int{rows, cols})
}

func (r *fakeRecorder) Record(generation int, c model.Census) {
	r.generations = append(r.generations, generation)
	r.last = c
}

func newTestController(t *testing.T, width, height int, mutate ...func(*utils.Config)) (*Controller, tcell.SimulationScreen, *fakeRecorder) {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)

	cfg := utils.DefaultConfig()
	cfg.Seed = 11
	cfg.UseParallel = false
	for _, m := range mutate {
		m(&cfg)
	}

	rec := &fakeRecorder{}
	c, err := New(screen, cfg, WithRecorder(rec))
	require.NoError(t, err)
	return c, screen, rec
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func hover(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func background(t *testing.T, screen tcell.Screen, x, y int) tcell.Color {
	t.Helper()
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func statusText(screen tcell.SimulationScreen, y int) string {
	width, _ := screen.Size()
	var sb strings.Builder
	for x := range width {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestNewSizesGridToScreen(t *testing.T) {
	c, _, rec := newTestController(t, 20, 6)

	s := c.State()
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 10, s.Cols)
	assert.Equal(t, 5, s.Engine.Rows())
	assert.Equal(t, 10, s.Engine.Cols())
	assert.Equal(t, 400*time.Millisecond, s.Interval)
	assert.False(t, s.Running)
	assert.Equal(t, [][2]int{{5, 10}}, rec.starts)
	assert.Equal(t, []int{0}, rec.generations)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	cfg := utils.DefaultConfig()
	cfg.CellWidth = 0

	_, err := New(screen, cfg)
	assert.Error(t, err)
}

func TestClickTogglesCell(t *testing.T) {
	c, _, _ := newTestController(t, 20, 6)
	grid := func() *model.Grid { return c.State().Engine.Grid() }

	c.HandleEvent(press(4, 1))
	assert.Equal(t, model.Alive, grid().At(1, 2))
	assert.True(t, c.State().MouseDown)

	c.HandleEvent(hover(4, 1))
	assert.False(t, c.State().MouseDown)

	c.HandleEvent(press(5, 1))
	assert.Equal(t, model.NeverLived, grid().At(1, 2), "second click toggles back")
}

func TestClickRevivesDeadCell(t *testing.T) {
	c, _, _ := newTestController(t, 20, 6)
	c.State().Engine.SetCell(2, 3, false)

	c.HandleEvent(press(6, 2))

	assert.Equal(t, model.Alive, c.State().Engine.Grid().At(2, 3))
}

func TestDragPaintsAlive(t *testing.T) {
	c, _, _ := newTestController(t, 20, 6)
	e := c.State().Engine
	e.SetCell(0, 2, false)

	c.HandleEvent(press(0, 0))
	c.HandleEvent(press(2, 0))
	c.HandleEvent(press(3, 0))
	c.HandleEvent(press(4, 0))
	c.HandleEvent(press(0, 0))

	assert.Equal(t, model.Alive, e.Grid().At(0, 0), "returning to a painted cell keeps it alive")
	assert.Equal(t, model.Alive, e.Grid().At(0, 1))
	assert.Equal(t, model.Alive, e.Grid().At(0, 2), "dragging over a dead cell revives it")

	c.HandleEvent(hover(6, 0))
	c.HandleEvent(hover(8, 1))
	assert.Equal(t, model.NeverLived, e.Grid().At(0, 3))
	assert.Equal(t, model.NeverLived, e.Grid().At(1, 4))
}

func TestClickOutsideGridIgnored(t *testing.T) {
	c, _, rec := newTestController(t, 21, 6)
	records := len(rec.generations)

	c.HandleEvent(press(20, 0)) // past the last full cell
	c.HandleEvent(hover(20, 0))
	c.HandleEvent(press(0, 5)) // status bar

	assert.Equal(t, 0, c.State().Engine.Grid().Census().Alive)
	assert.Len(t, rec.generations, records+2, "every press is still reported")
}

func TestRunStopAndSingleStep(t *testing.T) {
	c, _, rec := newTestController(t, 20, 6)
	c.State().Engine.Stamp(model.Blinker, 2, 3)

	c.HandleEvent(key('n'))
	assert.Equal(t, 1, c.State().Engine.Generation())
	assert.Equal(t, 1, rec.generations[len(rec.generations)-1])

	c.HandleEvent(key(' '))
	assert.True(t, c.State().Running)
	c.HandleEvent(key('n'))
	assert.Equal(t, 1, c.State().Engine.Generation(), "single step is ignored while running")

	c.HandleEvent(key('s'))
	assert.False(t, c.State().Running)
}

func TestResetStopsAndClears(t *testing.T) {
	c, _, rec := newTestController(t, 20, 6)
	c.State().Engine.Stamp(model.Block, 1, 1)
	c.HandleEvent(key('n'))
	c.HandleEvent(key(' '))

	c.HandleEvent(key('r'))

	s := c.State()
	assert.False(t, s.Running)
	assert.Equal(t, 0, s.Engine.Generation())
	assert.Equal(t, 0, s.Engine.Grid().Census().Alive)
	assert.Len(t, rec.starts, 2, "reset starts a new recorded run")
}

func TestRandomize(t *testing.T) {
	c, _, rec := newTestController(t, 20, 6, func(cfg *utils.Config) {
		cfg.RandomizeProbability = 1
	})

	c.HandleEvent(key('x'))

	assert.Equal(t, model.Census{Alive: 50}, c.State().Engine.Grid().Census())
	assert.Equal(t, model.Census{Alive: 50}, rec.last)
	assert.Equal(t, 0, c.State().Engine.Generation())
}

func TestAdjustInterval(t *testing.T) {
	c, _, _ := newTestController(t, 20, 6, func(cfg *utils.Config) {
		cfg.StepIntervalMs = 990
	})

	c.HandleEvent(key('+'))
	assert.Equal(t, 1000*time.Millisecond, c.State().Interval)
	c.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.Equal(t, 1000*time.Millisecond, c.State().Interval, "clamped at the maximum")

	c.HandleEvent(key('-'))
	c.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, 980*time.Millisecond, c.State().Interval)

	c.AdjustInterval(-time.Hour)
	assert.Equal(t, 10*time.Millisecond, c.State().Interval, "clamped at the minimum")
}

func TestQuitKeys(t *testing.T) {
	c, _, _ := newTestController(t, 20, 6)

	assert.True(t, c.HandleEvent(key('q')))
	assert.True(t, c.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, c.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, c.HandleEvent(key('z')))
}

func TestStampGliderAtPointer(t *testing.T) {
	c, _, _ := newTestController(t, 20, 6)

	c.HandleEvent(key('g'))
	assert.Equal(t, 0, c.State().Engine.Grid().Census().Alive, "no pointer position yet")

	c.HandleEvent(hover(2, 1))
	c.HandleEvent(key('g'))
	assert.Equal(t, 5, c.State().Engine.Grid().Census().Alive)
	assert.Equal(t, model.Alive, c.State().Engine.Grid().At(1, 2))
}

func TestResizeRebuildsEngine(t *testing.T) {
	c, screen, rec := newTestController(t, 20, 6)
	c.State().Engine.Stamp(model.Block, 1, 1)
	c.HandleEvent(key(' '))
	old := c.State().Engine

	screen.SetSize(30, 8)
	c.HandleEvent(tcell.NewEventResize(30, 8))
	assert.True(t, c.State().ResizePending)
	require.NoError(t, c.Rebuild())

	s := c.State()
	assert.NotSame(t, old, s.Engine)
	assert.Equal(t, 7, s.Rows)
	assert.Equal(t, 15, s.Cols)
	assert.Equal(t, 0, s.Engine.Grid().Census().Alive, "grid contents are not carried over")
	assert.True(t, s.Running, "running state survives a resize")
	assert.Equal(t, [][2]int{{5, 10}, {7, 15}}, rec.starts)
}

func TestRebuildSameSizeKeepsEngine(t *testing.T) {
	c, _, rec := newTestController(t, 20, 6)
	c.State().Engine.Stamp(model.Block, 1, 1)
	engine := c.State().Engine

	require.NoError(t, c.Rebuild())

	assert.Same(t, engine, c.State().Engine)
	assert.Equal(t, 4, engine.Grid().Census().Alive)
	assert.Len(t, rec.starts, 1)
}

func TestDrawColorsCells(t *testing.T) {
	c, screen, _ := newTestController(t, 120, 6)
	c.State().Engine.SetCell(0, 0, true)
	c.State().Engine.SetCell(0, 1, false)

	c.Draw()

	assert.Equal(t, tcell.ColorBlue, background(t, screen, 0, 0))
	assert.Equal(t, tcell.ColorBlue, background(t, screen, 1, 0))
	assert.Equal(t, tcell.ColorGray, background(t, screen, 2, 0))
	assert.Equal(t, tcell.ColorDefault, background(t, screen, 4, 0))
	assert.Contains(t, statusText(screen, 5), "gen 0 | alive 1 | dead 1 | 400 ms | stopped")
}

func TestStatusShowsStagnationAndExtinction(t *testing.T) {
	c, screen, _ := newTestController(t, 120, 6)
	c.State().Engine.Stamp(model.Block, 1, 1)

	c.HandleEvent(key('n'))
	c.HandleEvent(key('n'))
	assert.True(t, c.State().Stagnant)
	assert.Contains(t, statusText(screen, 5), "(stagnant)")

	c.HandleEvent(key('r'))
	c.State().Engine.SetCell(2, 2, true)
	c.HandleEvent(key('n'))
	assert.True(t, c.State().Extinct())
	assert.Contains(t, statusText(screen, 5), "(extinct)")
}

func TestRunStepsUntilQuit(t *testing.T) {
	c, screen, _ := newTestController(t, 20, 6, func(cfg *utils.Config) {
		cfg.StepIntervalMs = 10
		cfg.ResizeDebounceMs = 0
	})
	c.State().Engine.Stamp(model.Blinker, 2, 3)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	time.Sleep(200 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}

	assert.True(t, c.State().Running)
	assert.Positive(t, c.State().Engine.Generation())
	assert.Equal(t, 3, c.State().Engine.Grid().Census().Alive)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	c, _, _ := newTestController(t, 20, 6)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
