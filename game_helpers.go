package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/tri-life/controller"
	"github.com/sheikhrachel/tri-life/model"
	"github.com/sheikhrachel/tri-life/utils"
)

const (
	headlessRows = 30
	headlessCols = 60
)

// headlessGame is the state of a run without the interactive UI
type headlessGame struct {
	config   utils.Config
	engine   *model.Engine
	renderer *model.TextRenderer
	history  *model.History
	stats    *utils.Stats
	recorder controller.Recorder
	out      io.Writer

	stagnantCount int
	restarts      int
}

// initializeGame sets up the engine and seeds it with random life
func initializeGame(config utils.Config, recorder controller.Recorder, out io.Writer) (*headlessGame, error) {
	rows, cols := config.Rows, config.Cols
	if rows == 0 {
		rows = headlessRows
	}
	if cols == 0 {
		cols = headlessCols
	}

	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}
	engine, err := model.NewEngine(rows, cols, controller.EngineOptions(config, pool)...)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create engine")
	}

	if recorder == nil {
		recorder = discardRecorder{}
	}
	g := &headlessGame{
		config:   config,
		engine:   engine,
		renderer: model.NewTextRenderer(out),
		history:  model.NewHistory(config.HistorySize),
		stats:    utils.NewStats(),
		recorder: recorder,
		out:      out,
	}
	g.seed()
	return g, nil
}

// seed randomizes the grid and starts a new recorded run
func (g *headlessGame) seed() {
	g.engine.Reset()
	g.engine.Randomize(g.config.RandomizeProbability)
	g.history.Clear()
	g.stagnantCount = 0
	g.recorder.StartRun(g.engine.Rows(), g.engine.Cols())
	g.recorder.Record(g.engine.Generation(), g.engine.Grid().Census())
}

// displayGameInfo shows the initial game information
func (g *headlessGame) displayGameInfo() {
	fmt.Fprintf(g.out, "Features: Memory Pool: %v, Bounded: %v, Parallel: %v\n",
		g.config.UseMemoryPool, g.config.UseBoundedGrid, g.config.UseParallel)
	fmt.Fprintf(g.out, "Grid: %dx%d | Initial living cells: %d\n",
		g.engine.Rows(), g.engine.Cols(), g.engine.Grid().Census().Alive)
	fmt.Fprintln(g.out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(g.out)
}

// step advances one generation and updates stats, history and the recorder
func (g *headlessGame) step(frameDuration time.Duration) model.Census {
	g.engine.NextGeneration()

	census := g.engine.Grid().Census()
	g.stats.Update(g.engine.Generation(), census.Alive, frameDuration)
	if g.history.Observe(g.engine.Grid()) {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}
	g.recorder.Record(g.engine.Generation(), census)

	return census
}

// displayGameStatus shows the current game status
func (g *headlessGame) displayGameStatus(census model.Census) {
	density := 0.0
	if total := census.Total(); total > 0 {
		density = float64(census.Alive) / float64(total) * 100
	}

	status := "Active"
	switch {
	case census.Alive == 0:
		status = "Extinct"
	case g.stagnantCount > 0:
		status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}

	fmt.Fprintf(g.out, "Gen: %d | Living: %d | Dead: %d | Density: %.1f%% | Status: %s\n",
		g.engine.Generation(), census.Alive, census.Dead, density, status)
	fmt.Fprintf(g.out, "Performance: %.1f gen/sec | Avg Pop: %.1f (sd %.1f) | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.PopulationStdDev, g.stats.Runtime().Seconds())
	if g.restarts > 0 {
		fmt.Fprintf(g.out, "Restarts: %d\n", g.restarts)
	}
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(census model.Census, stagnantCount, generation int, config utils.Config) (bool, string) {
	if !config.AutoRestart || generation == 0 {
		return false, ""
	}
	if census.Alive == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// render clears the terminal and draws the grid with its status lines
func (g *headlessGame) render(census model.Census) error {
	if err := g.renderer.Clear(); err != nil {
		return err
	}
	if err := g.renderer.Display(g.engine.Grid()); err != nil {
		return err
	}
	g.displayGameStatus(census)
	return nil
}

// runHeadless prints a frame per generation until max_generations is
// reached or ctx is cancelled.
func runHeadless(ctx context.Context, config utils.Config, recorder controller.Recorder, out io.Writer) error {
	g, err := initializeGame(config, recorder, out)
	if err != nil {
		return err
	}
	defer g.engine.Release()
	g.displayGameInfo()

	ticker := time.NewTicker(config.StepInterval())
	defer ticker.Stop()

	var (
		census        = g.engine.Grid().Census()
		lastFrameTime = time.Now()
		total         = 0
	)
	for {
		if err := g.render(census); err != nil {
			return err
		}

		// Check for max generations limit
		if config.MaxGenerations > 0 && total >= config.MaxGenerations {
			log.Printf("Reached maximum generations limit (%d)", config.MaxGenerations)
			break
		}

		if restart, reason := checkRestartConditions(census, g.stagnantCount, g.engine.Generation(), config); restart {
			log.Printf("Restarting due to %s at generation %d", reason, g.engine.Generation())
			g.restarts++
			g.seed()
			g.stats.Reset()
			census = g.engine.Grid().Census()
			continue
		}

		select {
		case <-ctx.Done():
			log.Println("Shutting down gracefully...")
			g.logFinalStats(total)
			return nil
		case <-ticker.C:
		}

		frameStart := time.Now()
		census = g.step(frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart
		total++
	}

	g.logFinalStats(total)
	return nil
}

func (g *headlessGame) logFinalStats(total int) {
	log.Printf("Final stats: %d generations in %.1f seconds, %.1f gen/sec, %.1f avg population",
		total, g.stats.Runtime().Seconds(), g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
}

type discardRecorder struct{}

func (discardRecorder) StartRun(int, int) {}
func (discardRecorder) Record(int, model.Census) {}
