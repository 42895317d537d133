package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/tri-life/controller"
	"github.com/sheikhrachel/tri-life/report"
	"github.com/sheikhrachel/tri-life/store"
	"github.com/sheikhrachel/tri-life/utils"
)

// memoryDB keeps recorded runs only for the lifetime of the process.
const memoryDB = ":memory:"

func main() {
	var (
		configPath  = flag.String("config", "config.json", "path to a JSON config file")
		headless    = flag.Bool("headless", false, "print frames to stdout instead of running the interactive terminal UI")
		generations = flag.Int("generations", 0, "headless: stop after this many generations (0 runs until interrupted)")
		seed        = flag.Int64("seed", 0, "seed for randomize (0 uses the clock)")
		recordDB    = flag.String("record", "", "sqlite database that records the population of every generation")
		plotPath    = flag.String("plot", "", "write a population chart of the last run to this PNG at exit")
		logFile     = flag.String("log", "", "append logs to this file")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Using default configuration (%v)", err)
		config = utils.DefaultConfig()
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "generations":
			config.MaxGenerations = *generations
		case "seed":
			config.Seed = *seed
		case "record":
			config.RecordDB = *recordDB
		case "plot":
			config.PlotPath = *plotPath
		case "log":
			config.LogFile = *logFile
		}
	})
	if err := config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	closeLog, err := setupLogging(config.LogFile, *headless)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer closeLog()

	if err := run(config, *headless); err != nil {
		log.Printf("exiting with error: %+v", err)
		closeLog()
		os.Exit(1)
	}
}

func run(config utils.Config, headless bool) error {
	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath := config.RecordDB
	if dbPath == "" && config.PlotPath != "" {
		dbPath = memoryDB
	}

	var (
		db       *store.DB
		rec      *store.Recorder
		recorder controller.Recorder
	)
	if dbPath != "" {
		var err error
		if db, err = store.Open(dbPath); err != nil {
			return err
		}
		defer db.Close()
		rec = store.NewRecorder(db, config.Seed)
		recorder = rec
	}

	var err error
	if headless {
		err = runHeadless(ctx, config, recorder, os.Stdout)
	} else {
		err = runInteractive(ctx, config, recorder)
	}
	if err != nil {
		return err
	}

	if rec != nil {
		return writeReport(db, rec.RunIDs(), config.PlotPath)
	}
	return nil
}

func runInteractive(ctx context.Context, config utils.Config, recorder controller.Recorder) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runInteractive] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runInteractive] failed to initialize screen")
	}
	defer screen.Fini()

	var opts []controller.Option
	if recorder != nil {
		opts = append(opts, controller.WithRecorder(recorder))
	}
	c, err := controller.New(screen, config, opts...)
	if err != nil {
		return err
	}

	err = c.Run(ctx)
	stats := c.Stats()
	log.Printf("Final stats: generation %d after %.1fs, %.1f gen/sec, %.1f avg population",
		stats.TotalGenerations, stats.Runtime().Seconds(), stats.GenerationsPerSecond, stats.AveragePopulation)
	return err
}

// writeReport summarizes the most recent run that got past its first
// generation and optionally plots it.
func writeReport(db *store.DB, runIDs []string, plotPath string) error {
	for i := len(runIDs) - 1; i >= 0; i-- {
		samples, err := db.Samples(runIDs[i])
		if err != nil {
			return err
		}
		if len(samples) < 2 {
			continue
		}

		sum := report.Summarize(samples)
		log.Printf("Run %s: %d generations, alive mean %.1f (sd %.1f), min %.0f, max %.0f at generation %d",
			runIDs[i], sum.Generations, sum.MeanAlive, sum.StdDevAlive, sum.MinAlive, sum.MaxAlive, sum.PeakGeneration)

		if plotPath == "" {
			return nil
		}
		if err := report.WritePopulationPlot(plotPath, samples); err != nil {
			return err
		}
		log.Printf("Population chart written to %s", plotPath)
		return nil
	}

	if plotPath != "" {
		log.Printf("No run with more than one generation, skipping %s", plotPath)
	}
	return nil
}

// setupLogging routes the standard logger. The interactive UI owns the
// terminal, so without a log file its logs are dropped.
func setupLogging(path string, headless bool) (func(), error) {
	if path == "" {
		if !headless {
			log.SetOutput(io.Discard)
		}
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "[setupLogging] failed to open log file: %+v", path)
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }, nil
}
