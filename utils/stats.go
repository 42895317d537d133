package utils

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// populationWindow bounds the samples kept for the population statistics.
const populationWindow = 256

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	PopulationStdDev     float64
	TotalGenerations     int
	StartTime            time.Time

	recent []float64
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation and the time it took since the previous one
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	s.recent = append(s.recent, float64(population))
	if len(s.recent) > populationWindow {
		s.recent = s.recent[len(s.recent)-populationWindow:]
	}
	if len(s.recent) < 2 {
		s.AveragePopulation, s.PopulationStdDev = s.recent[0], 0
		return
	}
	s.AveragePopulation, s.PopulationStdDev = stat.MeanStdDev(s.recent, nil)
}

// Reset drops the population window, e.g. after the grid was cleared
func (s *Stats) Reset() {
	s.recent = s.recent[:0]
	s.AveragePopulation = 0
	s.PopulationStdDev = 0
	s.TotalGenerations = 0
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
