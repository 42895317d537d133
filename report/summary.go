package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sheikhrachel/tri-life/store"
)

// Summary describes the alive population of a recorded run.
type Summary struct {
	Generations    int
	MeanAlive      float64
	StdDevAlive    float64
	MinAlive       float64
	MaxAlive       float64
	PeakGeneration int
	FinalAlive     int
}

// Summarize computes population statistics over samples. An empty input
// yields the zero Summary.
func Summarize(samples []store.Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	alive := make([]float64, len(samples))
	for i, s := range samples {
		alive[i] = float64(s.Census.Alive)
	}

	sum := Summary{
		Generations:    len(samples),
		MinAlive:       floats.Min(alive),
		MaxAlive:       floats.Max(alive),
		PeakGeneration: samples[floats.MaxIdx(alive)].Generation,
		FinalAlive:     samples[len(samples)-1].Census.Alive,
	}
	if len(alive) < 2 {
		sum.MeanAlive = alive[0]
		return sum
	}
	sum.MeanAlive, sum.StdDevAlive = stat.MeanStdDev(alive, nil)

	return sum
}
