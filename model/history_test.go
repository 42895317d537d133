package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryDetectsStillLife(t *testing.T) {
	e := engineFrom(t,
		"....",
		".OO.",
		".OO.",
		"....",
	)
	h := NewHistory(5)

	assert.False(t, h.Observe(e.Grid()))
	e.NextGeneration()
	assert.True(t, h.Observe(e.Grid()))
}

func TestHistoryDetectsBlinker(t *testing.T) {
	e := engineFrom(t,
		".....",
		".....",
		".OOO.",
		".....",
		".....",
	)
	h := NewHistory(5)

	// The first two steps leave dead markers behind, so the cycle only
	// repeats exactly from generation 1 onwards.
	stagnant := make([]bool, 0, 4)
	for range 4 {
		stagnant = append(stagnant, h.Observe(e.Grid()))
		e.NextGeneration()
	}

	assert.Equal(t, []bool{false, false, false, true}, stagnant)
}

func TestHistoryIgnoresOlderStates(t *testing.T) {
	a := engineFrom(t, "O.")
	b := engineFrom(t, ".O")
	c := engineFrom(t, "OO")
	d := engineFrom(t, "..")
	h := NewHistory(10)

	for _, g := range []*Grid{a.Grid(), b.Grid(), c.Grid(), d.Grid()} {
		assert.False(t, h.Observe(g))
	}
	assert.False(t, h.Observe(a.Grid()), "a is four states back")
	assert.True(t, h.Observe(d.Grid()))
}

func TestHistoryBoundedSize(t *testing.T) {
	h := NewHistory(1)
	e, _ := NewEngine(3, 3, WithSeed(5))

	for range 10 {
		e.Randomize(0.5)
		h.Observe(e.Grid())
	}

	assert.Equal(t, stagnationWindow, h.Len())
	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestHashCoversDimensions(t *testing.T) {
	wide := engineFrom(t, "....")
	tall := engineFrom(t, "..", "..")

	assert.NotEqual(t, wide.Grid().Hash(), tall.Grid().Hash())
}
