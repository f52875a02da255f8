// Package rng provides the uniform random sources consumed by the walk model.
package rng

import (
	"math"
	"math/rand"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// New returns a seeded source. *rand.Rand satisfies Source.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sequence replays a fixed list of draws, cycling when exhausted.
type Sequence struct {
	vals []float64
	pos  int
}

// NewSequence creates a deterministic source. Values are clamped into [0, 1).
func NewSequence(vals ...float64) *Sequence {
	s := &Sequence{vals: make([]float64, len(vals))}
	for i, v := range vals {
		s.vals[i] = clampUnit(v)
	}
	return s
}

func (s *Sequence) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return v
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int { return s.pos }

// Counting wraps a source and counts draws.
type Counting struct {
	Source
	n int
}

func NewCounting(src Source) *Counting {
	return &Counting{Source: src}
}

func (c *Counting) Float64() float64 {
	c.n++
	return c.Source.Float64()
}

func (c *Counting) Count() int { return c.n }

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
