// Package metrics summarizes a walk as it is rendered. Every metric is a
// driver.Observer.
package metrics

import "github.com/san-kum/discwalk/internal/walk"

type Metric interface {
	Name() string
	OnTick(tick int, s walk.Snapshot)
	Value() float64
	Reset()
}

// Set fans ticks out to several metrics.
type Set []Metric

func Default(region walk.Region) Set {
	return Set{NewPathLength(), NewColorDrift(), NewCoverage(region, 50, 25)}
}

func (s Set) OnTick(tick int, snap walk.Snapshot) {
	for _, m := range s {
		m.OnTick(tick, snap)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}
