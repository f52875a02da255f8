// Package controls implements the sources of per-tick walk parameters.
package controls

import (
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/walk"
)

// Static returns the same parameters on every read.
type Static struct {
	P driver.Params
}

func NewStatic(p driver.Params) Static { return Static{P: p} }

func (s Static) Params() (driver.Params, error) {
	if err := validate(s.P); err != nil {
		return driver.Params{}, err
	}
	return s.P, nil
}

// Live holds adjustable parameters, the analog of an on-screen slider. It is
// safe to adjust from an input goroutine while a driver reads it.
type Live struct {
	mu       sync.RWMutex
	p        driver.Params
	minDelta uint8
	maxDelta uint8
}

func NewLive(p driver.Params) *Live {
	return &Live{p: p, minDelta: 0, maxDelta: math.MaxUint8}
}

// NewSlider bounds the color delta to the slider range.
func NewSlider(p driver.Params) *Live {
	l := &Live{p: p, minDelta: walk.MinColorDelta, maxDelta: walk.MaxColorDelta}
	l.p.Delta = l.clampDelta(int(p.Delta))
	return l
}

func (l *Live) Params() (driver.Params, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := validate(l.p); err != nil {
		return driver.Params{}, err
	}
	return l.p, nil
}

func (l *Live) SetStep(step float64) {
	l.mu.Lock()
	l.p.Step = step
	l.mu.Unlock()
}

func (l *Live) SetDelta(delta uint8) {
	l.mu.Lock()
	l.p.Delta = l.clampDelta(int(delta))
	l.mu.Unlock()
}

// Nudge scales the step by stepFactor and shifts the delta by deltaShift.
func (l *Live) Nudge(stepFactor float64, deltaShift int) driver.Params {
	l.mu.Lock()
	defer l.mu.Unlock()
	if stepFactor > 0 {
		l.p.Step *= stepFactor
	}
	l.p.Delta = l.clampDelta(int(l.p.Delta) + deltaShift)
	return l.p
}

func (l *Live) clampDelta(v int) uint8 {
	if v < int(l.minDelta) {
		return l.minDelta
	}
	if v > int(l.maxDelta) {
		return l.maxDelta
	}
	return uint8(v)
}

func validate(p driver.Params) error {
	if p.Step <= 0 || math.IsNaN(p.Step) || math.IsInf(p.Step, 0) {
		return fmt.Errorf("%w: step %v", driver.ErrConfigurationMissing, p.Step)
	}
	return nil
}
