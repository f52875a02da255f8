package driver

import (
	"context"
	"time"

	"github.com/san-kum/discwalk/internal/walk"
)

// Animation is the scheduled mode state machine. Each call to Tick is one
// scheduling opportunity; the host requests another opportunity only while
// Tick returns true.
//
// The stop check is tick > limit, so an animation renders limit+1 times.
type Animation struct {
	disc     *walk.Disc
	renderer Renderer
	controls Controls
	limit    int
	opts     options

	tick    int
	started bool
	stopped bool
	err     error
	stats   Stats
	begin   time.Time
}

func NewAnimation(disc *walk.Disc, r Renderer, controls Controls, limit int, opts ...Option) *Animation {
	return &Animation{
		disc:     disc,
		renderer: r,
		controls: controls,
		limit:    limit,
		opts:     buildOptions(opts),
	}
}

// Start clears the surface once. Calling it again is a no-op.
func (a *Animation) Start() error {
	if a.started {
		return a.err
	}
	a.started = true
	a.begin = time.Now()

	if a.limit < 0 {
		return a.fail(ErrInvalidFrameCount)
	}
	if c, ok := a.renderer.(Clearer); ok {
		if err := c.Clear(); err != nil {
			return a.fail(rendererError(0, "clear", err))
		}
	}
	a.opts.logger.Info("animation started", "limit", a.limit)
	return nil
}

// Tick runs one render/advance pair. It returns false once the animation
// has stopped, either by exceeding its limit, by Stop, or by an error.
func (a *Animation) Tick() (bool, error) {
	if !a.started {
		if err := a.Start(); err != nil {
			return false, err
		}
	}
	if a.stopped {
		return false, a.err
	}
	if a.tick > a.limit {
		a.Stop()
		return false, nil
	}
	a.tick++

	p, err := a.controls.Params()
	if err != nil {
		return false, a.fail(controlsError(a.tick, err))
	}

	snap := a.disc.Snapshot()
	if err := a.renderer.Draw(snap); err != nil {
		return false, a.fail(rendererError(a.tick, "draw", err))
	}
	a.stats.Renders++
	for _, obs := range a.opts.observers {
		obs.OnTick(a.tick, snap)
	}

	if err := a.disc.Advance(p.Step, p.Delta); err != nil {
		return false, a.fail(&TickError{Tick: a.tick, Op: "advance", Err: err})
	}
	a.stats.Advances++

	a.opts.logger.Debug("tick", "tick", a.tick, "x", snap.X, "y", snap.Y, "color", snap.Color.String())
	return true, nil
}

// Stop ends the animation. Subsequent ticks return false.
func (a *Animation) Stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.stats.Elapsed = time.Since(a.begin)
	if a.err == nil {
		a.opts.logger.Info("animation finished", "renders", a.stats.Renders, "elapsed", a.stats.Elapsed)
	}
}

func (a *Animation) fail(err error) error {
	a.err = err
	a.opts.logger.Error("animation aborted", "tick", a.tick, "error", err)
	a.Stop()
	return err
}

func (a *Animation) Stopped() bool    { return a.stopped }
func (a *Animation) Err() error       { return a.err }
func (a *Animation) Ticks() int       { return a.tick }
func (a *Animation) Limit() int       { return a.limit }
func (a *Animation) Disc() *walk.Disc { return a.disc }

func (a *Animation) Stats() Stats {
	s := a.stats
	if !a.stopped && a.started {
		s.Elapsed = time.Since(a.begin)
	}
	return s
}

// Run drives the animation from a frame source until it stops. Waiting for
// the next frame is the only suspension point. A context that is never
// canceled leaves the frame limit as the only way to finish.
func (a *Animation) Run(ctx context.Context, frames <-chan time.Time) error {
	if err := a.Start(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			a.Stop()
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				a.Stop()
				return ErrFramesClosed
			}
		}

		more, err := a.Tick()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Ticker returns a frame source firing fps times per second and a function
// releasing it.
func Ticker(fps int) (<-chan time.Time, func()) {
	if fps <= 0 {
		fps = 60
	}
	t := time.NewTicker(time.Second / time.Duration(fps))
	return t.C, t.Stop
}
