package driver

import (
	"context"
	"time"

	"github.com/san-kum/discwalk/internal/walk"
)

// Burst renders then advances disc exactly frameCount times. Controls are read
// once before the loop, and the state produced by the final advance is never
// drawn.
func Burst(ctx context.Context, disc *walk.Disc, r Renderer, controls Controls, frameCount int, opts ...Option) (stats Stats, err error) {
	o := buildOptions(opts)

	if frameCount < 0 {
		return stats, ErrInvalidFrameCount
	}

	p, perr := controls.Params()
	if perr != nil {
		return stats, controlsError(0, perr)
	}

	if c, ok := r.(Clearer); ok {
		if err := c.Clear(); err != nil {
			return stats, rendererError(0, "clear", err)
		}
	}

	o.logger.Info("burst started", "frames", frameCount, "step", p.Step, "delta", p.Delta)
	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	for i := 0; i < frameCount; i++ {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		snap := disc.Snapshot()
		if err := r.Draw(snap); err != nil {
			return stats, rendererError(i+1, "draw", err)
		}
		stats.Renders++
		for _, obs := range o.observers {
			obs.OnTick(i+1, snap)
		}

		if err := disc.Advance(p.Step, p.Delta); err != nil {
			return stats, &TickError{Tick: i + 1, Op: "advance", Err: err}
		}
		stats.Advances++
	}

	o.logger.Info("burst finished", "renders", stats.Renders, "elapsed", time.Since(start))
	return stats, nil
}
