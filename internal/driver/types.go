package driver

import (
	"log/slog"
	"time"

	"github.com/san-kum/discwalk/internal/walk"
)

// Renderer paints a filled and stroked circle for a disc snapshot.
type Renderer interface {
	Draw(s walk.Snapshot) error
}

// Clearer is implemented by renderers that can wipe their surface. It is
// called once when a run starts.
type Clearer interface {
	Clear() error
}

// Params are the per-tick walk magnitudes.
type Params struct {
	Step  float64
	Delta uint8
}

// Controls supplies walk parameters. Burst mode reads them once per run,
// Animation once per tick.
type Controls interface {
	Params() (Params, error)
}

// ControlsFunc adapts a function to Controls.
type ControlsFunc func() (Params, error)

func (f ControlsFunc) Params() (Params, error) { return f() }

// Observer is notified after each successful render.
type Observer interface {
	OnTick(tick int, s walk.Snapshot)
}

type Stats struct {
	Renders  int
	Advances int
	Elapsed  time.Duration
}

type options struct {
	logger    *slog.Logger
	observers []Observer
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
