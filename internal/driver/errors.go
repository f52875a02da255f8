package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrRendererFailure indicates the drawing surface rejected a draw or clear.
	ErrRendererFailure = errors.New("driver: renderer failure")

	// ErrConfigurationMissing indicates a control value could not be read.
	ErrConfigurationMissing = errors.New("driver: configuration missing")

	// ErrInvalidFrameCount indicates a negative frame count or limit.
	ErrInvalidFrameCount = errors.New("driver: frame count must not be negative")

	// ErrFramesClosed indicates the frame source closed before the animation
	// finished.
	ErrFramesClosed = errors.New("driver: frame source closed")
)

// TickError wraps a run-aborting error with the tick it occurred on.
type TickError struct {
	Tick int
	Op   string
	Err  error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d: %s: %v", e.Tick, e.Op, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}

func rendererError(tick int, op string, err error) error {
	if errors.Is(err, ErrRendererFailure) {
		return &TickError{Tick: tick, Op: op, Err: err}
	}
	return &TickError{Tick: tick, Op: op, Err: fmt.Errorf("%w: %w", ErrRendererFailure, err)}
}

func controlsError(tick int, err error) error {
	if errors.Is(err, ErrConfigurationMissing) {
		return &TickError{Tick: tick, Op: "controls", Err: err}
	}
	return &TickError{Tick: tick, Op: "controls", Err: fmt.Errorf("%w: %w", ErrConfigurationMissing, err)}
}
