package walk

import (
	"errors"
	"fmt"
)

// Domain errors for walk operations.
var (
	// ErrInvalidRegion indicates a region with no room for a valid position,
	// or a position walk that found no candidate inside the region.
	ErrInvalidRegion = errors.New("walk: invalid region (no valid position)")

	// ErrInvalidStep indicates a non-positive or non-finite step.
	ErrInvalidStep = errors.New("walk: step must be positive and finite")

	// ErrInvalidRadius indicates a non-positive or non-finite radius.
	ErrInvalidRadius = errors.New("walk: radius must be positive and finite")

	// ErrOutOfRegion indicates an explicit start position outside the region.
	ErrOutOfRegion = errors.New("walk: position outside region")
)

// WalkError wraps an error with the position walk context.
type WalkError struct {
	From    Coordinate
	Step    float64
	Region  Region
	Wrapped error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%v: from (%.2f, %.2f) with step %.2f in %v", e.Wrapped, e.From.X, e.From.Y, e.Step, e.Region)
}

func (e *WalkError) Unwrap() error {
	return e.Wrapped
}
