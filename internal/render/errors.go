package render

import (
	"fmt"
	"math"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/walk"
)

// ErrInvalidArc is returned for a snapshot that cannot be traced as a circle.
var ErrInvalidArc = fmt.Errorf("render: invalid arc parameters: %w", driver.ErrRendererFailure)

// CheckArc rejects snapshots with non-finite coordinates or a non-positive radius.
func CheckArc(s walk.Snapshot) error {
	for _, v := range []float64{s.X, s.Y, s.Radius} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidArc
		}
	}
	if s.Radius <= 0 {
		return ErrInvalidArc
	}
	return nil
}
