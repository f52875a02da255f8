package walk

import (
	"fmt"
	"math"

	"github.com/san-kum/discwalk/internal/rng"
)

// Region bounds positions to the open rectangle (Min, MaxX) x (Min, MaxY).
type Region struct {
	Min  float64 `json:"min" yaml:"min"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

func (r Region) Validate() error {
	for _, v := range []float64{r.Min, r.MaxX, r.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidRegion
		}
	}
	if r.MaxX <= r.Min || r.MaxY <= r.Min {
		return ErrInvalidRegion
	}
	return nil
}

// Contains reports whether c lies strictly inside the region.
// Points on the boundary are outside.
func (r Region) Contains(c Coordinate) bool {
	return c.X > r.Min && c.X < r.MaxX && c.Y > r.Min && c.Y < r.MaxY
}

func (r Region) Width() float64  { return r.MaxX - r.Min }
func (r Region) Height() float64 { return r.MaxY - r.Min }

func (r Region) String() string {
	return fmt.Sprintf("(%g, %g)x(%g, %g)", r.Min, r.MaxX, r.Min, r.MaxY)
}

type Coordinate struct {
	X, Y float64
}

// RandomCoordinate places a point uniformly on the integer lattice strictly
// inside the region.
func RandomCoordinate(region Region, src rng.Source) (Coordinate, error) {
	if err := region.Validate(); err != nil {
		return Coordinate{}, err
	}
	x, ok := latticePoint(region.Min, region.MaxX, src)
	if !ok {
		return Coordinate{}, ErrInvalidRegion
	}
	y, ok := latticePoint(region.Min, region.MaxY, src)
	if !ok {
		return Coordinate{}, ErrInvalidRegion
	}
	return Coordinate{X: x, Y: y}, nil
}

func latticePoint(lo, hi float64, src rng.Source) (float64, bool) {
	span := hi - lo - 1
	if span <= 0 {
		return 0, false
	}
	v := lo + 1 + math.Floor(src.Float64()*span)
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return v, true
}

// Candidates lists the in-region neighbours of c at distance step along each
// axis, x-major. The stationary offset is never included.
func (c Coordinate) Candidates(region Region, step float64) []Coordinate {
	out := make([]Coordinate, 0, 8)
	for mx := -1; mx <= 1; mx++ {
		for my := -1; my <= 1; my++ {
			if mx == 0 && my == 0 {
				continue
			}
			next := Coordinate{
				X: c.X + step*float64(mx),
				Y: c.Y + step*float64(my),
			}
			if region.Contains(next) {
				out = append(out, next)
			}
		}
	}
	return out
}

// Advance moves c to one of its candidates, chosen uniformly. If no candidate
// is inside the region c is left unchanged and no draw is consumed.
func (c *Coordinate) Advance(region Region, step float64, src rng.Source) error {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return ErrInvalidStep
	}
	options := c.Candidates(region, step)
	if len(options) == 0 {
		return &WalkError{From: *c, Step: step, Region: region, Wrapped: ErrInvalidRegion}
	}

	idx := int(math.Floor(src.Float64() * float64(len(options))))
	if idx >= len(options) {
		idx = len(options) - 1
	}
	*c = options[idx]
	return nil
}
