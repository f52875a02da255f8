package walk

import (
	"math"

	"github.com/san-kum/discwalk/internal/rng"
)

const (
	DefaultStep   = 2.64
	DefaultRadius = 2.2
	DefaultFrames = 100000

	MinColorDelta = 10
	MaxColorDelta = 50
)

// DefaultRegion is the 500x250 drawing surface.
var DefaultRegion = Region{Min: 0, MaxX: 500, MaxY: 250}

// Snapshot is a value copy of a disc handed to renderers and observers.
type Snapshot struct {
	X, Y   float64
	Radius float64
	Color  RGB
}

type Disc struct {
	Position Coordinate
	Color    RGB

	radius float64
	region Region
	src    rng.Source
}

// NewDisc places a disc of the given radius at a random position with a
// random color.
func NewDisc(region Region, radius float64, src rng.Source) (*Disc, error) {
	if err := validateRadius(radius); err != nil {
		return nil, err
	}
	pos, err := RandomCoordinate(region, src)
	if err != nil {
		return nil, err
	}
	return &Disc{
		Position: pos,
		Color:    RandomRGB(src),
		radius:   radius,
		region:   region,
		src:      src,
	}, nil
}

// NewDiscAt creates a disc with an explicit starting state.
func NewDiscAt(region Region, pos Coordinate, c RGB, radius float64, src rng.Source) (*Disc, error) {
	if err := validateRadius(radius); err != nil {
		return nil, err
	}
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if !region.Contains(pos) {
		return nil, ErrOutOfRegion
	}
	return &Disc{Position: pos, Color: c, radius: radius, region: region, src: src}, nil
}

func validateRadius(r float64) error {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return ErrInvalidRadius
	}
	return nil
}

func (d *Disc) Radius() float64 { return d.radius }
func (d *Disc) Region() Region  { return d.region }

// Advance applies one tick: the position walk, then the color drift. A failed
// position walk leaves the color untouched.
func (d *Disc) Advance(step float64, delta uint8) error {
	if err := d.Position.Advance(d.region, step, d.src); err != nil {
		return err
	}
	d.Color.Advance(delta, d.src)
	return nil
}

func (d *Disc) Snapshot() Snapshot {
	return Snapshot{X: d.Position.X, Y: d.Position.Y, Radius: d.radius, Color: d.Color}
}
