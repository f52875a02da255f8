package metrics

import "github.com/san-kum/discwalk/internal/walk"

// ColorDrift is the mean absolute channel change per tick, summed over R, G
// and B.
type ColorDrift struct {
	name    string
	sum     float64
	last    walk.RGB
	samples int
}

func NewColorDrift() *ColorDrift {
	return &ColorDrift{name: "color_drift"}
}

func (c *ColorDrift) Name() string { return c.name }

func (c *ColorDrift) OnTick(_ int, s walk.Snapshot) {
	if c.samples > 0 {
		c.sum += absDiff(s.Color.R, c.last.R) + absDiff(s.Color.G, c.last.G) + absDiff(s.Color.B, c.last.B)
	}
	c.last = s.Color
	c.samples++
}

func absDiff(a, b walk.Channel) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

func (c *ColorDrift) Value() float64 {
	if c.samples < 2 {
		return 0
	}
	return c.sum / float64(c.samples-1)
}

func (c *ColorDrift) Reset() {
	c.sum = 0
	c.last = walk.RGB{}
	c.samples = 0
}
