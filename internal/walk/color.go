package walk

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/discwalk/internal/rng"
)

// Channel is a single 0-255 intensity.
type Channel uint8

func SaturatingAdd(v, d uint8) uint8 {
	if s := uint16(v) + uint16(d); s < math.MaxUint8 {
		return uint8(s)
	}
	return math.MaxUint8
}

func SaturatingSub(v, d uint8) uint8 {
	if d >= v {
		return 0
	}
	return v - d
}

// RandomChannel draws uniformly over [0, 255].
func RandomChannel(src rng.Source) Channel {
	v := math.Floor(src.Float64() * 256)
	if v > 255 {
		v = 255
	}
	return Channel(v)
}

// Advance drifts the channel by delta, up when the draw is above one half.
func (c *Channel) Advance(delta uint8, src rng.Source) {
	if src.Float64() > 0.5 {
		*c = Channel(SaturatingAdd(uint8(*c), delta))
	} else {
		*c = Channel(SaturatingSub(uint8(*c), delta))
	}
}

type RGB struct {
	R, G, B Channel
}

// RandomRGB draws each channel independently.
func RandomRGB(src rng.Source) RGB {
	r := RandomChannel(src)
	g := RandomChannel(src)
	b := RandomChannel(src)
	return RGB{R: r, G: g, B: b}
}

// Advance drifts every channel with its own draw, R then G then B.
func (c *RGB) Advance(delta uint8, src rng.Source) {
	c.R.Advance(delta, src)
	c.G.Advance(delta, src)
	c.B.Advance(delta, src)
}

// String returns the renderable form, e.g. "rgb(12, 200, 7)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}

// Hex returns the #rrggbb form.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ParseRGB reads the form produced by String. Whitespace after commas is
// optional.
func ParseRGB(s string) (RGB, error) {
	var r, g, b int
	if _, err := fmt.Sscanf(s, "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("walk: parse color %q: %w", s, err)
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("walk: parse color %q: channel %d out of range", s, v)
		}
	}
	return RGB{R: Channel(r), G: Channel(g), B: Channel(b)}, nil
}
