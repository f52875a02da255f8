package render

import (
	"math"
	"strings"

	"github.com/san-kum/discwalk/internal/walk"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Braille is a terminal canvas of Width x Height cells, each holding 2x4
// sub-pixels. Cells remember the color of the last disc that touched them.
type Braille struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]walk.RGB

	region walk.Region
}

func NewBraille(region walk.Region, w, h int) *Braille {
	b := &Braille{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]walk.RGB, h),
		region: region,
	}
	for i := range b.Grid {
		b.Grid[i] = make([]rune, w)
		b.Colors[i] = make([]walk.RGB, w)
	}
	b.Clear()
	return b
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (b *Braille) Set(x, y int, c walk.RGB) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Width || row >= b.Height {
		return
	}
	b.Grid[row][col] |= pixelMap[y%4][x%2]
	b.Colors[row][col] = c
}

func (b *Braille) Clear() error {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
			b.Colors[i][j] = walk.RGB{}
		}
	}
	return nil
}

// Draw fills the disc scaled from region units to sub-pixels. Discs smaller
// than a sub-pixel still mark their center.
func (b *Braille) Draw(s walk.Snapshot) error {
	if err := CheckArc(s); err != nil {
		return err
	}
	sx := float64(b.Width*2) / b.region.Width()
	sy := float64(b.Height*4) / b.region.Height()

	cx := (s.X - b.region.Min) * sx
	cy := (s.Y - b.region.Min) * sy
	rx, ry := s.Radius*sx, s.Radius*sy

	b.Set(int(cx), int(cy), s.Color)
	x0, x1 := clampSpan(cx-rx, cx+rx, b.Width*2)
	y0, y1 := clampSpan(cy-ry, cy+ry, b.Height*4)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				b.Set(x, y, s.Color)
			}
		}
	}
	return nil
}

// clampSpan returns the sub-pixel range [lo, hi) covering [from, to] that
// lies inside [0, limit).
func clampSpan(from, to float64, limit int) (int, int) {
	lo := math.Max(math.Floor(from), 0)
	hi := math.Min(math.Ceil(to)+1, float64(limit))
	if hi < lo {
		return 0, 0
	}
	return int(lo), int(hi)
}

// Lit reports whether any sub-pixel of the cell is set.
func (b *Braille) Lit(row, col int) bool {
	return b.Grid[row][col] != brailleBlank
}

func (b *Braille) String() string {
	var sb strings.Builder
	for _, row := range b.Grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
