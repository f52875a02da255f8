package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/san-kum/discwalk/internal/walk"
)

// Raster paints onto an RGBA image sized to the region.
type Raster struct {
	dc          *gg.Context
	region      walk.Region
	background  color.Color
	recordEvery int
	draws       int
	frames      []image.Image
}

func NewRaster(region walk.Region, background color.Color) *Raster {
	w := int(math.Ceil(region.Width()))
	h := int(math.Ceil(region.Height()))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if background == nil {
		background = color.White
	}
	return &Raster{
		dc:         gg.NewContext(w, h),
		region:     region,
		background: background,
	}
}

// RecordEvery captures a frame after every n draws. Zero disables capture.
func (r *Raster) RecordEvery(n int) {
	r.recordEvery = n
}

func (r *Raster) Clear() error {
	r.dc.SetColor(r.background)
	r.dc.Clear()
	r.frames = nil
	r.draws = 0
	return nil
}

func (r *Raster) Draw(s walk.Snapshot) error {
	if err := CheckArc(s); err != nil {
		return err
	}
	x, y := s.X-r.region.Min, s.Y-r.region.Min

	r.dc.ClearPath()
	r.dc.SetColor(s.Color.RGBA())
	r.dc.DrawArc(x, y, s.Radius, 0, 2*math.Pi)
	r.dc.FillPreserve()
	r.dc.Stroke()

	r.draws++
	if r.recordEvery > 0 && r.draws%r.recordEvery == 0 {
		r.frames = append(r.frames, r.snapshot())
	}
	return nil
}

func (r *Raster) snapshot() image.Image {
	src := r.dc.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

func (r *Raster) Image() image.Image        { return r.dc.Image() }
func (r *Raster) Frames() []image.Image     { return r.frames }
func (r *Raster) Draws() int                { return r.draws }
func (r *Raster) SavePNG(path string) error { return r.dc.SavePNG(path) }
