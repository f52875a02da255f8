package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/san-kum/discwalk/internal/walk"
)

// svgScale maps region units to integer SVG user units.
const svgScale = 100

// SVG accumulates drawn discs into a vector document.
type SVG struct {
	region     walk.Region
	background string
	title      string
	shapes     []walk.Snapshot
}

func NewSVG(region walk.Region, background, title string) *SVG {
	if background == "" {
		background = "#ffffff"
	}
	return &SVG{region: region, background: background, title: title}
}

func (s *SVG) Clear() error {
	s.shapes = s.shapes[:0]
	return nil
}

func (s *SVG) Draw(snap walk.Snapshot) error {
	if err := CheckArc(snap); err != nil {
		return err
	}
	s.shapes = append(s.shapes, snap)
	return nil
}

func (s *SVG) Len() int { return len(s.shapes) }

// WriteTo renders the document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	ew := &errWriter{w: w}
	width := int(math.Ceil(s.region.Width()))
	height := int(math.Ceil(s.region.Height()))

	canvas := svg.New(ew)
	canvas.Startview(width, height, 0, 0, width*svgScale, height*svgScale)
	if s.title != "" {
		canvas.Title(s.title)
	}
	canvas.Rect(0, 0, width*svgScale, height*svgScale, "fill:"+s.background)
	canvas.Gstyle(fmt.Sprintf("stroke-width:%d", svgScale))
	for _, shape := range s.shapes {
		c := shape.Color.String()
		canvas.Circle(
			scaled(shape.X-s.region.Min),
			scaled(shape.Y-s.region.Min),
			scaled(shape.Radius),
			fmt.Sprintf("fill:%s;stroke:%s", c, c),
		)
	}
	canvas.Gend()
	canvas.End()
	return ew.n, ew.err
}

func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	s.WriteTo(&buf)
	return buf.Bytes()
}

func scaled(v float64) int {
	return int(math.Round(v * svgScale))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.n += int64(n)
	e.err = err
	return n, err
}
