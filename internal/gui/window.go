// Package gui shows the walk in a desktop window. The canvas accumulates
// discs between frames; the window only overlays a status line.
package gui

import (
	"fmt"
	"image/color"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/walk"
)

type Window struct {
	Title      string
	Scale      float64
	FPS        int
	Background color.RGBA
}

func DefaultWindow() Window {
	return Window{Title: "discwalk", Scale: 2, FPS: 60, Background: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
}

func (w Window) size(region walk.Region) (int, int) {
	scale := w.scale()
	return int(region.Width()*scale + 0.5), int(region.Height()*scale + 0.5)
}

func (w Window) fps() int {
	if w.FPS <= 0 {
		return 60
	}
	return w.FPS
}

func (w Window) scale() float64 {
	if w.Scale <= 0 {
		return 1
	}
	return w.Scale
}

// toScreen maps a snapshot into window pixels.
func (w Window) toScreen(region walk.Region, s walk.Snapshot) (x, y, r float32) {
	scale := w.scale()
	return float32((s.X - region.Min) * scale), float32((s.Y - region.Min) * scale), float32(s.Radius * scale)
}

func statusLine(anim *driver.Animation) string {
	snap := anim.Disc().Snapshot()
	state := "RUNNING"
	switch {
	case anim.Err() != nil:
		state = "ERROR"
	case anim.Stopped():
		state = "DONE"
	}
	return fmt.Sprintf("%s  %d/%d  (%.1f, %.1f)  %s", state, anim.Ticks(), anim.Limit()+1, snap.X, snap.Y, snap.Color)
}

// frame ticks the animation once. A finished animation is left alone so the
// last image stays on screen.
func frame(anim *driver.Animation) error {
	if anim.Stopped() {
		return nil
	}
	_, err := anim.Tick()
	return err
}
