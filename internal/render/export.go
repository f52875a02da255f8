package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/setanarut/apng"
)

// FrameDelay is the delay between exported animation frames, in 1/100 s.
const FrameDelay = 4

var ErrNoFrames = fmt.Errorf("render: no frames recorded")

// SaveGIF writes frames as a looping GIF.
func SaveGIF(path string, frames []image.Image) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		p := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, frame.Bounds(), frame, frame.Bounds().Min)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, FrameDelay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

// SaveAPNG writes frames as an animated PNG.
func SaveAPNG(path string, frames []image.Image) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	apng.Save(path, frames, FrameDelay)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("render: apng not written: %w", err)
	}
	return nil
}

// Format identifies an output file type by extension.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatGIF  Format = "gif"
	FormatAPNG Format = "apng"
)

// FormatOf maps a path to its output format. ".apng" selects APNG; a plain
// ".png" is a still image.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch Format(ext) {
	case FormatPNG, FormatSVG, FormatGIF, FormatAPNG:
		return Format(ext), nil
	}
	return "", fmt.Errorf("render: unsupported output format %q", ext)
}

// Animated reports whether the format holds more than one frame.
func (f Format) Animated() bool {
	return f == FormatGIF || f == FormatAPNG
}
