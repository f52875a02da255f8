package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/render"
	"github.com/san-kum/discwalk/internal/walk"
)

// ebitenCanvas is an offscreen image the game copies to the screen.
type ebitenCanvas struct {
	img    *ebiten.Image
	region walk.Region
	win    Window
}

func (c *ebitenCanvas) Clear() error {
	c.img.Fill(c.win.Background)
	return nil
}

func (c *ebitenCanvas) Draw(s walk.Snapshot) error {
	if err := render.CheckArc(s); err != nil {
		return err
	}
	x, y, r := c.win.toScreen(c.region, s)
	col := s.Color.RGBA()
	vector.DrawFilledCircle(c.img, x, y, r, col, true)
	vector.StrokeCircle(c.img, x, y, r, 1, col, true)
	return nil
}

type game struct {
	anim          *driver.Animation
	canvas        *ebitenCanvas
	width, height int
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	more, err := g.anim.Tick()
	if err != nil {
		return err
	}
	if !more {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas.img, nil)
	ebitenutil.DebugPrintAt(screen, statusLine(g.anim), 8, g.height-20)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// RunEbiten runs the animation as an ebiten game, one tick per update.
func RunEbiten(w Window, disc *walk.Disc, ctrl driver.Controls, limit int, opts ...driver.Option) (driver.Stats, error) {
	width, height := w.size(disc.Region())
	canvas := &ebitenCanvas{
		img:    ebiten.NewImage(width, height),
		region: disc.Region(),
		win:    w,
	}
	g := &game{
		anim:   driver.NewAnimation(disc, canvas, ctrl, limit, opts...),
		canvas: canvas,
		width:  width,
		height: height,
	}

	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetTPS(w.fps())

	if err := ebiten.RunGame(g); err != nil {
		g.anim.Stop()
		return g.anim.Stats(), err
	}
	g.anim.Stop()
	return g.anim.Stats(), g.anim.Err()
}
