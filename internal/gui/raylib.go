package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/render"
	"github.com/san-kum/discwalk/internal/walk"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(10, 10, 10, 200)
)

// raylibCanvas draws into a render texture that is never cleared between
// frames.
type raylibCanvas struct {
	target rl.RenderTexture2D
	region walk.Region
	win    Window
}

func (c *raylibCanvas) Clear() error {
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.NewColor(c.win.Background.R, c.win.Background.G, c.win.Background.B, 255))
	rl.EndTextureMode()
	return nil
}

func (c *raylibCanvas) Draw(s walk.Snapshot) error {
	if err := render.CheckArc(s); err != nil {
		return err
	}
	x, y, r := c.win.toScreen(c.region, s)
	col := s.Color.RGBA()
	fill := rl.NewColor(col.R, col.G, col.B, 255)

	rl.BeginTextureMode(c.target)
	rl.DrawCircleV(rl.NewVector2(x, y), r, fill)
	rl.DrawCircleLines(int32(x), int32(y), r, fill)
	rl.EndTextureMode()
	return nil
}

type App struct {
	Anim   *driver.Animation
	canvas *raylibCanvas
	width  int32
	height int32
}

func initWindow(w Window, width, height int32) {
	rl.InitWindow(width, height, w.Title)
	rl.SetTargetFPS(int32(w.fps()))
	rl.SetExitKey(0)
}

// RunRaylib opens a window and ticks the animation once per frame until it
// finishes or the window closes.
func RunRaylib(w Window, disc *walk.Disc, ctrl driver.Controls, limit int, opts ...driver.Option) (driver.Stats, error) {
	width, height := w.size(disc.Region())
	initWindow(w, int32(width), int32(height))
	defer rl.CloseWindow()

	canvas := &raylibCanvas{
		target: rl.LoadRenderTexture(int32(width), int32(height)),
		region: disc.Region(),
		win:    w,
	}
	defer rl.UnloadRenderTexture(canvas.target)

	app := &App{
		Anim:   driver.NewAnimation(disc, canvas, ctrl, limit, opts...),
		canvas: canvas,
		width:  int32(width),
		height: int32(height),
	}
	if err := app.Anim.Start(); err != nil {
		return app.Anim.Stats(), err
	}
	err := app.RunLoop()
	app.Anim.Stop()
	return app.Anim.Stats(), err
}

// RunLoop returns nil when the window is closed and the first tick error
// otherwise.
func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			return nil
		}
		if err := a.Update(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

func (a *App) Update() error {
	return frame(a.Anim)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(a.canvas.target.Texture.Width), -float32(a.canvas.target.Texture.Height))
	rl.DrawTextureRec(a.canvas.target.Texture, src, rl.NewVector2(0, 0), rl.White)

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawRectangle(0, a.height-24, a.width, 24, ColPanel)
	rl.DrawText(statusLine(a.Anim), 8, a.height-18, 12, ColText)
	rl.DrawText("[Q] QUIT", a.width-70, a.height-18, 12, ColTextDim)
}
