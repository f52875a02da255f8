// Package driver runs the render-then-advance cycle of a [walk.Disc].
//
// Two operating modes are provided:
//
//   - [Burst]: a synchronous loop of exactly N render/advance pairs
//   - [Animation]: a state machine advanced once per scheduling
//     opportunity (a display refresh, a timer tick, a TUI message)
//
// The drawing surface and the control values are collaborators supplied by
// the host through the [Renderer] and [Controls] interfaces. Renderer and
// control failures abort the run; nothing is retried.
//
// # Example
//
//	anim := driver.NewAnimation(disc, canvas, controls.NewStatic(p), 1000)
//	frames, stop := driver.Ticker(60)
//	defer stop()
//	err := anim.Run(context.Background(), frames)
package driver
