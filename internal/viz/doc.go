// Package viz runs the walk live in the terminal.
//
// The [Model] hosts a scheduled [driver.Animation] inside Bubble Tea. Each
// frame message triggers one tick, and the next frame is requested only while
// the animation keeps going. The walk is drawn on a braille canvas next to a
// panel showing progress, the current position and color, and a plot of the
// recent channel values.
//
// # Key Bindings
//
//	Q      - Quit
//	Up/K   - Scale the step by 1.1
//	Down/J - Divide the step by 1.1
//	+/-    - Shift the color delta by one
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
