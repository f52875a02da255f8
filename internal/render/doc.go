// Package render provides drawing surfaces for disc snapshots.
//
//   - [Raster]: an in-memory 2D context (fogleman/gg) with PNG, GIF and
//     APNG export
//   - [SVG]: a vector document (ajstarks/svgo)
//   - [Braille]: a terminal canvas of Braille sub-pixels
//   - [Multi]: fans one draw out to several surfaces
//
// Every renderer paints a disc the same way: begin a path, trace the full
// circle, fill, then stroke with the same color.
package render
