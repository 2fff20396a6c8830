// Package paint is the pixel-level painting and compositing core.
//
// # Overview
//
// paint turns pointer or stylus paths into rasterized brush strokes blended
// into an RGBA8 pixel buffer. The module is split into three layers:
//
//   - paint (this package): Color, the twelve BlendMode formulas,
//     BlendPixel, PixelBuffer and the alpha Mask used for brush tips
//   - paint/brush: tip generation, stamp caching, smoothing, flow and
//     pressure dynamics, cursor preview
//   - paint/stroke: the stroke controller that interpolates stamps along
//     a path and runs the brush, eraser, clone and healing algorithms
//
// # Quick Start
//
//	buf := paint.NewPixelBuffer(100, 100)
//	tip := brush.GenerateTip(10, 100, brush.DefaultShape())
//	buf.ApplyBrushStamp(tip, 50, 50, paint.Red, 1, paint.BlendNormal)
//
// # Color Model
//
// Buffers store straight (non-premultiplied) alpha. Blending divides by
// the output alpha, so a fully transparent result always has zero color.
//
// # Coordinate System
//
// Origin (0,0) is the top-left pixel, X grows right and Y grows down.
// Reads outside a buffer return Transparent and writes are ignored.
//
// # Concurrency
//
// Everything here is synchronous CPU work meant for a single goroutine.
// Only SetLogger and Logger are safe for concurrent use.
package paint
