// Package stroke drives pointer events into brush stamps on a layer.
//
// A Controller is idle until PointerDown and painting until the stroke
// ends. While painting, PointerMove places stamps every
// Settings.SpacingPixels() along the path, interpolating position and
// pressure so fast pointer motion leaves no gaps. A spacing of 0 stamps
// every sampled point.
//
// Strokes paint into a scratch copy of the layer. The layer itself is
// written once, when the stroke commits: on PointerUp, on Deactivate, or
// when the layer or strategy is switched mid-stroke. A stroke is never
// discarded.
//
// What a stamp does is decided by the Strategy:
//
//   - Brush composites a color with a blend mode
//   - Eraser lowers alpha
//   - Clone copies pixels from a source anchor
//   - Heal copies texture from a source anchor, matched to the
//     destination's luminance
//
// Clone and Heal take their anchor from an Alt pointer-down.
//
// The only error is ErrNoActiveLayer. Stamps that fall partly or entirely
// outside the layer are clipped silently.
package stroke
