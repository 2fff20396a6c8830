// Package brush generates brush tips and models brush dynamics.
//
// A tip is a square paint.Mask of side ⌈size⌉ rasterized from a Shape:
// round (optionally elliptical and rotated), square, or a custom mask
// resampled to size. The Engine caches the most recent tip under a value
// key of (size, hardness, shape) and regenerates it whenever any part of
// the key changes.
//
// The Engine also owns per-stroke state: the pointer smoothing history and
// the random source used for size jitter. The smoothing history is not
// cleared automatically; call ResetSmoothing at the start of every stroke
// or samples from the previous stroke leak into the next one.
//
// Flow is modelled by CalculateOpacityWithFlow: each stamp adds base*flow
// to a pixel's accumulated opacity, capped at base, so overlapping stamps
// within one stroke build up to but never beyond the stroke opacity.
package brush
