package brush

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// cursorSegments is the number of line segments approximating the outline.
const cursorSegments = 64

// CursorColor is the color CreateBrushCursor draws with.
var CursorColor = color.NRGBA{R: 0, G: 0, B: 0, A: 200}

// CreateBrushCursor renders a preview of the brush footprint: an
// anti-aliased one-pixel circle outline with the brush diameter and a
// small crosshair marking the center. The image is transparent elsewhere
// and is meant for display only.
func CreateBrushCursor(s Settings) *image.NRGBA {
	size := math.Max(s.Size, 1)
	side := TipSide(size) + 4
	c := float32(side) / 2
	r := float32(size / 2)

	z := vector.NewRasterizer(side, side)
	circle(z, c, c, r+0.5, false)
	circle(z, c, c, max(r-0.5, 0), true)

	// Crosshair arms, clipped so they stay inside small cursors.
	arm := float32(math.Min(4, size/4+1))
	rect(z, c-arm, c-0.5, c+arm, c+0.5)
	rect(z, c-0.5, c-arm, c+0.5, c-0.5)
	rect(z, c-0.5, c+0.5, c+0.5, c+arm)

	mask := image.NewAlpha(image.Rect(0, 0, side, side))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	out := image.NewNRGBA(mask.Bounds())
	draw.DrawMask(out, out.Bounds(), image.NewUniform(CursorColor), image.Point{}, mask, image.Point{}, draw.Over)
	return out
}

// circle adds a closed polygonal circle. Reversed circles wind the other
// way and punch a hole into an enclosing one.
func circle(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	if r <= 0 {
		return
	}
	dir := 1.0
	if reverse {
		dir = -1
	}
	z.MoveTo(cx+r, cy)
	for i := 1; i < cursorSegments; i++ {
		sin, cos := math.Sincos(dir * 2 * math.Pi * float64(i) / cursorSegments)
		z.LineTo(cx+r*float32(cos), cy+r*float32(sin))
	}
	z.ClosePath()
}

func rect(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}
