package brush

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/paint"
)

// TipSide returns the side length in pixels of the stamp for a brush size.
func TipSide(size float64) int {
	side := int(math.Ceil(size))
	if side < 1 {
		side = 1
	}
	return side
}

// GenerateTip rasterizes a brush tip into a square alpha mask of side
// ⌈size⌉.
//
// Round tips fall off linearly from full coverage at radius*hardness/100
// to zero at the outer radius; hardness 100 gives a binary disk. Square
// tips are solid at hardness 100 and otherwise get a soft border of width
// size*(100-hardness)/200. Custom tips resample shape.Custom to the target
// size and ignore hardness. Rotation, roundness and flips apply to every
// type.
func GenerateTip(size, hardness float64, shape Shape) *paint.Mask {
	side := TipSide(size)
	if shape.Roundness <= 0 {
		shape.Roundness = 100
	}
	hardness = math.Max(0, math.Min(100, hardness))

	switch shape.Type {
	case Square:
		return squareTip(side, size, hardness, shape)
	case Custom:
		if shape.Custom != nil && shape.Custom.Width() > 0 && shape.Custom.Height() > 0 {
			return customTip(side, shape)
		}
		return roundTip(side, size, hardness, shape)
	default:
		return roundTip(side, size, hardness, shape)
	}
}

// rasterize evaluates coverage at every texel center, mapped back into
// untransformed tip space relative to the tip center.
func rasterize(side int, shape Shape, coverage func(x, y float64) float64) *paint.Mask {
	m := paint.NewMask(side, side)
	center := float64(side) / 2
	inv := tipTransform(center, shape).invert()

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			tx, ty := inv.apply(float64(x)+0.5, float64(y)+0.5)
			a := coverage(tx-center, ty-center)
			if a <= 0 {
				continue
			}
			m.Set(x, y, uint8(math.Min(a, 1)*255+0.5))
		}
	}
	return m
}

func roundTip(side int, size, hardness float64, shape Shape) *paint.Mask {
	radius := size / 2
	inner := radius * hardness / 100

	return rasterize(side, shape, func(x, y float64) float64 {
		d := math.Hypot(x, y)
		switch {
		case d <= inner:
			return 1
		case d >= radius:
			return 0
		default:
			return (radius - d) / (radius - inner)
		}
	})
}

func squareTip(side int, size, hardness float64, shape Shape) *paint.Mask {
	half := size / 2
	band := size * (100 - hardness) / 200

	return rasterize(side, shape, func(x, y float64) float64 {
		inset := half - math.Max(math.Abs(x), math.Abs(y))
		if inset < 0 {
			return 0
		}
		if band <= 0 {
			return 1
		}
		// Each ring inside the border band is a little more opaque than
		// the one outside it.
		return math.Min(1, (inset+0.5)/band)
	})
}

func customTip(side int, shape Shape) *paint.Mask {
	src := shape.Custom.AsImage()
	sb := src.Bounds()
	dst := image.NewAlpha(image.Rect(0, 0, side, side))

	center := float64(side) / 2
	fit := scale(float64(side)/float64(sb.Dx()), float64(side)/float64(sb.Dy()))
	s2d := fit.then(tipTransform(center, shape))

	draw.CatmullRom.Transform(dst, s2d.aff3(), src, sb, draw.Src, nil)
	return paint.MaskFromAlpha(dst)
}
