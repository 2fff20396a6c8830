package paint

import "math"

// BlendMode selects the per-channel color function used when compositing
// a source color over a destination.
//
// Every mode shares the same alpha rule (source-over):
//
//	outA = Sa + Da * (1 - Sa)
//
// and the same channel weighting:
//
//	out = (B(Sc, Dc) * Sa + Dc * Da * (1 - Sa)) / outA
//
// where B is the mode's blend function on straight (unmultiplied) channels.
type BlendMode int

const (
	// BlendNormal is straight alpha-over. B(s, d) = s
	BlendNormal BlendMode = iota
	// BlendMultiply darkens. B(s, d) = s * d
	BlendMultiply
	// BlendScreen lightens. B(s, d) = 1 - (1-s)*(1-d)
	BlendScreen
	// BlendOverlay is Multiply or Screen depending on the destination.
	BlendOverlay
	// BlendDarken keeps the darker channel. B(s, d) = min(s, d)
	BlendDarken
	// BlendLighten keeps the lighter channel. B(s, d) = max(s, d)
	BlendLighten
	// BlendColorDodge brightens the destination. B(s, d) = d / (1 - s)
	BlendColorDodge
	// BlendColorBurn darkens the destination. B(s, d) = 1 - (1 - d) / s
	BlendColorBurn
	// BlendHardLight is Overlay with source and destination swapped.
	BlendHardLight
	// BlendSoftLight is the softer Photoshop variant of HardLight.
	BlendSoftLight
	// BlendDifference subtracts the darker from the lighter. B(s, d) = |s - d|
	BlendDifference
	// BlendExclusion is a lower-contrast Difference. B(s, d) = s + d - 2*s*d
	BlendExclusion

	blendModeCount
)

// BlendChannel applies the blend function of mode to one pair of straight
// channel values in [0, 1]. Unknown modes behave like BlendNormal.
func BlendChannel(mode BlendMode, s, d float64) float64 {
	switch mode {
	case BlendMultiply:
		return s * d
	case BlendScreen:
		return 1 - (1-s)*(1-d)
	case BlendOverlay:
		return hardLight(d, s)
	case BlendDarken:
		return math.Min(s, d)
	case BlendLighten:
		return math.Max(s, d)
	case BlendColorDodge:
		return colorDodge(s, d)
	case BlendColorBurn:
		return colorBurn(s, d)
	case BlendHardLight:
		return hardLight(s, d)
	case BlendSoftLight:
		return softLight(s, d)
	case BlendDifference:
		return math.Abs(s - d)
	case BlendExclusion:
		return s + d - 2*s*d
	default:
		return s
	}
}

// hardLight multiplies below the midpoint of s and screens above it.
func hardLight(s, d float64) float64 {
	if s < 0.5 {
		return 2 * s * d
	}
	return 1 - 2*(1-s)*(1-d)
}

// colorDodge uses the clamped form: a fully white source always yields white.
func colorDodge(s, d float64) float64 {
	if s >= 1 {
		return 1
	}
	return math.Min(1, d/(1-s))
}

// colorBurn uses the clamped form: a fully black source always yields black.
func colorBurn(s, d float64) float64 {
	if s <= 0 {
		return 0
	}
	return 1 - math.Min(1, (1-d)/s)
}

func softLight(s, d float64) float64 {
	if s < 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dx float64
	if d <= 0.25 {
		dx = ((16*d-12)*d + 4) * d
	} else {
		dx = math.Sqrt(d)
	}
	return d + (2*s-1)*(dx-d)
}

// BlendPixel composites src over dst with the given mode. The opacity, in
// [0, 1], scales the source alpha. A zero opacity or a fully transparent
// source returns dst unchanged.
//
// Colors are straight alpha and the destination keeps a share
// dst.A*(1-sa) of its own color, so a translucent src over itself does not
// reduce to the mode's opaque result. BlendDifference of two identical
// colors is black only when they are opaque.
func BlendPixel(src, dst Color, mode BlendMode, opacity float64) Color {
	opacity = clamp01(opacity)
	if opacity == 0 || src.A == 0 {
		return dst
	}

	sa := float64(src.A) / 255 * opacity
	da := float64(dst.A) / 255
	invSa := 1 - sa

	outA := sa + da*invSa
	if outA == 0 {
		return Color{}
	}

	channel := func(sc, dc uint8) uint8 {
		s := float64(sc) / 255
		d := float64(dc) / 255
		b := clamp01(BlendChannel(mode, s, d))
		return toByte((b*sa + d*da*invSa) / outA)
	}

	return Color{
		R: channel(src.R, dst.R),
		G: channel(src.G, dst.G),
		B: channel(src.B, dst.B),
		A: toByte(outA),
	}
}

// BlendBuffers composites src over dst pixel by pixel, in place.
// Both buffers must have the same dimensions; otherwise ErrShapeMismatch is
// returned and dst is left untouched.
func BlendBuffers(dst, src *PixelBuffer, mode BlendMode, opacity float64) error {
	if dst.width != src.width || dst.height != src.height {
		return &ShapeError{
			Dst: dst.Bounds().Size(),
			Src: src.Bounds().Size(),
		}
	}
	if clamp01(opacity) == 0 {
		return nil
	}

	d, s := dst.data, src.data
	for i := 0; i+3 < len(d); i += 4 {
		sc := Color{R: s[i], G: s[i+1], B: s[i+2], A: s[i+3]}
		if sc.A == 0 {
			continue
		}
		dc := Color{R: d[i], G: d[i+1], B: d[i+2], A: d[i+3]}
		out := BlendPixel(sc, dc, mode, opacity)
		d[i], d[i+1], d[i+2], d[i+3] = out.R, out.G, out.B, out.A
	}
	return nil
}
