package stroke

import (
	"image"
	"math"

	"github.com/gogpu/paint"
)

// anchor tracks the source point shared by the clone and healing tools.
type anchor struct {
	point  paint.Point
	set    bool
	shift  image.Point // source minus destination in whole pixels, aligned mode only
	locked bool        // shift captured since the anchor was set
}

func (a *anchor) setSource(p paint.Point) {
	a.point = p
	a.set = true
	a.locked = false
}

// begin captures the aligned offset on the first stroke after the anchor
// was placed. Later strokes reuse it until a new anchor is set. The offset
// is rounded once so every stamp of the stroke samples with the same
// pixel translation.
func (a *anchor) begin(start paint.Point, aligned bool) {
	if !a.set || !aligned || a.locked {
		return
	}
	d := a.point.Sub(start)
	a.shift = image.Pt(int(math.Round(d.X)), int(math.Round(d.Y)))
	a.locked = true
}

// shiftFor returns the translation from the stamp centered on p to the
// source pixels it samples.
func (a *anchor) shiftFor(p paint.Point, aligned bool) image.Point {
	if aligned {
		return a.shift
	}
	return a.point.Pixel().Sub(p.Pixel())
}

// Clone copies pixels from a source anchor. In aligned mode the offset
// between source and destination is fixed when the first stroke after
// SetSource begins; otherwise every stamp samples around the anchor.
// Source pixels are read from the layer as it was when the stroke began,
// and the aligned offset is a whole number of pixels.
type Clone struct {
	Aligned bool
	Mode    paint.BlendMode

	anchor anchor
}

// NewClone creates a clone strategy.
func NewClone(aligned bool, mode paint.BlendMode) *Clone {
	return &Clone{Aligned: aligned, Mode: mode}
}

// SetSource implements SourceSetter.
func (c *Clone) SetSource(p paint.Point) {
	c.anchor.setSource(p)
}

// Source returns the anchor and whether one has been set.
func (c *Clone) Source() (paint.Point, bool) {
	return c.anchor.point, c.anchor.set
}

// BeginStroke implements Strategy.
func (c *Clone) BeginStroke(_ *Session, start paint.Point) {
	c.anchor.begin(start, c.Aligned)
}

// ApplyPaint implements Strategy. Without a source anchor it paints nothing.
func (c *Clone) ApplyPaint(s *Session, p paint.Point, pressure float64) {
	if !c.anchor.set {
		return
	}
	d := s.Dynamics(pressure)
	shift := c.anchor.shiftFor(p, c.Aligned)
	src := s.Before()

	s.DepositOver(s.Stamp(d.Size), p.Pixel(), d, nil, func(x, y, _, _ int, base paint.Color, alpha float64) paint.Color {
		return paint.BlendPixel(src.GetPixel(x+shift.X, y+shift.Y), base, c.Mode, alpha)
	})
}

// Diffusion bounds for the healing brush.
const (
	MinDiffusion     = 1
	MaxDiffusion     = 7
	DefaultDiffusion = 5
)

// Heal transplants texture from a source anchor while keeping the
// destination's lighting: every output channel is the source channel
// shifted by the difference between destination and source luminance.
// Coverage fades toward the stamp edge as 1 - r^(Diffusion/3), r being
// the distance from the stamp center normalized to the radius, so higher
// diffusion keeps more of the stamp at full strength.
type Heal struct {
	Aligned   bool
	Diffusion int

	anchor anchor
}

// NewHeal creates a healing strategy.
func NewHeal(diffusion int, aligned bool) *Heal {
	return &Heal{Aligned: aligned, Diffusion: diffusion}
}

// SetSource implements SourceSetter.
func (h *Heal) SetSource(p paint.Point) {
	h.anchor.setSource(p)
}

// BeginStroke implements Strategy.
func (h *Heal) BeginStroke(_ *Session, start paint.Point) {
	h.anchor.begin(start, h.Aligned)
}

func (h *Heal) diffusion() float64 {
	d := h.Diffusion
	if d == 0 {
		d = DefaultDiffusion
	}
	return float64(max(MinDiffusion, min(MaxDiffusion, d)))
}

// ApplyPaint implements Strategy. Without a source anchor it paints nothing.
func (h *Heal) ApplyPaint(s *Session, p paint.Point, pressure float64) {
	if !h.anchor.set {
		return
	}
	d := s.Dynamics(pressure)
	stamp := s.Stamp(d.Size)
	shift := h.anchor.shiftFor(p, h.Aligned)
	before := s.Before()

	radius := float64(stamp.Width()) / 2
	exp := h.diffusion() / 3
	fade := func(lx, ly int) float64 {
		r := math.Hypot(float64(lx)+0.5-radius, float64(ly)+0.5-radius) / radius
		return 1 - math.Pow(math.Min(r, 1), exp)
	}

	s.DepositOver(stamp, p.Pixel(), d, fade, func(x, y, _, _ int, base paint.Color, alpha float64) paint.Color {
		src := before.GetPixel(x+shift.X, y+shift.Y)
		if src.A == 0 {
			return base
		}
		return paint.BlendPixel(HealPixel(src, before.GetPixel(x, y)), base, paint.BlendNormal, alpha)
	})
}

// HealPixel shifts src by the luminance difference between dst and src,
// clamping each channel to [0, 255]. The result keeps src's alpha.
func HealPixel(src, dst paint.Color) paint.Color {
	delta := dst.Luminance() - src.Luminance()
	return paint.Color{
		R: paint.ClampByte(float64(src.R) + delta),
		G: paint.ClampByte(float64(src.G) + delta),
		B: paint.ClampByte(float64(src.B) + delta),
		A: src.A,
	}
}
