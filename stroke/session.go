package stroke

import (
	"image"
	"math"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
)

// sizeStep quantizes pressure-scaled sizes so nearby samples share a
// cached stamp. Sizes round up to the next step so the stamp never comes
// out smaller than requested.
const sizeStep = 0.25

// PaintFunc computes the new color of one canvas pixel under a stamp.
// base is the pixel the stamp composites onto and alpha the effective
// stamp opacity there, both prepared by Session.Deposit. lx and ly are the
// stamp-local texel coordinates.
type PaintFunc func(x, y, lx, ly int, base paint.Color, alpha float64) paint.Color

// Session is the state of one stroke. Strategies receive it in their hooks
// and must write pixels only through it.
type Session struct {
	engine  *brush.Engine
	layer   Layer
	scratch *paint.PixelBuffer
	before  *paint.PixelBuffer

	// coverage holds the opacity each pixel has accumulated this stroke.
	coverage []float32

	dirty  image.Rectangle
	path   []paint.Point
	stamps int
}

func newSession(engine *brush.Engine, layer Layer, px *paint.PixelBuffer) *Session {
	return &Session{
		engine:   engine,
		layer:    layer,
		scratch:  px.Clone(),
		before:   px.Clone(),
		coverage: make([]float32, px.Width()*px.Height()),
	}
}

// Engine returns the brush engine driving the stroke.
func (s *Session) Engine() *brush.Engine {
	return s.engine
}

// Settings returns the current brush settings.
func (s *Session) Settings() brush.Settings {
	return s.engine.Settings()
}

// Scratch returns the buffer the stroke paints into. It starts as a copy
// of the layer and is copied back when the stroke commits.
func (s *Session) Scratch() *paint.PixelBuffer {
	return s.scratch
}

// Before returns the layer pixels as they were when the stroke began.
// It must not be modified.
func (s *Session) Before() *paint.PixelBuffer {
	return s.before
}

// Dynamics returns the pressure-scaled size, opacity and flow for one
// stamp, with size jitter applied.
func (s *Session) Dynamics(pressure float64) brush.Dynamics {
	settings := s.engine.Settings()
	d := settings.Apply(pressure)
	if settings.SizeJitter > 0 {
		d.Size = s.engine.ApplySizeJitter(d.Size, settings.SizeJitter)
	}
	d.Size = math.Max(1, math.Ceil(d.Size/sizeStep-1e-9)*sizeStep)
	return d
}

// Stamp returns the brush tip for size.
func (s *Session) Stamp(size float64) *paint.Mask {
	return s.engine.Stamp(size)
}

// MarkDirty extends the region that will be copied back to the layer.
func (s *Session) MarkDirty(r image.Rectangle) {
	s.dirty = s.dirty.Union(r)
}

// WeightFunc scales the stamp coverage at stamp-local texel (lx, ly)
// before it accumulates.
type WeightFunc func(lx, ly int) float64

// Deposit lays one stamp centered on center and calls fn for every
// covered pixel, storing the returned color in the scratch buffer.
//
// Normally the stroke has an opacity ceiling: each pixel accumulates
// coverage with brush.CalculateOpacityWithFlow, fn receives the pixel as
// it was before the stroke together with the accumulated opacity, and
// pixels whose coverage does not grow are left alone. In build-up mode fn
// instead receives the current scratch pixel and the stamp's own opacity,
// so overlapping stamps keep adding.
func (s *Session) Deposit(stamp *paint.Mask, center image.Point, d brush.Dynamics, fn PaintFunc) {
	s.deposit(stamp, center, d, nil, false, fn)
}

// DepositOver is Deposit for tools whose color depends on where the stamp
// lands. Under the opacity ceiling fn receives the current scratch pixel
// and only the opacity the stamp adds, (acc-prev)/(1-prev), so a pixel
// already painted this stroke is never recomposited from its original
// color. For a fixed color the result equals Deposit's. weight, if not
// nil, scales the stamp coverage before it accumulates.
func (s *Session) DepositOver(stamp *paint.Mask, center image.Point, d brush.Dynamics, weight WeightFunc, fn PaintFunc) {
	s.deposit(stamp, center, d, weight, true, fn)
}

func (s *Session) deposit(stamp *paint.Mask, center image.Point, d brush.Dynamics, weight WeightFunc, over bool, fn PaintFunc) {
	buildUp := s.engine.Settings().BuildUp
	w := s.scratch.Width()

	s.scratch.EachStampPixel(stamp, center.X, center.Y, func(x, y, lx, ly int, a float64) {
		if weight != nil {
			a *= weight(lx, ly)
		}
		if a <= 0 {
			return
		}
		if buildUp {
			s.scratch.SetPixel(x, y, fn(x, y, lx, ly, s.scratch.GetPixel(x, y), a*d.Opacity*d.Flow))
			return
		}

		i := y*w + x
		prev := float64(s.coverage[i])
		acc := brush.CalculateOpacityWithFlow(d.Opacity, d.Flow*a, prev)
		if acc <= prev {
			return
		}
		s.coverage[i] = float32(acc)
		if over {
			s.scratch.SetPixel(x, y, fn(x, y, lx, ly, s.scratch.GetPixel(x, y), (acc-prev)/(1-prev)))
			return
		}
		s.scratch.SetPixel(x, y, fn(x, y, lx, ly, s.before.GetPixel(x, y), acc))
	})
	s.MarkDirty(s.scratch.StampBounds(stamp, center.X, center.Y))
}

// commit copies the painted region back into the layer.
func (s *Session) commit() CommitEvent {
	if px := s.layer.Pixels(); px != nil && !s.dirty.Empty() {
		px.CopyFrom(s.scratch, s.dirty, s.dirty.Min)
	}
	return CommitEvent{
		Layer:  s.layer,
		Before: s.before,
		Dirty:  s.dirty,
		Path:   s.path,
		Stamps: s.stamps,
	}
}
