package stroke

import "github.com/gogpu/paint"

// Strategy is the per-tool part of a stroke.
//
// BeginStroke runs once after the session is set up and before the first
// stamp; start is the first stroke point. ApplyPaint runs for every
// stamp position along the path, in order.
type Strategy interface {
	BeginStroke(s *Session, start paint.Point)
	ApplyPaint(s *Session, p paint.Point, pressure float64)
}

// SourceSetter is implemented by strategies that sample from a source
// anchor. The controller routes Alt pointer-downs to SetSource instead of
// starting a stroke.
type SourceSetter interface {
	SetSource(p paint.Point)
}

// Brush paints a solid color.
type Brush struct {
	Color paint.Color
	Mode  paint.BlendMode
}

// NewBrush creates a brush strategy painting c with mode.
func NewBrush(c paint.Color, mode paint.BlendMode) *Brush {
	return &Brush{Color: c, Mode: mode}
}

// BeginStroke implements Strategy.
func (b *Brush) BeginStroke(*Session, paint.Point) {}

// ApplyPaint implements Strategy.
func (b *Brush) ApplyPaint(s *Session, p paint.Point, pressure float64) {
	d := s.Dynamics(pressure)
	stamp := s.Stamp(d.Size)
	c := p.Pixel()

	if s.Settings().BuildUp {
		s.Scratch().ApplyBrushStamp(stamp, c.X, c.Y, b.Color, d.Opacity*d.Flow, b.Mode)
		s.MarkDirty(s.Scratch().StampBounds(stamp, c.X, c.Y))
		return
	}
	s.Deposit(stamp, c, d, func(_, _, _, _ int, base paint.Color, alpha float64) paint.Color {
		return paint.BlendPixel(b.Color, base, b.Mode, alpha)
	})
}

// Eraser lowers the alpha of the pixels under the stamp. Color channels
// are left as they are.
type Eraser struct{}

// NewEraser creates an eraser strategy.
func NewEraser() *Eraser {
	return &Eraser{}
}

// BeginStroke implements Strategy. The alpha the eraser works from is the
// session's snapshot of the layer.
func (e *Eraser) BeginStroke(*Session, paint.Point) {}

// ApplyPaint implements Strategy.
func (e *Eraser) ApplyPaint(s *Session, p paint.Point, pressure float64) {
	d := s.Dynamics(pressure)
	s.Deposit(s.Stamp(d.Size), p.Pixel(), d, func(_, _, _, _ int, base paint.Color, alpha float64) paint.Color {
		base.A = paint.ClampByte(float64(base.A) * (1 - alpha))
		return base
	})
}
