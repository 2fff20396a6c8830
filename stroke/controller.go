package stroke

import (
	"log/slog"
	"math"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/brush"
)

// minSpacing is the spacing in pixels below which the controller stops
// interpolating and stamps every sampled point.
const minSpacing = 1e-3

// Option configures a Controller during creation.
type Option func(*Controller)

// WithLayer sets the initial layer.
func WithLayer(l Layer) Option {
	return func(c *Controller) {
		c.layer = l
	}
}

// WithCommitHandler registers fn to be called after every committed
// stroke, for example to record an undo step.
func WithCommitHandler(fn func(CommitEvent)) Option {
	return func(c *Controller) {
		c.onCommit = fn
	}
}

// Controller turns pointer events into stamps on a layer.
//
// It is idle until PointerDown starts a stroke and painting until
// PointerUp, Deactivate, SetLayer or SetStrategy ends it. Ending a stroke
// always commits it to its layer exactly once; there is no discard.
//
// Controller is not safe for concurrent use. Events must be delivered
// serially.
type Controller struct {
	engine   *brush.Engine
	strategy Strategy
	layer    Layer
	onCommit func(CommitEvent)

	session      *Session
	last         paint.Point // last stamped point
	lastPressure float64
	smoothed     paint.Point // last smoothed sample
}

// New creates a controller painting with strategy through engine.
func New(engine *brush.Engine, strategy Strategy, opts ...Option) *Controller {
	c := &Controller{
		engine:   engine,
		strategy: strategy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the brush engine.
func (c *Controller) Engine() *brush.Engine {
	return c.engine
}

// Strategy returns the active strategy.
func (c *Controller) Strategy() Strategy {
	return c.strategy
}

// Layer returns the active layer, or nil.
func (c *Controller) Layer() Layer {
	return c.layer
}

// Painting reports whether a stroke is in progress.
func (c *Controller) Painting() bool {
	return c.session != nil
}

// SetLayer switches the target layer. A stroke in progress is committed
// to the previous layer first. A nil layer makes the controller inert.
func (c *Controller) SetLayer(l Layer) {
	c.finish()
	c.layer = l
}

// SetStrategy switches tools. A stroke in progress is committed first.
func (c *Controller) SetStrategy(s Strategy) {
	c.finish()
	c.strategy = s
}

// Deactivate ends any stroke in progress, committing it.
func (c *Controller) Deactivate() {
	c.finish()
}

// PointerDown starts a stroke at the event position and lays the first
// stamp. With Alt held and a strategy that has a source anchor, it sets
// the anchor instead. It fails with ErrNoActiveLayer when there is no
// layer or the layer has no pixels.
func (c *Controller) PointerDown(ev Event) error {
	c.finish()

	p := ev.Point()
	if ev.Alt {
		if ss, ok := c.strategy.(SourceSetter); ok {
			ss.SetSource(p)
			return nil
		}
	}

	var px *paint.PixelBuffer
	if c.layer != nil {
		px = c.layer.Pixels()
	}
	if px == nil {
		paint.Logger().Warn("stroke: pointer down without an active layer")
		return ErrNoActiveLayer
	}

	c.engine.ResetSmoothing()
	c.session = newSession(c.engine, c.layer, px)
	paint.Logger().Debug("stroke: begin",
		slog.Float64("x", p.X), slog.Float64("y", p.Y),
		slog.Int("width", px.Width()), slog.Int("height", px.Height()))

	c.strategy.BeginStroke(c.session, p)

	if c.engine.Settings().Smoothing > 0 {
		// Seed the history so the average starts at the stroke origin.
		p = c.engine.SmoothPoint(p, p, c.engine.Settings().Smoothing/100)
	}
	c.smoothed = p
	c.stamp(p, ev.pressure())
	return nil
}

// PointerMove extends the stroke to the event position, stamping at
// regular spacing along the way. Moves while idle are ignored.
func (c *Controller) PointerMove(ev Event) {
	if c.session == nil {
		return
	}
	settings := c.engine.Settings()
	p := ev.Point()
	pressure := ev.pressure()

	if settings.Smoothing > 0 {
		p = c.engine.SmoothPoint(p, c.smoothed, settings.Smoothing/100)
	}
	c.smoothed = p

	spacing := settings.SpacingPixels()
	if spacing < minSpacing {
		c.stamp(p, pressure)
		return
	}

	dist := c.last.Distance(p)
	if dist < spacing {
		return
	}

	from, fromPressure := c.last, c.lastPressure
	n := int(math.Floor(dist / spacing))
	for i := 1; i <= n; i++ {
		t := float64(i) * spacing / dist
		c.stamp(from.Lerp(p, t), fromPressure+(pressure-fromPressure)*t)
	}
}

// PointerUp ends the stroke and commits it. The event position is not
// stamped; the last move already covered the path up to it.
func (c *Controller) PointerUp(Event) {
	c.finish()
}

func (c *Controller) stamp(p paint.Point, pressure float64) {
	c.strategy.ApplyPaint(c.session, p, pressure)
	c.session.path = append(c.session.path, p)
	c.session.stamps++
	c.last = p
	c.lastPressure = pressure
}

// finish commits the stroke in progress, if any, and returns to idle.
func (c *Controller) finish() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil

	ev := s.commit()
	paint.Logger().Debug("stroke: commit",
		slog.Int("stamps", ev.Stamps),
		slog.String("dirty", ev.Dirty.String()))

	if c.onCommit != nil {
		c.onCommit(ev)
	}
}
