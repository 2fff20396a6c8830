package brush

import (
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/internal/cache"
)

// Option configures an Engine during creation.
type Option func(*engineOptions)

type engineOptions struct {
	settings  Settings
	shape     Shape
	rng       *rand.Rand
	cacheSize int
}

func defaultOptions() engineOptions {
	return engineOptions{
		settings:  DefaultSettings(),
		shape:     DefaultShape(),
		cacheSize: 1,
	}
}

// WithSettings sets the initial brush settings. Invalid settings are
// replaced by the defaults.
func WithSettings(s Settings) Option {
	return func(o *engineOptions) {
		o.settings = s
	}
}

// WithShape sets the initial tip shape. Invalid shapes are replaced by
// the default round tip.
func WithShape(s Shape) Option {
	return func(o *engineOptions) {
		o.shape = s
	}
}

// WithRand sets the random source used for size jitter.
// Useful for reproducible strokes in tests.
func WithRand(r *rand.Rand) Option {
	return func(o *engineOptions) {
		o.rng = r
	}
}

// WithStampCache sets how many stamps are kept. The default of 1 keeps a
// single slot that is replaced on every key change; pressure-driven
// strokes whose size oscillates benefit from a few more.
func WithStampCache(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// stampKey identifies a generated tip. Every input of GenerateTip is part
// of the key, so a stamp is reused only when it would be regenerated
// identically.
type stampKey struct {
	size     float64
	hardness float64
	shape    shapeKey
}

type shapeKey struct {
	typ       ShapeType
	angle     float64
	roundness float64
	flipX     bool
	flipY     bool
	custom    *paint.Mask
}

func keyOf(size, hardness float64, s Shape) stampKey {
	k := stampKey{
		size:     size,
		hardness: hardness,
		shape: shapeKey{
			typ:       s.Type,
			angle:     s.Angle,
			roundness: s.Roundness,
			flipX:     s.FlipX,
			flipY:     s.FlipY,
		},
	}
	if s.Type == Custom {
		k.shape.custom = s.Custom
	}
	return k
}

// Engine generates and caches brush stamps and holds the per-stroke brush
// state: smoothing history and the random source for jitter.
//
// Engine is not safe for concurrent use.
type Engine struct {
	settings Settings
	shape    Shape
	stamps   *cache.Cache[stampKey, *paint.Mask]
	rng      *rand.Rand
	smoother smoother
}

// NewEngine creates a brush engine.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.settings.Validate() != nil {
		o.settings = DefaultSettings()
	}
	if o.shape.Validate() != nil {
		o.shape = DefaultShape()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		settings: o.settings,
		shape:    o.shape,
		stamps:   cache.New[stampKey, *paint.Mask](o.cacheSize),
		rng:      o.rng,
	}
}

// Settings returns the current brush settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// UpdateSettings replaces the brush settings. Invalid settings are
// rejected and the previous ones kept.
func (e *Engine) UpdateSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.settings = s
	return nil
}

// Shape returns the current tip shape.
func (e *Engine) Shape() Shape {
	return e.shape
}

// UpdateShape replaces the tip shape. Invalid shapes are rejected and the
// previous one kept.
func (e *Engine) UpdateShape(s Shape) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.shape = s
	return nil
}

// Stamp returns the tip for the given size using the current hardness and
// shape. The result is cached under (size, hardness, shape); callers must
// not modify it.
func (e *Engine) Stamp(size float64) *paint.Mask {
	key := keyOf(size, e.settings.Hardness, e.shape)
	return e.stamps.GetOrCreate(key, func() *paint.Mask {
		paint.Logger().Debug("brush: generating stamp",
			slog.Float64("size", size),
			slog.Float64("hardness", e.settings.Hardness),
			slog.String("shape", e.shape.Type.String()))
		return GenerateTip(size, e.settings.Hardness, e.shape)
	})
}

// CacheStats reports stamp cache usage.
func (e *Engine) CacheStats() cache.Stats {
	return e.stamps.Stats()
}

// SmoothPoint smooths a pointer sample against the recent path. See
// smoother for the algorithm. The history survives across calls until
// ResetSmoothing, so every stroke must start with a reset.
func (e *Engine) SmoothPoint(current, previous paint.Point, factor float64) paint.Point {
	return e.smoother.smooth(current, previous, factor)
}

// ResetSmoothing clears the smoothing history.
func (e *Engine) ResetSmoothing() {
	e.smoother.reset()
}

// ApplySizeJitter varies baseSize randomly by up to half of jitterPercent
// percent in either direction. The result is never below 1 px.
func (e *Engine) ApplySizeJitter(baseSize, jitterPercent float64) float64 {
	if jitterPercent <= 0 {
		return atLeastOnePixel(baseSize)
	}
	amount := baseSize * jitterPercent / 100
	return atLeastOnePixel(baseSize + (e.rng.Float64()-0.5)*amount)
}

func atLeastOnePixel(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

// CalculateOpacityWithFlow returns the opacity after one more stamp with
// the given flow lands on a pixel that has already accumulated
// accumulatedAlpha in this stroke. The result never exceeds base.
func CalculateOpacityWithFlow(base, flow, accumulatedAlpha float64) float64 {
	return min(accumulatedAlpha+base*flow, base)
}
