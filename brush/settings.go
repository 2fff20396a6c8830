package brush

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/paint"
)

// ErrInvalidSettings is wrapped by every validation failure of Settings or Shape.
var ErrInvalidSettings = errors.New("brush: invalid settings")

// PressureDynamics selects which brush parameters follow stylus pressure.
// A disabled channel ignores pressure entirely.
type PressureDynamics struct {
	Size    bool `toml:"size"`
	Opacity bool `toml:"opacity"`
	Flow    bool `toml:"flow"`
}

// Settings are the numeric brush parameters.
//
// Percent-valued fields use the 0-100 range. Spacing is a percentage of
// the brush size; 0 stamps at every sampled point without interpolation.
type Settings struct {
	Size       float64 `toml:"size"`       // diameter in pixels, > 0
	Hardness   float64 `toml:"hardness"`   // 0 soft .. 100 hard edge
	Opacity    float64 `toml:"opacity"`    // stroke opacity ceiling
	Flow       float64 `toml:"flow"`       // per-stamp build-up
	Spacing    float64 `toml:"spacing"`    // percent of size between stamps
	Smoothing  float64 `toml:"smoothing"`  // 0 off .. 100 heavy
	SizeJitter float64 `toml:"sizeJitter"` // random size variation, percent

	Pressure PressureDynamics `toml:"pressure"`

	// BuildUp composites every stamp directly over the stroke so far,
	// letting overlapping stamps exceed the opacity ceiling (airbrush).
	BuildUp bool `toml:"buildUp"`
}

// DefaultSettings returns a hard 10 px brush at full opacity and flow with
// 25% spacing and pressure controlling size.
func DefaultSettings() Settings {
	return Settings{
		Size:     10,
		Hardness: 100,
		Opacity:  100,
		Flow:     100,
		Spacing:  25,
		Pressure: PressureDynamics{Size: true},
	}
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	if !(s.Size > 0) {
		return fmt.Errorf("%w: size %v must be > 0", ErrInvalidSettings, s.Size)
	}
	percents := []struct {
		name string
		v    float64
	}{
		{"hardness", s.Hardness},
		{"opacity", s.Opacity},
		{"flow", s.Flow},
		{"smoothing", s.Smoothing},
		{"size jitter", s.SizeJitter},
	}
	for _, p := range percents {
		if !(p.v >= 0 && p.v <= 100) {
			return fmt.Errorf("%w: %s %v outside [0, 100]", ErrInvalidSettings, p.name, p.v)
		}
	}
	if !(s.Spacing >= 0) {
		return fmt.Errorf("%w: spacing %v must be >= 0", ErrInvalidSettings, s.Spacing)
	}
	return nil
}

// SpacingPixels returns the stamp spacing in pixels for the brush size.
func (s Settings) SpacingPixels() float64 {
	return s.Size * s.Spacing / 100
}

// Dynamics are the per-stamp values after pressure has been applied.
type Dynamics struct {
	Size    float64 // pixels, >= 1
	Opacity float64 // [0, 1]
	Flow    float64 // [0, 1]
}

// Apply scales size, opacity and flow by pressure for each channel whose
// pressure flag is set. A pressure <= 0 means the device reported none
// and counts as 1.
func (s Settings) Apply(pressure float64) Dynamics {
	if pressure <= 0 {
		pressure = 1
	}
	if pressure > 1 {
		pressure = 1
	}
	d := Dynamics{
		Size:    s.Size,
		Opacity: s.Opacity / 100,
		Flow:    s.Flow / 100,
	}
	if s.Pressure.Size {
		d.Size *= pressure
	}
	if s.Pressure.Opacity {
		d.Opacity *= pressure
	}
	if s.Pressure.Flow {
		d.Flow *= pressure
	}
	if d.Size < 1 {
		d.Size = 1
	}
	return d
}

// ShapeType is the brush tip geometry.
type ShapeType int

const (
	// Round is a circular or, with Roundness < 100, elliptical tip.
	Round ShapeType = iota
	// Square is a square tip with an optional soft border.
	Square
	// Custom resamples a user-supplied alpha mask.
	Custom
)

func (t ShapeType) String() string {
	switch t {
	case Round:
		return "round"
	case Square:
		return "square"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ShapeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ShapeType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "round":
		*t = Round
	case "square":
		*t = Square
	case "custom":
		*t = Custom
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidSettings, text)
	}
	return nil
}

// Shape describes the tip geometry.
//
// The zero value is not a usable shape because Roundness is 0; start from
// DefaultShape.
type Shape struct {
	Type      ShapeType `toml:"type"`
	Angle     float64   `toml:"angle"`     // rotation in degrees
	Roundness float64   `toml:"roundness"` // (0, 100], 100 is circular
	FlipX     bool      `toml:"flipX"`
	FlipY     bool      `toml:"flipY"`

	// Custom is the tip mask for Type == Custom. The mask is treated as
	// immutable once handed to the engine: the stamp cache keys on its
	// identity, not its contents.
	Custom *paint.Mask `toml:"-"`
}

// DefaultShape returns an upright circular tip.
func DefaultShape() Shape {
	return Shape{Type: Round, Roundness: 100}
}

// Validate reports whether the shape can be rasterized.
func (s Shape) Validate() error {
	switch s.Type {
	case Round, Square:
	case Custom:
		if s.Custom == nil || s.Custom.Width() == 0 || s.Custom.Height() == 0 {
			return fmt.Errorf("%w: custom shape without a mask", ErrInvalidSettings)
		}
	default:
		return fmt.Errorf("%w: unknown shape type %d", ErrInvalidSettings, int(s.Type))
	}
	if !(s.Roundness > 0 && s.Roundness <= 100) {
		return fmt.Errorf("%w: roundness %v outside (0, 100]", ErrInvalidSettings, s.Roundness)
	}
	if math.IsNaN(s.Angle) || math.IsInf(s.Angle, 0) {
		return fmt.Errorf("%w: angle %v is not finite", ErrInvalidSettings, s.Angle)
	}
	return nil
}
