package stroke

import (
	"errors"

	"github.com/gogpu/paint"
)

// ErrNoActiveLayer is returned when a stroke starts without a layer to
// paint on. The controller stays idle until a layer is set.
var ErrNoActiveLayer = errors.New("stroke: no active layer")

// Event is one pointer or stylus sample delivered by the host.
type Event struct {
	X, Y float64

	// Pressure is the stylus pressure in (0, 1]. Devices without pressure
	// report 0, which is treated as full pressure.
	Pressure float64

	// Alt marks the modifier gesture that sets the clone and heal source.
	Alt bool
}

// Point returns the event position.
func (e Event) Point() paint.Point {
	return paint.Pt(e.X, e.Y)
}

func (e Event) pressure() float64 {
	if e.Pressure <= 0 {
		return 1
	}
	if e.Pressure > 1 {
		return 1
	}
	return e.Pressure
}
