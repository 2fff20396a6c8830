package paint

import (
	"errors"
	"fmt"
	"image"
)

// ErrShapeMismatch is returned by bulk operations when two buffers that
// must share dimensions do not.
var ErrShapeMismatch = errors.New("paint: buffer shape mismatch")

// ShapeError reports the dimensions involved in a failed bulk operation.
// It matches ErrShapeMismatch with errors.Is.
type ShapeError struct {
	Dst, Src image.Point
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("paint: buffer shape mismatch: dst %dx%d, src %dx%d",
		e.Dst.X, e.Dst.Y, e.Src.X, e.Src.Y)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}
