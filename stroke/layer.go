package stroke

import (
	"image"

	"github.com/gogpu/paint"
)

// Layer is the paint target owned by the host. Pixels returns the layer's
// persistent buffer, or nil if the layer has none. The controller reads it
// when a stroke begins and writes it exactly once when the stroke commits.
type Layer interface {
	Pixels() *paint.PixelBuffer
}

// BufferLayer is a Layer backed by a single in-memory buffer.
type BufferLayer struct {
	Name string
	Buf  *paint.PixelBuffer
}

// NewBufferLayer creates a transparent layer of the given size.
func NewBufferLayer(name string, width, height int) *BufferLayer {
	return &BufferLayer{Name: name, Buf: paint.NewPixelBuffer(width, height)}
}

// Pixels implements Layer.
func (l *BufferLayer) Pixels() *paint.PixelBuffer {
	return l.Buf
}

// CommitEvent describes a committed stroke. Before and the layer's
// current pixels form the snapshot pair an undo history needs; only
// pixels inside Dirty differ between them.
type CommitEvent struct {
	Layer  Layer
	Before *paint.PixelBuffer
	Dirty  image.Rectangle
	Path   []paint.Point
	Stamps int
}
