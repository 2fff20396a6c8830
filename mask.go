package paint

import (
	"image"
	"image/color"
)

// Mask is an alpha raster. Each value in [0, 255] encodes coverage, from
// fully transparent to fully opaque. Brush tips are square masks.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a zeroed mask with the given dimensions.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// MaskFromImage creates a mask from an image's alpha channel.
func MaskFromImage(img image.Image) *Mask {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	m := NewMask(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := color.AlphaModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Alpha)
			m.data[y*w+x] = a.A
		}
	}
	return m
}

// MaskFromAlpha wraps a copy of an *image.Alpha as a mask.
func MaskFromAlpha(img *image.Alpha) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.height; y++ {
		i := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(m.data[y*m.width:(y+1)*m.width], img.Pix[i:i+m.width])
	}
	return m
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Bounds returns the mask extent anchored at the origin.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Data returns the underlying row-major alpha values.
func (m *Mask) Data() []uint8 { return m.data }

// At returns the alpha at (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set stores the alpha at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = v
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.width, m.height)
	copy(c.data, m.data)
	return c
}

// AsImage returns an *image.Alpha view sharing the mask's storage.
func (m *Mask) AsImage() *image.Alpha {
	return &image.Alpha{
		Pix:    m.data,
		Stride: m.width,
		Rect:   m.Bounds(),
	}
}
