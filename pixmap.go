package paint

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// PixelBuffer is a rectangular straight-alpha RGBA8 raster.
//
// The dimensions are fixed at construction and len(Data()) is always
// Width()*Height()*4. Pixel access outside the buffer is never an error:
// reads return Transparent and writes are ignored.
//
// A PixelBuffer is not safe for concurrent use. During a stroke the
// scratch buffer has a single writer, the stroke controller.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel
}

// NewPixelBuffer creates a transparent buffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// FromImage creates a buffer holding a straight-alpha copy of img.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	p := NewPixelBuffer(b.Dx(), b.Dy())
	dst := &image.NRGBA{Pix: p.data, Stride: p.width * 4, Rect: p.Bounds()}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return p
}

// FromImageSize creates a width x height buffer from img, resampling with
// a Catmull-Rom filter when the sizes differ.
func FromImageSize(img image.Image, width, height int) *PixelBuffer {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return FromImage(img)
	}
	p := NewPixelBuffer(width, height)
	dst := &image.NRGBA{Pix: p.data, Stride: p.width * 4, Rect: p.Bounds()}
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, b, xdraw.Src, nil)
	return p
}

// Width returns the width of the buffer.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height of the buffer.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA, straight alpha).
func (p *PixelBuffer) Data() []uint8 {
	return p.data
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	return p.GetPixel(x, y).NRGBA()
}

func (p *PixelBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// GetPixel returns the pixel at (x, y), or Transparent outside the buffer.
func (p *PixelBuffer) GetPixel(x, y int) Color {
	if !p.inBounds(x, y) {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// SetPixel stores c at (x, y). Coordinates outside the buffer are ignored.
func (p *PixelBuffer) SetPixel(x, y int, c Color) {
	if !p.inBounds(x, y) {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// Fill sets every pixel to c.
func (p *PixelBuffer) Fill(c Color) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clear makes every pixel transparent black.
func (p *PixelBuffer) Clear() {
	clear(p.data)
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	c := NewPixelBuffer(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// CopyFrom copies srcRect of src into p with its top-left corner placed at
// dstOrigin. The copied region is clipped to both buffers, so any part of
// the rectangle falling outside either one is skipped.
func (p *PixelBuffer) CopyFrom(src *PixelBuffer, srcRect image.Rectangle, dstOrigin image.Point) {
	srcRect = srcRect.Intersect(src.Bounds())
	if srcRect.Empty() {
		return
	}

	// Clip the destination rectangle, then shift the source to match.
	dstRect := srcRect.Sub(srcRect.Min).Add(dstOrigin).Intersect(p.Bounds())
	if dstRect.Empty() {
		return
	}
	srcMin := srcRect.Min.Add(dstRect.Min.Sub(dstOrigin))

	n := dstRect.Dx() * 4
	for y := 0; y < dstRect.Dy(); y++ {
		si := ((srcMin.Y+y)*src.width + srcMin.X) * 4
		di := ((dstRect.Min.Y+y)*p.width + dstRect.Min.X) * 4
		copy(p.data[di:di+n], src.data[si:si+n])
	}
}

// ToImage returns a copy of the buffer as an *image.NRGBA.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(p.Bounds())
	copy(img.Pix, p.data)
	return img
}

// StampOrigin returns the canvas position of the stamp's top-left texel
// when the stamp is centered on (cx, cy).
func StampOrigin(stamp *Mask, cx, cy int) image.Point {
	return image.Pt(cx-stamp.width/2, cy-stamp.height/2)
}

// StampBounds returns the canvas rectangle a stamp centered on (cx, cy)
// covers, clipped to the buffer.
func (p *PixelBuffer) StampBounds(stamp *Mask, cx, cy int) image.Rectangle {
	o := StampOrigin(stamp, cx, cy)
	return stamp.Bounds().Add(o).Intersect(p.Bounds())
}

// EachStampPixel calls fn for every stamp texel with non-zero coverage that
// lands inside the buffer when the stamp is centered on (cx, cy). x and y are
// canvas coordinates, lx and ly stamp-local ones, and alpha the texel
// coverage in [0, 1].
func (p *PixelBuffer) EachStampPixel(stamp *Mask, cx, cy int, fn func(x, y, lx, ly int, alpha float64)) {
	o := StampOrigin(stamp, cx, cy)
	r := p.StampBounds(stamp, cx, cy)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		ly := y - o.Y
		row := stamp.data[ly*stamp.width : (ly+1)*stamp.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			lx := x - o.X
			a := row[lx]
			if a == 0 {
				continue
			}
			fn(x, y, lx, ly, float64(a)/255)
		}
	}
}

// ApplyBrushStamp composites c through the stamp mask centered on (cx, cy).
// Each texel contributes with alpha stampAlpha*opacity using mode. Texels
// landing outside the buffer are skipped.
func (p *PixelBuffer) ApplyBrushStamp(stamp *Mask, cx, cy int, c Color, opacity float64, mode BlendMode) {
	opacity = clamp01(opacity)
	if opacity == 0 || c.A == 0 {
		return
	}
	p.EachStampPixel(stamp, cx, cy, func(x, y, _, _ int, alpha float64) {
		i := (y*p.width + x) * 4
		dst := Color{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
		out := BlendPixel(c, dst, mode, alpha*opacity)
		p.data[i], p.data[i+1], p.data[i+2], p.data[i+3] = out.R, out.G, out.B, out.A
	})
}
