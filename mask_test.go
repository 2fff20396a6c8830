package paint

import (
	"image"
	"image/color"
	"testing"
)

func TestNewMask(t *testing.T) {
	m := NewMask(10, 20)
	if m.Width() != 10 || m.Height() != 20 {
		t.Errorf("size = %dx%d, want 10x20", m.Width(), m.Height())
	}
	if len(m.Data()) != 200 {
		t.Errorf("len(Data()) = %d, want 200", len(m.Data()))
	}
	if m.Bounds() != image.Rect(0, 0, 10, 20) {
		t.Errorf("Bounds() = %v", m.Bounds())
	}
}

func TestMaskSetAt(t *testing.T) {
	m := NewMask(4, 4)
	m.Set(1, 2, 200)
	if got := m.At(1, 2); got != 200 {
		t.Errorf("At(1, 2) = %d, want 200", got)
	}

	for _, p := range []image.Point{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		m.Set(p.X, p.Y, 99)
		if got := m.At(p.X, p.Y); got != 0 {
			t.Errorf("At(%d, %d) = %d, want 0 out of bounds", p.X, p.Y, got)
		}
	}
}

func TestMaskClone(t *testing.T) {
	m := NewMask(2, 2)
	m.Set(0, 0, 10)
	c := m.Clone()
	m.Set(0, 0, 20)
	if c.At(0, 0) != 10 {
		t.Errorf("clone shares storage with the original")
	}
}

func TestMaskAsImage(t *testing.T) {
	m := NewMask(3, 2)
	img := m.AsImage()
	img.SetAlpha(2, 1, color.Alpha{A: 77})
	if got := m.At(2, 1); got != 77 {
		t.Errorf("AsImage does not share storage: At(2, 1) = %d, want 77", got)
	}
}

func TestMaskFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 8))
	src.SetNRGBA(6, 7, color.NRGBA{R: 255, A: 180})

	m := MaskFromImage(src)
	if m.Width() != 3 || m.Height() != 3 {
		t.Fatalf("size = %dx%d, want 3x3", m.Width(), m.Height())
	}
	if got := m.At(1, 2); got != 180 {
		t.Errorf("At(1, 2) = %d, want 180", got)
	}

	a := image.NewAlpha(image.Rect(1, 1, 3, 3))
	a.SetAlpha(2, 2, color.Alpha{A: 33})
	if got := MaskFromAlpha(a).At(1, 1); got != 33 {
		t.Errorf("MaskFromAlpha At(1, 1) = %d, want 33", got)
	}
}
