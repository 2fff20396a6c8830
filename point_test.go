package paint

import (
	"image"
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p, q := Pt(1, 2), Pt(4, 6)
	if got := p.Add(q); got != Pt(5, 8) {
		t.Errorf("Add = %v", got)
	}
	if got := q.Sub(p); got != Pt(3, 4) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Mul(3); got != Pt(3, 6) {
		t.Errorf("Mul = %v", got)
	}
	if got := p.Distance(q); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := p.Lerp(q, 0.5); math.Abs(got.X-2.5) > 1e-12 || math.Abs(got.Y-4) > 1e-12 {
		t.Errorf("Lerp = %v, want (2.5, 4)", got)
	}
}

func TestPointPixel(t *testing.T) {
	tests := []struct {
		p    Point
		want image.Point
	}{
		{Pt(0, 0), image.Pt(0, 0)},
		{Pt(3.99, 7.01), image.Pt(3, 7)},
		{Pt(-0.5, -1), image.Pt(-1, -1)},
	}
	for _, tt := range tests {
		if got := tt.p.Pixel(); got != tt.want {
			t.Errorf("%v.Pixel() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
