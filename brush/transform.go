package brush

import (
	"math"

	"golang.org/x/image/math/f64"
)

// affine is a 2D affine transform in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping x' = a*x + b*y + c and y' = d*x + e*y + f.
type affine struct {
	a, b, c float64
	d, e, f float64
}

func identity() affine {
	return affine{a: 1, e: 1}
}

func translate(x, y float64) affine {
	return affine{a: 1, c: x, e: 1, f: y}
}

func scale(x, y float64) affine {
	return affine{a: x, e: y}
}

// rotate creates a rotation by angle radians.
func rotate(angle float64) affine {
	sin, cos := math.Sincos(angle)
	return affine{a: cos, b: -sin, d: sin, e: cos}
}

// then returns m followed by n, i.e. the product n * m.
func (m affine) then(n affine) affine {
	return affine{
		a: n.a*m.a + n.b*m.d,
		b: n.a*m.b + n.b*m.e,
		c: n.a*m.c + n.b*m.f + n.c,
		d: n.d*m.a + n.e*m.d,
		e: n.d*m.b + n.e*m.e,
		f: n.d*m.c + n.e*m.f + n.f,
	}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.b*y + m.c, m.d*x + m.e*y + m.f
}

// invert returns the inverse transform. Degenerate transforms invert to
// the identity; tip transforms never are degenerate because roundness > 0.
func (m affine) invert() affine {
	det := m.a*m.e - m.b*m.d
	if det == 0 {
		return identity()
	}
	inv := 1 / det
	return affine{
		a: m.e * inv,
		b: -m.b * inv,
		c: (m.b*m.f - m.e*m.c) * inv,
		d: -m.d * inv,
		e: m.a * inv,
		f: (m.d*m.c - m.a*m.f) * inv,
	}
}

func (m affine) aff3() f64.Aff3 {
	return f64.Aff3{m.a, m.b, m.c, m.d, m.e, m.f}
}

// tipTransform maps tip space onto the stamp raster: translate to the
// center, rotate, squash by roundness, flip, then translate back.
// Operations are listed in the order a drawing context would apply them,
// so the last one listed touches the tip geometry first.
func tipTransform(center float64, shape Shape) affine {
	fx, fy := 1.0, 1.0
	if shape.FlipX {
		fx = -1
	}
	if shape.FlipY {
		fy = -1
	}
	roundness := shape.Roundness / 100
	if roundness <= 0 {
		roundness = 1
	}

	return translate(-center, -center).
		then(scale(fx, fy)).
		then(scale(1, roundness)).
		then(rotate(shape.Angle * math.Pi / 180)).
		then(translate(center, center))
}
