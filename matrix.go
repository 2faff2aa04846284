package canvas

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix. The angle is in degrees, positive
// angles turn clockwise on a y-down surface.
func Rotate(degrees float64) Matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	// Snap exact quarter turns so rectangles stay rectangles.
	if math.Abs(sin) < 1e-15 {
		sin = 0
	}
	if math.Abs(cos) < 1e-15 {
		cos = 0
	}
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Skew creates a skew matrix: x' = x + kx*y, y' = ky*x + y.
func Skew(kx, ky float64) Matrix {
	return Matrix{
		A: 1, B: kx, C: 0,
		D: ky, E: 1, F: 0,
	}
}

// Multiply returns m * other: other is applied first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// PreConcat returns m * other, applying other before m.
func (m Matrix) PreConcat(other Matrix) Matrix { return m.Multiply(other) }

// PostConcat returns other * m, applying other after m.
func (m Matrix) PostConcat(other Matrix) Matrix { return other.Multiply(m) }

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// MapPoints transforms interleaved x, y pairs in place.
func (m Matrix) MapPoints(pts []float64) {
	for i := 0; i+1 < len(pts); i += 2 {
		x, y := pts[i], pts[i+1]
		pts[i] = m.A*x + m.B*y + m.C
		pts[i+1] = m.D*x + m.E*y + m.F
	}
}

// MapRect returns the bounds of r after transformation.
func (m Matrix) MapRect(r Rect) Rect {
	corners := [4]Point{
		m.TransformPoint(Point{r.Left, r.Top}),
		m.TransformPoint(Point{r.Right, r.Top}),
		m.TransformPoint(Point{r.Right, r.Bottom}),
		m.TransformPoint(Point{r.Left, r.Bottom}),
	}
	out := Rect{corners[0].X, corners[0].Y, corners[0].X, corners[0].Y}
	for _, c := range corners[1:] {
		out.Left = math.Min(out.Left, c.X)
		out.Top = math.Min(out.Top, c.Y)
		out.Right = math.Max(out.Right, c.X)
		out.Bottom = math.Max(out.Bottom, c.Y)
	}
	return out
}

// Invert returns the inverse matrix. ok is false for singular matrices.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// RectStaysRect reports whether axis-aligned rectangles map to
// axis-aligned rectangles: scales, translations and quarter turns.
func (m Matrix) RectStaysRect() bool {
	if m.B == 0 && m.D == 0 {
		return m.A != 0 && m.E != 0
	}
	return m.A == 0 && m.E == 0 && m.B != 0 && m.D != 0
}

// ScaleFactor returns the largest stretch the matrix applies to a vector.
func (m Matrix) ScaleFactor() float64 {
	sx := math.Hypot(m.A, m.D)
	sy := math.Hypot(m.B, m.E)
	return math.Max(sx, sy)
}

// Aff3 converts the matrix for golang.org/x/image/draw transforms.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
