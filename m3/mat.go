// Package m3 implements 3x3 homogeneous matrices for 2D transformations.
//
// Matrices are stored column-major in a [9]float32 so they can be uploaded
// to a shader uniform as-is. All functions take and return values: no
// function mutates its arguments.
//
// Angles are in radians. [RotationDeg] is the only degree-based entry point.
// [Rotation] turns counter-clockwise in y-up coordinates, mapping (1,0) to
// (cos, sin). Under [Projection], which flips y, that is clockwise on screen.
// Code written for the transposed convention, where (1,0) maps to
// (cos, -sin), must negate its angles.
package m3

import (
	"errors"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

// ErrSingular is returned by [Inverse] when the determinant is exactly zero.
var ErrSingular = errors.New("m3: singular matrix has no inverse")

// Mat is a 3x3 matrix in column-major order: element at row r, column c
// is stored at index c*3+r.
type Mat [9]float32

// At returns the element at row i and column j.
func (m Mat) At(i, j int) float32 { return m[j*3+i] }

// Array returns the matrix elements in column-major order.
func (m Mat) Array() [9]float32 { return m }

// Identity returns the multiplicative identity.
func Identity() Mat {
	return Mat{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Projection returns a matrix that maps pixel coordinates with the origin at
// the top left corner and y growing downwards to clip space.
func Projection(width, height float32) Mat {
	return Mat{
		2 / width, 0, 0,
		0, -2 / height, 0,
		-1, 1, 1,
	}
}

// Translation returns a matrix translating points by (tx, ty).
func Translation(tx, ty float32) Mat {
	return Mat{
		1, 0, 0,
		0, 1, 0,
		tx, ty, 1,
	}
}

// Rotation returns a matrix rotating points by angle radians, counter-clockwise
// in a y-up coordinate system. Under [Projection], which flips y, the rotation
// appears clockwise on screen.
func Rotation(angle float32) Mat {
	s, c := math32.Sincos(angle)
	return Mat{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}

// RotationDeg is [Rotation] taking the angle in degrees.
func RotationDeg(degrees float32) Mat {
	return Rotation(DegToRad(degrees))
}

// Scaling returns a matrix scaling points by (sx, sy).
func Scaling(sx, sy float32) Mat {
	return Mat{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// Mul returns a∘b: transforming a point by the result is the same as
// transforming by b first and by a second.
func Mul(a, b Mat) Mat {
	var m Mat
	for c := 0; c < 3; c++ {
		b0, b1, b2 := b[c*3], b[c*3+1], b[c*3+2]
		m[c*3+0] = a[0]*b0 + a[3]*b1 + a[6]*b2
		m[c*3+1] = a[1]*b0 + a[4]*b1 + a[7]*b2
		m[c*3+2] = a[2]*b0 + a[5]*b1 + a[8]*b2
	}
	return m
}

// MulMany left-folds [Mul] over rest starting from base. A pipeline that
// scales, then rotates, then translates is written
//
//	MulMany(Translation(tx, ty), Rotation(a), Scaling(sx, sy))
func MulMany(base Mat, rest ...Mat) Mat {
	for _, m := range rest {
		base = Mul(base, m)
	}
	return base
}

// TransformPoint applies m to p with an implicit w of 1. There is no
// perspective division: the result is an affine 2D transform of p.
func TransformPoint(m Mat, p ms2.Vec) ms2.Vec {
	return ms2.Vec{
		X: m[0]*p.X + m[3]*p.Y + m[6],
		Y: m[1]*p.X + m[4]*p.Y + m[7],
	}
}

// TransformPointH is [TransformPoint] over homogeneous coordinates.
// The third component of p is ignored and the returned one is always 1.
func TransformPointH(m Mat, p [3]float32) [3]float32 {
	v := TransformPoint(m, ms2.Vec{X: p[0], Y: p[1]})
	return [3]float32{v.X, v.Y, 1}
}

// Transpose returns the transpose of m.
func Transpose(m Mat) Mat {
	return Mat{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of m.
func Determinant(m Mat) float32 {
	return float32(det64(m))
}

func det64(m Mat) float64 {
	a, b, c := float64(m[0]), float64(m[3]), float64(m[6])
	d, e, f := float64(m[1]), float64(m[4]), float64(m[7])
	g, h, i := float64(m[2]), float64(m[5]), float64(m[8])
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Inverse returns the inverse of m. It returns [ErrSingular] only when the
// determinant is exactly zero; nearly singular matrices are inverted anyway.
func Inverse(m Mat) (Mat, error) {
	det := det64(m)
	if det == 0 {
		return Mat{}, ErrSingular
	}
	d := 1 / det
	// Row-major names for readability.
	a, b, c := float64(m[0]), float64(m[3]), float64(m[6])
	e, f, g := float64(m[1]), float64(m[4]), float64(m[7])
	h, i, j := float64(m[2]), float64(m[5]), float64(m[8])
	return Mat{
		float32((f*j - g*i) * d), float32((g*h - e*j) * d), float32((e*i - f*h) * d),
		float32((c*i - b*j) * d), float32((a*j - c*h) * d), float32((b*h - a*i) * d),
		float32((b*g - c*f) * d), float32((c*e - a*g) * d), float32((a*f - b*e) * d),
	}, nil
}

// Equal reports whether a and b are element-wise equal within tol.
func Equal(a, b Mat, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * (math.Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * (180 / math.Pi)
}
