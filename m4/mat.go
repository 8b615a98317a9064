// Package m4 implements 4x4 homogeneous matrices for 3D transformations and
// projections.
//
// Matrices are stored column-major in a [16]float32, the layout expected by
// GL matrix uniforms. All functions take and return values; angles are in radians.
package m4

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// ErrSingular is returned when a matrix has a determinant of exactly zero.
var ErrSingular = errors.New("m4: singular matrix has no inverse")

// Mat is a 4x4 matrix in column-major order: element at row r, column c
// is stored at index c*4+r.
type Mat [16]float32

// At returns the element at row i and column j.
func (m Mat) At(i, j int) float32 { return m[j*4+i] }

// Array returns the matrix elements in column-major order.
func (m Mat) Array() [16]float32 { return m }

// Identity returns the multiplicative identity.
func Identity() Mat {
	return Mat{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a matrix translating points by (tx, ty, tz).
func Translation(tx, ty, tz float32) Mat {
	return Mat{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		tx, ty, tz, 1,
	}
}

// RotationX returns a counter-clockwise rotation about the x axis.
func RotationX(angle float32) Mat {
	s, c := math32.Sincos(angle)
	return Mat{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a counter-clockwise rotation about the y axis.
func RotationY(angle float32) Mat {
	s, c := math32.Sincos(angle)
	return Mat{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a counter-clockwise rotation about the z axis.
func RotationZ(angle float32) Mat {
	s, c := math32.Sincos(angle)
	return Mat{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationXYZ returns RotationZ(rz)∘RotationY(ry)∘RotationX(rx):
// the x rotation is applied first and the z rotation last.
func RotationXYZ(rx, ry, rz float32) Mat {
	return MulMany(RotationZ(rz), RotationY(ry), RotationX(rx))
}

// Scaling returns a matrix scaling points by (sx, sy, sz).
func Scaling(sx, sy, sz float32) Mat {
	return Mat{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a∘b: transforming a point by the result is the same as
// transforming by b first and by a second.
func Mul(a, b Mat) Mat {
	var m Mat
	for c := 0; c < 4; c++ {
		b0, b1, b2, b3 := b[c*4], b[c*4+1], b[c*4+2], b[c*4+3]
		m[c*4+0] = a[0]*b0 + a[4]*b1 + a[8]*b2 + a[12]*b3
		m[c*4+1] = a[1]*b0 + a[5]*b1 + a[9]*b2 + a[13]*b3
		m[c*4+2] = a[2]*b0 + a[6]*b1 + a[10]*b2 + a[14]*b3
		m[c*4+3] = a[3]*b0 + a[7]*b1 + a[11]*b2 + a[15]*b3
	}
	return m
}

// MulMany left-folds [Mul] over rest starting from base, so that
//
//	MulMany(Translation(x, y, z), RotationY(a), Scaling(s, s, s))
//
// scales first, rotates second and translates last.
func MulMany(base Mat, rest ...Mat) Mat {
	for _, m := range rest {
		base = Mul(base, m)
	}
	return base
}

// Compose returns base∘T∘Rx∘Ry∘Rz∘S where T translates by translation,
// Rx, Ry and Rz rotate by the components of rotation and S scales by scale.
// Points are scaled first, then rotated about z, y and x, then translated
// and finally transformed by base.
func Compose(base Mat, translation, rotation, scale ms3.Vec) Mat {
	return MulMany(base,
		Translation(translation.X, translation.Y, translation.Z),
		RotationX(rotation.X),
		RotationY(rotation.Y),
		RotationZ(rotation.Z),
		Scaling(scale.X, scale.Y, scale.Z),
	)
}

// Transpose returns the transpose of m.
func Transpose(m Mat) Mat {
	return Mat{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
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
	return degrees * (math32.Pi / 180)
}
