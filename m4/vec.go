package m4

import "github.com/soypat/glgl/math/ms3"

// normEpsilon is the length under which a vector is treated as zero length
// by [normalize].
const normEpsilon = 1e-6

// Vec4 is a point or direction in homogeneous coordinates.
type Vec4 struct {
	X, Y, Z, W float32
}

// Point returns p as a homogeneous point with W set to 1.
func Point(p ms3.Vec) Vec4 { return Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1} }

// Vec3 returns the first three components of v without division.
func (v Vec4) Vec3() ms3.Vec { return ms3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// PerspectiveDivide returns (X/W, Y/W, Z/W). W must be non-zero.
func (v Vec4) PerspectiveDivide() ms3.Vec {
	return ms3.Vec{X: v.X / v.W, Y: v.Y / v.W, Z: v.Z / v.W}
}

// TransformPoint applies m to the homogeneous point p and returns all four
// components. No perspective division is performed: when the result has
// W≠1 the caller must call [Vec4.PerspectiveDivide].
func TransformPoint(m Mat, p Vec4) Vec4 {
	return Vec4{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]*p.W,
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]*p.W,
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]*p.W,
		W: m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]*p.W,
	}
}

// TransformPoint3 is [TransformPoint] with W defaulting to 1.
func TransformPoint3(m Mat, p ms3.Vec) Vec4 {
	return TransformPoint(m, Point(p))
}

// TransformVector applies only the upper-left 3x3 of m to v, ignoring
// translation. Use it for directions; normals need [Normal] first.
func TransformVector(m Mat, v ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// normalize returns v scaled to unit length. Zero length vectors, such as the
// cross product of parallel vectors, return the zero vector instead of NaN.
func normalize(v ms3.Vec) ms3.Vec {
	n := ms3.Norm(v)
	if n < normEpsilon {
		return ms3.Vec{}
	}
	return ms3.Scale(1/n, v)
}

func dot(a, b ms3.Vec) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}
