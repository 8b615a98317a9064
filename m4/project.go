package m4

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Perspective returns a right-handed perspective projection. fovY is the
// vertical field of view in radians and aspect is width/height. View-space
// points at z=-near map to clip z=-1 and z=-far to z=+1 after perspective division.
func Perspective(fovY, aspect, near, far float32) Mat {
	f := math32.Tan(math32.Pi/2 - fovY/2)
	rangeInv := 1 / (near - far)
	return Mat{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (near + far) * rangeInv, -1,
		0, 0, near * far * rangeInv * 2, 0,
	}
}

// Orthographic returns a projection mapping the box [left,right]x[bottom,top]
// with view-space z in [-near,-far] onto the [-1,1] cube.
func Orthographic(left, right, bottom, top, near, far float32) Mat {
	return Mat{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, 2 / (near - far), 0,
		(left + right) / (left - right),
		(bottom + top) / (bottom - top),
		(near + far) / (near - far),
		1,
	}
}

// LookAt returns the camera-to-world matrix of a camera at eye looking at
// target. The camera looks down its -z axis:
//
//	z = normalize(eye - target)
//	x = normalize(up × z)
//	y = z × x
//
// When up is parallel to the view direction x and y are zero vectors;
// the result is singular but contains no NaN.
func LookAt(eye, target, up ms3.Vec) Mat {
	x, y, z := basis(eye, target, up)
	return Mat{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		eye.X, eye.Y, eye.Z, 1,
	}
}

// View returns the world-to-camera matrix, the inverse of [LookAt] computed
// directly from the orthonormal basis.
func View(eye, target, up ms3.Vec) Mat {
	x, y, z := basis(eye, target, up)
	return Mat{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-dot(x, eye), -dot(y, eye), -dot(z, eye), 1,
	}
}

func basis(eye, target, up ms3.Vec) (x, y, z ms3.Vec) {
	z = normalize(ms3.Sub(eye, target))
	x = normalize(ms3.Cross(up, z))
	y = ms3.Cross(z, x)
	return x, y, z
}
