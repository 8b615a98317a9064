package m3

import (
	"math"
	"testing"

	"github.com/soypat/glgl/math/ms2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertVecNear(t *testing.T, want, got ms2.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
}

func TestRotationInverse(t *testing.T) {
	for _, theta := range []float32{0, 0.1, 1, math.Pi / 4, math.Pi / 2, math.Pi, -2.5, 7} {
		got := Mul(Rotation(theta), Rotation(-theta))
		assert.True(t, Equal(got, Identity(), tol), "theta=%v got %v", theta, got)
	}
}

func TestTransformPointIdentity(t *testing.T) {
	for _, p := range []ms2.Vec{{}, {X: 1, Y: 2}, {X: -3.5, Y: 1e3}} {
		assert.Equal(t, p, TransformPoint(Identity(), p))
	}
	assert.Equal(t, [3]float32{4, 5, 1}, TransformPointH(Identity(), [3]float32{4, 5, 9}))
}

func TestCompositionOrder(t *testing.T) {
	// (1,0) scaled by 2 -> (2,0), rotated 90° -> (0,2), translated (1,1) -> (1,3).
	m := MulMany(Translation(1, 1), Rotation(math.Pi/2), Scaling(2, 2))
	assertVecNear(t, ms2.Vec{X: 1, Y: 3}, TransformPoint(m, ms2.Vec{X: 1}))

	// Reversed order gives a different result: translate first, then rotate and scale.
	m = MulMany(Scaling(2, 2), Rotation(math.Pi/2), Translation(1, 1))
	assertVecNear(t, ms2.Vec{X: -2, Y: 4}, TransformPoint(m, ms2.Vec{X: 1}))
}

func TestMulManyFold(t *testing.T) {
	a, b, c := Translation(3, -1), Rotation(0.3), Scaling(1.5, 0.5)
	assert.Equal(t, Mul(Mul(a, b), c), MulMany(a, b, c))
	assert.Equal(t, a, MulMany(a))
}

func TestRotationDeg(t *testing.T) {
	assert.True(t, Equal(Rotation(math.Pi/2), RotationDeg(90), tol))
	assertVecNear(t, ms2.Vec{Y: 1}, TransformPoint(RotationDeg(90), ms2.Vec{X: 1}))
	assert.InDelta(t, 180, RadToDeg(DegToRad(180)), tol)
}

func TestProjection(t *testing.T) {
	p := Projection(800, 600)
	assertVecNear(t, ms2.Vec{X: -1, Y: 1}, TransformPoint(p, ms2.Vec{}))
	assertVecNear(t, ms2.Vec{X: 1, Y: -1}, TransformPoint(p, ms2.Vec{X: 800, Y: 600}))
	assertVecNear(t, ms2.Vec{}, TransformPoint(p, ms2.Vec{X: 400, Y: 300}))
}

func TestInverse(t *testing.T) {
	m := MulMany(Translation(10, 20), Rotation(0.7), Scaling(2, 3))
	inv, err := Inverse(m)
	require.NoError(t, err)
	assert.True(t, Equal(Mul(m, inv), Identity(), tol))
	assert.True(t, Equal(Mul(inv, m), Identity(), tol))

	_, err = Inverse(Scaling(0, 1))
	assert.ErrorIs(t, err, ErrSingular)
}

func TestTranspose(t *testing.T) {
	m := Mat{1, 2, 3, 4, 5, 6, 7, 8, 9}
	tr := Transpose(m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, m.At(i, j), tr.At(j, i))
		}
	}
	assert.Equal(t, m, Transpose(tr))
	assert.InDelta(t, Determinant(m), Determinant(tr), tol)
}

func TestValueSemantics(t *testing.T) {
	a := Translation(1, 2)
	b := a
	_ = Mul(a, Scaling(3, 3))
	assert.Equal(t, b, a)
}
