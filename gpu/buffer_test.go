package gpu

import (
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexCount(t *testing.T) {
	rect := Rectangle(0, 0, 10, 20)
	n, err := VertexCount(rect, Components2D)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	cube := Cube(0, 0, 0, 1, 1, 1)
	n, err = VertexCount(cube, Components3D)
	require.NoError(t, err)
	assert.Equal(t, 36, n)

	_, err = VertexCount(rect, Components3D)
	assert.Error(t, err, "12 floats are not whole 3 component vertices")
	_, err = VertexCount(rect, 0)
	assert.Error(t, err)
	n, err = VertexCount(nil, Components3D)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRectangle(t *testing.T) {
	got := Rectangle(1, 2, 3, 4)
	want := []float32{
		1, 2, 4, 2, 1, 6,
		1, 6, 4, 2, 4, 6,
	}
	assert.Equal(t, want, got)
}

func TestCubeOutwardWinding(t *testing.T) {
	const x, y, z, w, h, d = 1, 2, 3, 2, 4, 6
	data := Cube(x, y, z, w, h, d)
	center := ms3.Vec{X: x + w/2., Y: y + h/2., Z: z + d/2.}
	for i := 0; i < len(data); i += 9 {
		a := ms3.Vec{X: data[i], Y: data[i+1], Z: data[i+2]}
		b := ms3.Vec{X: data[i+3], Y: data[i+4], Z: data[i+5]}
		c := ms3.Vec{X: data[i+6], Y: data[i+7], Z: data[i+8]}
		n := ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))
		out := ms3.Sub(a, center)
		dot := n.X*out.X + n.Y*out.Y + n.Z*out.Z
		assert.Greater(t, dot, float32(0), "triangle %d must face outward", i/9)
	}
}

func TestUploadAndDraw(t *testing.T) {
	ctx, fb := newTestContext(t)
	prog, err := ctx.LinkProgram("a", "b")
	require.NoError(t, err)
	ctx.CreateVertexArray()
	buf := ctx.CreateBuffer()

	data := Cube(0, 0, 0, 1, 1, 1)
	ctx.UploadVertexData(buf, data)
	assert.Equal(t, data, fb.buffers[uint32(buf)])

	// Uploading replaces the previous contents entirely.
	rect := Rectangle(0, 0, 1, 1)
	ctx.UploadVertexData(buf, rect)
	assert.Equal(t, rect, fb.buffers[uint32(buf)])

	assert.True(t, prog.VertexAttrib(AttribPosition, buf, Components2D))
	assert.Contains(t, fb.calls, "attribPointer 0 size=2 stride=0 offset=0")
	assert.False(t, prog.VertexAttrib(AttribNormal, buf, Components3D))

	n, err := VertexCount(rect, Components2D)
	require.NoError(t, err)
	ctx.DrawTriangles(n)
	require.Len(t, fb.draws, 1)
	assert.Equal(t, [2]int32{0, 6}, fb.draws[0])
	assert.Contains(t, fb.calls, "drawArrays 0x4")

	ctx.DeleteBuffer(buf)
	ctx.DeleteBuffer(buf)
	assert.Zero(t, fb.liveCount("buffer"))
}

func TestClearAndViewport(t *testing.T) {
	ctx, fb := newTestContext(t)
	ctx.Clear(0, 0, 0, 1)
	ctx.Viewport(0, 0, 640, 480)
	ctx.EnableDepthTest()
	assert.Contains(t, fb.calls, "clear 0x4100")
	assert.Contains(t, fb.calls, "viewport 0 0 640 480")
	assert.Contains(t, fb.calls, "enable 0xb71")
}
