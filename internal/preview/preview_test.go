package preview

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/glplay/gpu"
	"github.com/soypat/glplay/m4"
	"github.com/soypat/glplay/wavefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/cmpimg"
)

const (
	width  = 64
	height = 48
)

func cubeGeometry(material string) []wavefront.Geometry {
	return []wavefront.Geometry{{
		Object:   "cube",
		Material: material,
		Data:     wavefront.GeometryData{Position: gpu.Cube(10, 10, 10, 4, 4, 4)},
	}}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = width, height
	cfg.Supersample = 1
	return cfg
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderCube(t *testing.T) {
	img, err := Render(cubeGeometry(""), nil, testConfig())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, width, height), img.Bounds())

	bg := [4]uint32{}
	bg[0], bg[1], bg[2], bg[3] = img.At(0, 0).RGBA()
	var center [4]uint32
	center[0], center[1], center[2], center[3] = img.At(width/2, height/2).RGBA()
	assert.NotEqual(t, bg, center, "fitted cube must cover the image center")
	r, g, b, _ := img.At(width-1, height-1).RGBA()
	assert.Equal(t, bg[:3], []uint32{r, g, b}, "corners show the background")
}

func TestRenderDeterministic(t *testing.T) {
	cfg := testConfig()
	a, err := Render(cubeGeometry(""), nil, cfg)
	require.NoError(t, err)
	b, err := Render(cubeGeometry(""), nil, cfg)
	require.NoError(t, err)
	equal, err := cmpimg.EqualApprox("png", encode(t, a), encode(t, b), 0.01)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestRenderMaterialColor(t *testing.T) {
	mtl, err := wavefront.ParseMTL(strings.NewReader("newmtl red\nKd 1 0 0\n"))
	require.NoError(t, err)
	cfg := testConfig()
	plain, err := Render(cubeGeometry("red"), nil, cfg)
	require.NoError(t, err)
	red, err := Render(cubeGeometry("red"), mtl.Materials, cfg)
	require.NoError(t, err)
	equal, err := cmpimg.EqualApprox("png", encode(t, plain), encode(t, red), 0.01)
	require.NoError(t, err)
	assert.False(t, equal, "material diffuse color must be used")
	r, g, _, _ := red.At(width/2, height/2).RGBA()
	assert.Greater(t, r, g)
}

func TestRenderSupersample(t *testing.T) {
	cfg := testConfig()
	cfg.Supersample = 3
	img, err := Render(cubeGeometry(""), nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, width, height), img.Bounds())
}

func TestRenderErrors(t *testing.T) {
	cfg := testConfig()
	_, err := Render(nil, nil, cfg)
	assert.Error(t, err, "nothing to fit")
	cfg.Width = 0
	_, err = Render(cubeGeometry(""), nil, cfg)
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	bb := ms3.Box{Min: ms3.Vec{X: 10, Y: 10, Z: 10}, Max: ms3.Vec{X: 14, Y: 12, Z: 11}}
	m := Fit(bb)
	lo := m4.TransformPoint3(m, bb.Min).Vec3()
	hi := m4.TransformPoint3(m, bb.Max).Vec3()
	assert.InDelta(t, -1, lo.X, 1e-6)
	assert.InDelta(t, 1, hi.X, 1e-6)
	assert.InDelta(t, -0.5, lo.Y, 1e-6)
	assert.InDelta(t, 0.5, hi.Y, 1e-6)
}

func TestToMatrix(t *testing.T) {
	m := m4.Translation(1, 2, 3)
	fm := toMatrix(m)
	assert.Equal(t, 1.0, fm.X03)
	assert.Equal(t, 2.0, fm.X13)
	assert.Equal(t, 3.0, fm.X23)
	assert.Equal(t, 1.0, fm.X33)
	p := fm.MulPosition(toVector(ms3.Vec{X: 1}))
	assert.InDelta(t, 2, p.X, 1e-9)
}
