// Package preview renders parsed Wavefront geometry to an image on the CPU.
// It is used to snapshot scenes where no GPU context is available, such as
// in tests and headless runs.
package preview

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/glplay/m4"
	"github.com/soypat/glplay/wavefront"
)

// Config controls the snapshot camera and output.
type Config struct {
	Width, Height int
	// Supersample renders at this multiple of the output size and downsamples
	// for antialiasing. Values below 1 are treated as 1.
	Supersample int
	// FOV is the vertical field of view in radians.
	FOV        float32
	Near, Far  float32
	Eye        ms3.Vec
	Target     ms3.Vec
	Up         ms3.Vec
	Light      ms3.Vec // Direction towards the light.
	Background string  // Hex color.
	// Color is used for geometry whose material has no diffuse color.
	Color string
	// Fit scales and centers the scene into the [-1,1] cube before rendering.
	Fit bool
}

// DefaultConfig returns an isometric view of the [-1,1] cube.
func DefaultConfig() Config {
	return Config{
		Width:       512,
		Height:      512,
		Supersample: 2,
		FOV:         m4.DegToRad(30),
		Near:        1,
		Far:         10,
		Eye:         ms3.Vec{X: 3, Y: 3, Z: 3},
		Up:          ms3.Vec{Y: 1},
		Light:       ms3.Vec{X: -0.75, Y: 1, Z: 0.25},
		Background:  "#FFF8E3",
		Color:       "#468966",
		Fit:         true,
	}
}

// Render draws geoms with Phong shading. Each geometry is colored with the
// diffuse color of its material in materials, if any.
func Render(geoms []wavefront.Geometry, materials map[string]*wavefront.Material, cfg Config) (image.Image, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("preview: image size must be positive")
	}
	scale := max(cfg.Supersample, 1)
	model := m4.Identity()
	if cfg.Fit {
		bb, ok := wavefront.GeometriesExtents(geoms)
		if !ok {
			return nil, errors.New("preview: no geometry to fit")
		}
		model = Fit(bb)
	}
	aspect := float32(cfg.Width) / float32(cfg.Height)
	viewProj := m4.MulMany(
		m4.Perspective(cfg.FOV, aspect, cfg.Near, cfg.Far),
		m4.View(cfg.Eye, cfg.Target, cfg.Up),
	)

	ctx := fauxgl.NewContext(cfg.Width*scale, cfg.Height*scale)
	ctx.ClearColorBufferWith(fauxgl.HexColor(cfg.Background))
	light := toVector(cfg.Light).Normalize()
	shader := fauxgl.NewPhongShader(toMatrix(viewProj), light, toVector(cfg.Eye))
	ctx.Shader = shader
	for i := range geoms {
		mesh := toMesh(geoms[i].Data.Position, model)
		if mesh == nil {
			continue
		}
		shader.ObjectColor = fauxgl.HexColor(cfg.Color)
		if m := materials[geoms[i].Material]; m != nil && m.Diffuse != nil {
			d := m.Diffuse
			shader.ObjectColor = fauxgl.Color{R: float64(d[0]), G: float64(d[1]), B: float64(d[2]), A: 1}
		}
		ctx.DrawMesh(mesh)
	}
	img := ctx.Image()
	if scale > 1 {
		img = resize.Resize(uint(cfg.Width), uint(cfg.Height), img, resize.Bilinear)
	}
	return img, nil
}

// Fit returns the transform centering bb at the origin and scaling its
// largest side to 2.
func Fit(bb ms3.Box) m4.Mat {
	size := ms3.Sub(bb.Max, bb.Min)
	side := max(size.X, size.Y, size.Z)
	if side == 0 {
		side = 1
	}
	center := ms3.Scale(0.5, ms3.Add(bb.Min, bb.Max))
	s := 2 / side
	return m4.MulMany(m4.Scaling(s, s, s), m4.Translation(-center.X, -center.Y, -center.Z))
}

func toMesh(positions []float32, model m4.Mat) *fauxgl.Mesh {
	var tris []*fauxgl.Triangle
	for i := 0; i+8 < len(positions); i += 9 {
		var v [3]fauxgl.Vector
		for j := range v {
			p := ms3.Vec{X: positions[i+3*j], Y: positions[i+3*j+1], Z: positions[i+3*j+2]}
			v[j] = toVector(m4.TransformPoint3(model, p).Vec3())
		}
		tris = append(tris, fauxgl.NewTriangleForPoints(v[0], v[1], v[2]))
	}
	if len(tris) == 0 {
		return nil
	}
	return fauxgl.NewTriangleMesh(tris)
}

func toVector(v ms3.Vec) fauxgl.Vector {
	return fauxgl.V(float64(v.X), float64(v.Y), float64(v.Z))
}

// toMatrix converts a column-major m4.Mat to fauxgl's row-major Matrix.
func toMatrix(m m4.Mat) fauxgl.Matrix {
	f := func(r, c int) float64 { return float64(m.At(r, c)) }
	return fauxgl.Matrix{
		X00: f(0, 0), X01: f(0, 1), X02: f(0, 2), X03: f(0, 3),
		X10: f(1, 0), X11: f(1, 1), X12: f(1, 2), X13: f(1, 3),
		X20: f(2, 0), X21: f(2, 1), X22: f(2, 2), X23: f(2, 3),
		X30: f(3, 0), X31: f(3, 1), X32: f(3, 2), X33: f(3, 3),
	}
}
