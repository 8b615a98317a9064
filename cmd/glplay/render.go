//go:build !js

package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/soypat/glplay"
	"github.com/soypat/glplay/assets"
	"github.com/soypat/glplay/gpu"
	"github.com/soypat/glplay/internal/preview"
	"github.com/soypat/glplay/m4"
	"github.com/soypat/glplay/wavefront"
)

var defaultColor = color.RGBA{R: 0x46, G: 0x89, B: 0x66, A: 0xff}

type drawable struct {
	vao   gpu.VertexArray
	count int
}

type renderer struct {
	ctx   *gpu.Context
	prog  *gpu.Program
	model m4.Mat
	draws []drawable
}

// newRenderer uploads scene to the GPU. Each material gets a texture unit in
// order of first use; materials past the last unit share it.
func newRenderer(ctx context.Context, gctx *gpu.Context, loader *assets.Loader, base string, scene *assets.Scene) (*renderer, error) {
	geoms := scene.OBJ.Geometries
	bb, ok := wavefront.GeometriesExtents(geoms)
	if !ok {
		return nil, errors.New("scene has no geometry")
	}
	prog, err := gctx.LinkProgram(gctx.TexturedSources())
	if err != nil {
		return nil, err
	}
	r := &renderer{ctx: gctx, prog: prog, model: preview.Fit(bb)}

	units := make(map[string]gpu.TextureUnit)
	var order []string
	for i := range geoms {
		name := geoms[i].Material
		if _, ok := units[name]; ok {
			continue
		}
		unit := gpu.TextureUnit(min(len(order), gpu.NumTextureUnits-1))
		if len(order) >= gpu.NumTextureUnits {
			glplay.Logger().Warn("out of texture units", slog.String("material", name), slog.String("shared", unit.String()))
		} else {
			order = append(order, name)
		}
		units[name] = unit
	}
	images := materialImages(ctx, loader, base, order, scene.Materials)
	for i, img := range images {
		tex := gctx.CreateTexture()
		if err := gctx.UploadImage(tex, img); err != nil {
			return nil, err
		}
		if err := gctx.BindTexture(gpu.TextureUnit(i), tex); err != nil {
			return nil, err
		}
	}

	prog.Use()
	prog.BindTextureArray(gpu.UniformTextureArray)
	for i := range geoms {
		d, err := r.upload(&geoms[i].Data, units[geoms[i].Material])
		if err != nil {
			return nil, err
		}
		r.draws = append(r.draws, d)
	}
	return r, nil
}

// materialImages returns one image per material name: its diffuse map if
// it loads, otherwise a single texel of its diffuse color.
func materialImages(ctx context.Context, loader *assets.Loader, base string, names []string, materials map[string]*wavefront.Material) []image.Image {
	images := make([]image.Image, len(names))
	var urls []string
	var idx []int
	for i, name := range names {
		m := materials[name]
		images[i] = solid(m)
		if m != nil && m.DiffuseMap != "" {
			urls = append(urls, assets.ResolveURL(base, m.DiffuseMap))
			idx = append(idx, i)
		}
	}
	for i, res := range loader.LoadImages(ctx, urls) {
		if res.Err != nil {
			glplay.Logger().Warn("diffuse map unavailable", slog.String("material", names[idx[i]]), slog.Any("err", res.Err))
			continue
		}
		images[idx[i]] = res.Image
	}
	return images
}

func solid(m *wavefront.Material) image.Image {
	c := defaultColor
	if m != nil && m.Diffuse != nil {
		c = color.RGBA{R: unorm(m.Diffuse[0]), G: unorm(m.Diffuse[1]), B: unorm(m.Diffuse[2]), A: 0xff}
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

func unorm(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

func (r *renderer) upload(data *wavefront.GeometryData, unit gpu.TextureUnit) (drawable, error) {
	n, err := gpu.VertexCount(data.Position, gpu.Components3D)
	if err != nil {
		return drawable{}, err
	}
	texcoords := data.Texcoord
	if len(texcoords) != 2*n {
		texcoords = make([]float32, 2*n)
	}
	index := make([]float32, n)
	for i := range index {
		index[i] = float32(unit)
	}

	vao := r.ctx.CreateVertexArray()
	attribs := []struct {
		name       string
		data       []float32
		components int
	}{
		{gpu.AttribPosition, data.Position, gpu.Components3D},
		{gpu.AttribTexCoord, texcoords, gpu.Components2D},
		{gpu.AttribTextureIndex, index, 1},
	}
	for _, a := range attribs {
		buf := r.ctx.CreateBuffer()
		r.ctx.UploadVertexData(buf, a.data)
		if !r.prog.VertexAttrib(a.name, buf, a.components) {
			glplay.Logger().Debug("attribute unused by program", slog.String("name", a.name))
		}
	}
	return drawable{vao: vao, count: n}, nil
}

// draw renders a frame with the model rotated about y for the elapsed time.
func (r *renderer) draw(cfg Config, width, height int, elapsed time.Duration) {
	r.ctx.Viewport(0, 0, width, height)
	r.ctx.EnableDepthTest()
	r.ctx.Clear(1, 0.97, 0.89, 1)

	aspect := float32(width) / float32(max(height, 1))
	angle := m4.DegToRad(cfg.Scene.Spin) * float32(elapsed.Seconds())
	mvp := m4.MulMany(
		m4.Perspective(m4.DegToRad(cfg.Camera.FOV), aspect, cfg.Camera.Near, cfg.Camera.Far),
		m4.View(vec(cfg.Camera.Eye), vec(cfg.Camera.Target), vec(cfg.Camera.Up)),
		m4.RotationY(angle),
		r.model,
	)
	r.prog.Use()
	r.prog.SetMat4(gpu.UniformMatrix, mvp)
	for _, d := range r.draws {
		r.ctx.BindVertexArray(d.vao)
		r.ctx.DrawTriangles(d.count)
	}
}
