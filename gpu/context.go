// Package gpu manages shader programs, textures, vertex buffers and draw
// calls on top of a GL-family [Backend].
//
// Every resource is created through a [Context] which tracks it until it is
// deleted or the Context is closed. Failures that the GL API reports through
// diagnostics or sentinel values are surfaced as Go errors or as the
// [NoShader] and [NoLocation] sentinels; nothing in this package panics on
// bad input.
//
// A Context is not safe for concurrent use. Issue all commands from the
// goroutine that owns the rendering context, which on desktop must be locked
// to its OS thread with runtime.LockOSThread.
package gpu

import (
	"errors"
	"fmt"

	"github.com/soypat/glplay"
)

// Shader is a compiled shader stage handle.
type Shader uint32

// NoShader is returned by [Context.CompileShader] when compilation fails.
const NoShader Shader = 0

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint32

const (
	VertexStage   ShaderStage = glVertexShader
	FragmentStage ShaderStage = glFragmentShader
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%#x)", uint32(s))
}

// Texture is a 2D texture handle.
type Texture uint32

// Buffer is a vertex buffer handle.
type Buffer uint32

// VertexArray is a vertex array object handle.
type VertexArray uint32

// Context issues rendering commands through a Backend and owns every resource
// created through it.
type Context struct {
	b        Backend
	programs map[*Program]struct{}
	textures map[Texture]struct{}
	buffers  map[Buffer]struct{}
	vaos     map[VertexArray]struct{}
	units    [NumTextureUnits]Texture
}

// NewContext returns a Context issuing commands through b.
func NewContext(b Backend) (*Context, error) {
	if b == nil {
		return nil, errors.New("nil gpu backend")
	}
	return &Context{
		b:        b,
		programs: make(map[*Program]struct{}),
		textures: make(map[Texture]struct{}),
		buffers:  make(map[Buffer]struct{}),
		vaos:     make(map[VertexArray]struct{}),
	}, nil
}

// Backend returns the Backend the Context was created with.
func (c *Context) Backend() Backend { return c.b }

// Clear clears the color and depth buffers to the given color.
func (c *Context) Clear(r, g, b, a float32) {
	c.b.ClearColor(r, g, b, a)
	c.b.Clear(glColorBufferBit | glDepthBufferBit)
}

// EnableDepthTest enables depth testing for 3D draws.
func (c *Context) EnableDepthTest() {
	c.b.Enable(glDepthTest)
}

// Viewport sets the viewport rectangle in pixels.
func (c *Context) Viewport(x, y, width, height int) {
	c.b.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Close deletes every program, texture, buffer and vertex array still owned
// by the Context. The Context must not be used after Close.
func (c *Context) Close() error {
	for p := range c.programs {
		p.Delete()
	}
	for tex := range c.textures {
		c.DeleteTexture(tex)
	}
	for buf := range c.buffers {
		c.DeleteBuffer(buf)
	}
	for vao := range c.vaos {
		c.DeleteVertexArray(vao)
	}
	glplay.Logger().Debug("gpu: context closed")
	return nil
}
