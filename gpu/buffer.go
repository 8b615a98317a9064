package gpu

import (
	"fmt"

	"github.com/soypat/glplay"
)

// Components per vertex of the position arrays produced by [Rectangle] and
// [Cube]. Vertex counts must be derived with the component count of the
// array being drawn, never guessed from its length.
const (
	Components2D = 2
	Components3D = 3
)

// VertexCount returns the number of vertices in a flat array with the given
// number of components per vertex.
func VertexCount(data []float32, components int) (int, error) {
	if components < 1 {
		return 0, fmt.Errorf("invalid component count %d", components)
	}
	if len(data)%components != 0 {
		return 0, fmt.Errorf("%d floats is not a multiple of %d components", len(data), components)
	}
	return len(data) / components, nil
}

// CreateBuffer allocates a vertex buffer.
func (c *Context) CreateBuffer() Buffer {
	buf := Buffer(c.b.CreateBuffer())
	c.buffers[buf] = struct{}{}
	return buf
}

// UploadVertexData replaces the full contents of buf with data. The buffer
// is left bound as the array buffer.
func (c *Context) UploadVertexData(buf Buffer, data []float32) {
	c.b.BindBuffer(glArrayBuffer, uint32(buf))
	c.b.BufferData(glArrayBuffer, data, glStaticDraw)
}

// DeleteBuffer releases buf.
func (c *Context) DeleteBuffer(buf Buffer) {
	if _, ok := c.buffers[buf]; !ok {
		return
	}
	c.b.DeleteBuffer(uint32(buf))
	delete(c.buffers, buf)
	glplay.Logger().Debug("gpu: buffer deleted", "handle", uint32(buf))
}

// CreateVertexArray allocates a vertex array object and binds it.
func (c *Context) CreateVertexArray() VertexArray {
	vao := VertexArray(c.b.CreateVertexArray())
	c.b.BindVertexArray(uint32(vao))
	c.vaos[vao] = struct{}{}
	return vao
}

// BindVertexArray binds vao, restoring the attribute state recorded in it.
func (c *Context) BindVertexArray(vao VertexArray) {
	c.b.BindVertexArray(uint32(vao))
}

// DeleteVertexArray releases vao.
func (c *Context) DeleteVertexArray(vao VertexArray) {
	if _, ok := c.vaos[vao]; !ok {
		return
	}
	c.b.DeleteVertexArray(uint32(vao))
	delete(c.vaos, vao)
}

// VertexAttrib feeds the named attribute from buf with tightly packed float
// components starting at offset 0. It reports false, without touching any
// state, when the program has no such active attribute.
func (p *Program) VertexAttrib(name string, buf Buffer, components int) bool {
	loc := p.Attrib(name)
	if !loc.Valid() {
		return false
	}
	b := p.ctx.b
	b.BindBuffer(glArrayBuffer, uint32(buf))
	b.EnableVertexAttribArray(uint32(loc))
	b.VertexAttribPointer(uint32(loc), int32(components), glFloat, false, 0, 0)
	return true
}

// DrawTriangles draws vertexCount vertices from offset 0 as a triangle list.
// The caller must have bound the program, vertex state and textures.
func (c *Context) DrawTriangles(vertexCount int) {
	c.b.DrawArrays(glTriangles, 0, int32(vertexCount))
}

// Rectangle returns the two triangles covering the rectangle with corner
// (x,y) and the given size, with Components2D components per vertex.
func Rectangle(x, y, width, height float32) []float32 {
	x1, y1 := x, y
	x2, y2 := x+width, y+height
	return []float32{
		x1, y1,
		x2, y1,
		x1, y2,
		x1, y2,
		x2, y1,
		x2, y2,
	}
}

// Cube returns the 12 triangles of the axis aligned box with corner (x,y,z)
// and the given size, with Components3D components per vertex. Faces wind
// counter-clockwise seen from outside the box.
func Cube(x, y, z, width, height, depth float32) []float32 {
	x2, y2, z2 := x+width, y+height, z+depth
	return []float32{
		// Front, +z.
		x, y, z2, x2, y, z2, x2, y2, z2,
		x, y, z2, x2, y2, z2, x, y2, z2,
		// Back, -z.
		x2, y, z, x, y, z, x, y2, z,
		x2, y, z, x, y2, z, x2, y2, z,
		// Left, -x.
		x, y, z, x, y, z2, x, y2, z2,
		x, y, z, x, y2, z2, x, y2, z,
		// Right, +x.
		x2, y, z2, x2, y, z, x2, y2, z,
		x2, y, z2, x2, y2, z, x2, y2, z2,
		// Bottom, -y.
		x, y, z, x2, y, z, x2, y, z2,
		x, y, z, x2, y, z2, x, y, z2,
		// Top, +y.
		x, y2, z2, x2, y2, z2, x2, y2, z,
		x, y2, z2, x2, y2, z, x, y2, z,
	}
}
