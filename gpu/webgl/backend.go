//go:build js && wasm

// Package webgl implements gpu.Backend on a browser WebGL2 rendering context.
//
// WebGL objects and uniform locations are JavaScript values. The Backend keeps
// them in tables and hands out uint32 names and int32 locations so the gpu
// package can treat both backends alike.
package webgl

import (
	"errors"
	"syscall/js"
	"unsafe"

	"github.com/soypat/glplay/gpu"
)

// ShaderHeader is prefixed to every generated shader source.
const ShaderHeader = "#version 300 es\nprecision highp float;\nprecision highp int;"

const (
	glCompileStatus = 0x8B81
	glLinkStatus    = 0x8B82
	glRGBA          = 0x1908
	glRGBA8         = 0x8058
	glUnsignedByte  = 0x1401
	glUnpackAlign   = 0x0CF5
)

// Backend issues commands to a WebGL2RenderingContext.
type Backend struct {
	gl        js.Value
	next      uint32
	objects   map[uint32]js.Value
	locations []js.Value
}

var _ gpu.Backend = (*Backend)(nil)

// New returns a Backend for the WebGL2 context of the given canvas element.
func New(canvas js.Value) (*Backend, error) {
	if canvas.IsUndefined() || canvas.IsNull() {
		return nil, errors.New("webgl: canvas not found")
	}
	gl := canvas.Call("getContext", "webgl2")
	if gl.IsUndefined() || gl.IsNull() {
		return nil, errors.New("webgl: WebGL2 not supported")
	}
	return &Backend{gl: gl, objects: make(map[uint32]js.Value)}, nil
}

func (b *Backend) put(v js.Value) uint32 {
	if v.IsUndefined() || v.IsNull() {
		return 0
	}
	b.next++
	b.objects[b.next] = v
	return b.next
}

func (b *Backend) get(name uint32) js.Value {
	if v, ok := b.objects[name]; ok {
		return v
	}
	return js.Null()
}

func (b *Backend) drop(name uint32) js.Value {
	v := b.get(name)
	delete(b.objects, name)
	return v
}

func (b *Backend) location(loc int32) js.Value {
	if loc < 0 || int(loc) >= len(b.locations) {
		return js.Null()
	}
	return b.locations[loc]
}

func (b *Backend) ShaderHeader() string { return ShaderHeader }

func (b *Backend) CreateShader(stage gpu.ShaderStage) uint32 {
	return b.put(b.gl.Call("createShader", uint32(stage)))
}

func (b *Backend) ShaderSource(shader uint32, source string) {
	b.gl.Call("shaderSource", b.get(shader), source)
}

func (b *Backend) CompileShader(shader uint32) (bool, string) {
	sh := b.get(shader)
	b.gl.Call("compileShader", sh)
	if b.gl.Call("getShaderParameter", sh, glCompileStatus).Bool() {
		return true, ""
	}
	return false, b.gl.Call("getShaderInfoLog", sh).String()
}

func (b *Backend) DeleteShader(shader uint32) {
	b.gl.Call("deleteShader", b.drop(shader))
}

func (b *Backend) CreateProgram() uint32 { return b.put(b.gl.Call("createProgram")) }

func (b *Backend) AttachShader(program, shader uint32) {
	b.gl.Call("attachShader", b.get(program), b.get(shader))
}

func (b *Backend) LinkProgram(program uint32) (bool, string) {
	p := b.get(program)
	b.gl.Call("linkProgram", p)
	if b.gl.Call("getProgramParameter", p, glLinkStatus).Bool() {
		return true, ""
	}
	return false, b.gl.Call("getProgramInfoLog", p).String()
}

func (b *Backend) UseProgram(program uint32) { b.gl.Call("useProgram", b.get(program)) }

func (b *Backend) DeleteProgram(program uint32) {
	b.gl.Call("deleteProgram", b.drop(program))
}

func (b *Backend) GetUniformLocation(program uint32, name string) int32 {
	loc := b.gl.Call("getUniformLocation", b.get(program), name)
	if loc.IsNull() || loc.IsUndefined() {
		return -1
	}
	b.locations = append(b.locations, loc)
	return int32(len(b.locations) - 1)
}

func (b *Backend) GetAttribLocation(program uint32, name string) int32 {
	return int32(b.gl.Call("getAttribLocation", b.get(program), name).Int())
}

func (b *Backend) UniformMatrix4fv(location int32, m *[16]float32) {
	b.gl.Call("uniformMatrix4fv", b.location(location), false, float32Array(m[:]))
}

func (b *Backend) UniformMatrix3fv(location int32, m *[9]float32) {
	b.gl.Call("uniformMatrix3fv", b.location(location), false, float32Array(m[:]))
}

func (b *Backend) Uniform1i(location, v int32) {
	b.gl.Call("uniform1i", b.location(location), v)
}

func (b *Backend) Uniform1iv(location int32, v []int32) {
	arr := make([]any, len(v))
	for i := range v {
		arr[i] = v[i]
	}
	b.gl.Call("uniform1iv", b.location(location), js.ValueOf(arr))
}

func (b *Backend) Uniform1f(location int32, v float32) {
	b.gl.Call("uniform1f", b.location(location), v)
}

func (b *Backend) Uniform3f(location int32, x, y, z float32) {
	b.gl.Call("uniform3f", b.location(location), x, y, z)
}

func (b *Backend) CreateTexture() uint32 { return b.put(b.gl.Call("createTexture")) }

func (b *Backend) ActiveTexture(unit uint32) { b.gl.Call("activeTexture", unit) }

func (b *Backend) BindTexture(target, texture uint32) {
	b.gl.Call("bindTexture", target, b.get(texture))
}

func (b *Backend) TexParameteri(target, pname uint32, param int32) {
	b.gl.Call("texParameteri", target, pname, param)
}

func (b *Backend) TexImage2D(target uint32, width, height int, pix []byte) {
	arr := js.Global().Get("Uint8Array").New(len(pix))
	js.CopyBytesToJS(arr, pix)
	b.gl.Call("pixelStorei", glUnpackAlign, 1)
	b.gl.Call("texImage2D", target, 0, glRGBA8, width, height, 0, glRGBA, glUnsignedByte, arr)
}

func (b *Backend) DeleteTexture(texture uint32) {
	b.gl.Call("deleteTexture", b.drop(texture))
}

func (b *Backend) CreateBuffer() uint32 { return b.put(b.gl.Call("createBuffer")) }

func (b *Backend) BindBuffer(target, buffer uint32) {
	b.gl.Call("bindBuffer", target, b.get(buffer))
}

func (b *Backend) BufferData(target uint32, data []float32, usage uint32) {
	b.gl.Call("bufferData", target, float32Array(data), usage)
}

func (b *Backend) DeleteBuffer(buffer uint32) {
	b.gl.Call("deleteBuffer", b.drop(buffer))
}

func (b *Backend) CreateVertexArray() uint32 { return b.put(b.gl.Call("createVertexArray")) }

func (b *Backend) BindVertexArray(vao uint32) {
	b.gl.Call("bindVertexArray", b.get(vao))
}

func (b *Backend) DeleteVertexArray(vao uint32) {
	b.gl.Call("deleteVertexArray", b.drop(vao))
}

func (b *Backend) EnableVertexAttribArray(index uint32) {
	b.gl.Call("enableVertexAttribArray", index)
}

func (b *Backend) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	b.gl.Call("vertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (b *Backend) DrawArrays(mode uint32, first, count int32) {
	b.gl.Call("drawArrays", mode, first, count)
}

func (b *Backend) Enable(capability uint32) { b.gl.Call("enable", capability) }

func (b *Backend) ClearColor(r, g, bl, a float32) { b.gl.Call("clearColor", r, g, bl, a) }

func (b *Backend) Clear(mask uint32) { b.gl.Call("clear", mask) }

func (b *Backend) Viewport(x, y, width, height int32) {
	b.gl.Call("viewport", x, y, width, height)
}

func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	return arr
}
