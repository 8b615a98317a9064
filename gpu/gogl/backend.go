//go:build !js

// Package gogl implements gpu.Backend on desktop OpenGL 3.3+ through go-gl.
//
// The OpenGL context must be current on the calling OS thread and the gl
// package initialized, which glgl.InitWithCurrentWindow33 does, before any
// method is called.
package gogl

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/all-core/gl"
	"github.com/soypat/glplay/gpu"
)

// ShaderHeader is prefixed to every generated shader source.
const ShaderHeader = "#version 330 core"

// Backend issues commands to the OpenGL context current on the calling thread.
type Backend struct{}

var _ gpu.Backend = Backend{}

// New returns a Backend for the current OpenGL context.
func New() Backend { return Backend{} }

func (Backend) ShaderHeader() string { return ShaderHeader }

func (Backend) CreateShader(stage gpu.ShaderStage) uint32 { return gl.CreateShader(uint32(stage)) }

func (Backend) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Backend) CompileShader(shader uint32) (bool, string) {
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (Backend) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Backend) CreateProgram() uint32 { return gl.CreateProgram() }

func (Backend) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Backend) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (Backend) UseProgram(program uint32) { gl.UseProgram(program) }

func (Backend) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Backend) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Backend) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (Backend) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (Backend) UniformMatrix3fv(location int32, m *[9]float32) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (Backend) Uniform1i(location, v int32) { gl.Uniform1i(location, v) }

func (Backend) Uniform1iv(location int32, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(location, int32(len(v)), &v[0])
}

func (Backend) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (Backend) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (Backend) CreateTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (Backend) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (Backend) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (Backend) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (Backend) TexImage2D(target uint32, width, height int, pix []byte) {
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(target, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
}

func (Backend) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (Backend) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (Backend) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (Backend) BufferData(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, 4*len(data), gl.Ptr(data), usage)
}

func (Backend) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (Backend) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Backend) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Backend) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Backend) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (Backend) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (Backend) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (Backend) Enable(capability uint32) { gl.Enable(capability) }

func (Backend) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (Backend) Clear(mask uint32) { gl.Clear(mask) }

func (Backend) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
