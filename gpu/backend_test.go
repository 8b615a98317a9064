package gpu

import (
	"fmt"
	"strings"
)

// fakeBackend records every call and hands out sequential object names.
// Shaders whose source contains failCompile and programs whose shaders
// contain failLink fail with a fixed log.
type fakeBackend struct {
	next     uint32
	calls    []string
	sources  map[uint32]string
	attached map[uint32][]uint32
	live     map[uint32]string // name -> kind
	uniforms map[string]int32
	attribs  map[string]int32
	lookups  int

	texParams map[uint32]int32
	buffers   map[uint32][]float32
	bound     map[uint32]uint32
	active    uint32
	ints      map[int32][]int32
	mat4      map[int32][16]float32
	draws     [][2]int32
	images    map[uint32][]byte
}

const (
	failCompile = "#fail-compile"
	failLink    = "#fail-link"
)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		sources:   make(map[uint32]string),
		attached:  make(map[uint32][]uint32),
		live:      make(map[uint32]string),
		uniforms:  map[string]int32{UniformMatrix: 0, UniformTextureArray: 1},
		attribs:   map[string]int32{AttribPosition: 0, AttribTexCoord: 1},
		texParams: make(map[uint32]int32),
		buffers:   make(map[uint32][]float32),
		bound:     make(map[uint32]uint32),
		ints:      make(map[int32][]int32),
		mat4:      make(map[int32][16]float32),
		images:    make(map[uint32][]byte),
	}
}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) create(kind string) uint32 {
	f.next++
	f.live[f.next] = kind
	f.record("create %s %d", kind, f.next)
	return f.next
}

func (f *fakeBackend) release(kind string, name uint32) {
	f.record("delete %s %d", kind, name)
	delete(f.live, name)
}

func (f *fakeBackend) liveCount(kind string) (n int) {
	for _, k := range f.live {
		if k == kind {
			n++
		}
	}
	return n
}

func (f *fakeBackend) ShaderHeader() string { return "#version 330 core" }

func (f *fakeBackend) CreateShader(ShaderStage) uint32 { return f.create("shader") }

func (f *fakeBackend) ShaderSource(shader uint32, source string) { f.sources[shader] = source }

func (f *fakeBackend) CompileShader(shader uint32) (bool, string) {
	f.record("compile %d", shader)
	if strings.Contains(f.sources[shader], failCompile) {
		return false, "ERROR: 0:1: syntax error\n"
	}
	return true, ""
}

func (f *fakeBackend) DeleteShader(shader uint32) { f.release("shader", shader) }

func (f *fakeBackend) CreateProgram() uint32 { return f.create("program") }

func (f *fakeBackend) AttachShader(program, shader uint32) {
	f.attached[program] = append(f.attached[program], shader)
}

func (f *fakeBackend) LinkProgram(program uint32) (bool, string) {
	f.record("link %d", program)
	for _, sh := range f.attached[program] {
		if strings.Contains(f.sources[sh], failLink) {
			return false, "error: undefined varying\n"
		}
	}
	return true, ""
}

func (f *fakeBackend) UseProgram(program uint32) { f.record("use %d", program) }

func (f *fakeBackend) DeleteProgram(program uint32) { f.release("program", program) }

func (f *fakeBackend) GetUniformLocation(_ uint32, name string) int32 {
	f.lookups++
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeBackend) GetAttribLocation(_ uint32, name string) int32 {
	f.lookups++
	if loc, ok := f.attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeBackend) UniformMatrix4fv(location int32, m *[16]float32) { f.mat4[location] = *m }

func (f *fakeBackend) UniformMatrix3fv(location int32, _ *[9]float32) {
	f.record("uniformMatrix3 %d", location)
}

func (f *fakeBackend) Uniform1i(location, v int32) { f.ints[location] = []int32{v} }

func (f *fakeBackend) Uniform1iv(location int32, v []int32) {
	f.ints[location] = append([]int32(nil), v...)
}

func (f *fakeBackend) Uniform1f(location int32, v float32) {
	f.record("uniform1f %d %v", location, v)
}

func (f *fakeBackend) Uniform3f(location int32, x, y, z float32) {
	f.record("uniform3f %d %v %v %v", location, x, y, z)
}

func (f *fakeBackend) CreateTexture() uint32 { return f.create("texture") }

func (f *fakeBackend) ActiveTexture(unit uint32) { f.active = unit }

func (f *fakeBackend) BindTexture(target, texture uint32) {
	f.bound[f.active] = texture
	f.record("bindTexture %#x %d", target, texture)
}

func (f *fakeBackend) TexParameteri(_, pname uint32, param int32) { f.texParams[pname] = param }

func (f *fakeBackend) TexImage2D(_ uint32, width, height int, pix []byte) {
	f.images[f.bound[f.active]] = append([]byte(nil), pix...)
	f.record("texImage2D %dx%d", width, height)
}

func (f *fakeBackend) DeleteTexture(texture uint32) { f.release("texture", texture) }

func (f *fakeBackend) CreateBuffer() uint32 { return f.create("buffer") }

func (f *fakeBackend) BindBuffer(target, buffer uint32) {
	f.bound[target] = buffer
}

func (f *fakeBackend) BufferData(target uint32, data []float32, _ uint32) {
	f.buffers[f.bound[target]] = append([]float32(nil), data...)
}

func (f *fakeBackend) DeleteBuffer(buffer uint32) { f.release("buffer", buffer) }

func (f *fakeBackend) CreateVertexArray() uint32 { return f.create("vao") }

func (f *fakeBackend) BindVertexArray(vao uint32) { f.record("bindVertexArray %d", vao) }

func (f *fakeBackend) DeleteVertexArray(vao uint32) { f.release("vao", vao) }

func (f *fakeBackend) EnableVertexAttribArray(index uint32) {
	f.record("enableAttrib %d", index)
}

func (f *fakeBackend) VertexAttribPointer(index uint32, size int32, _ uint32, _ bool, stride int32, offset int) {
	f.record("attribPointer %d size=%d stride=%d offset=%d", index, size, stride, offset)
}

func (f *fakeBackend) DrawArrays(mode uint32, first, count int32) {
	f.record("drawArrays %#x", mode)
	f.draws = append(f.draws, [2]int32{first, count})
}

func (f *fakeBackend) Enable(capability uint32) { f.record("enable %#x", capability) }

func (f *fakeBackend) ClearColor(r, g, b, a float32) { f.record("clearColor %v %v %v %v", r, g, b, a) }

func (f *fakeBackend) Clear(mask uint32) { f.record("clear %#x", mask) }

func (f *fakeBackend) Viewport(x, y, width, height int32) {
	f.record("viewport %d %d %d %d", x, y, width, height)
}
