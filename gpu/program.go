package gpu

import (
	"fmt"
	"strings"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/glplay"
	"github.com/soypat/glplay/m3"
	"github.com/soypat/glplay/m4"
)

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError is returned when a program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "linking program: " + strings.TrimSpace(e.Log)
}

// Location is a uniform or attribute location within a program.
type Location int32

// NoLocation is the location of a name that is not an active variable of
// the program. Setting a value at NoLocation is a no-op.
const NoLocation Location = -1

// Valid reports whether l refers to an active variable.
func (l Location) Valid() bool { return l >= 0 }

// CompileShader compiles source as a shader of the given stage. On failure
// the compiler log is logged and returned in a *CompileError, the shader
// object is deleted and NoShader is returned.
func (c *Context) CompileShader(stage ShaderStage, source string) (Shader, error) {
	sh := c.b.CreateShader(stage)
	if sh == 0 {
		return NoShader, &CompileError{Stage: stage, Log: "could not create shader object"}
	}
	c.b.ShaderSource(sh, source)
	ok, log := c.b.CompileShader(sh)
	if !ok {
		glplay.Logger().Error("gpu: shader compilation failed", "stage", stage.String(), "log", log)
		c.b.DeleteShader(sh)
		return NoShader, &CompileError{Stage: stage, Log: log}
	}
	return Shader(sh), nil
}

// Program is a linked shader program. Uniform and attribute locations are
// looked up on first use and cached for the lifetime of the program.
type Program struct {
	ctx      *Context
	handle   uint32
	vertex   Shader
	fragment Shader
	uniforms map[string]Location
	attribs  map[string]Location
}

// LinkProgram compiles the vertex and fragment sources and links them into a
// program. If either stage fails to compile no link is attempted and the
// *CompileError is returned. On link failure the linker log is logged and
// returned in a *LinkError and every object created is deleted. A non-nil
// Program is always successfully linked.
func (c *Context) LinkProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, err := c.CompileShader(VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := c.CompileShader(FragmentStage, fragmentSource)
	if err != nil {
		c.b.DeleteShader(uint32(vs))
		return nil, err
	}
	prog := c.b.CreateProgram()
	if prog == 0 {
		c.b.DeleteShader(uint32(vs))
		c.b.DeleteShader(uint32(fs))
		return nil, &LinkError{Log: "could not create program object"}
	}
	c.b.AttachShader(prog, uint32(vs))
	c.b.AttachShader(prog, uint32(fs))
	ok, log := c.b.LinkProgram(prog)
	if !ok {
		glplay.Logger().Error("gpu: program link failed", "log", log)
		c.b.DeleteProgram(prog)
		c.b.DeleteShader(uint32(vs))
		c.b.DeleteShader(uint32(fs))
		return nil, &LinkError{Log: log}
	}
	p := &Program{
		ctx:      c,
		handle:   prog,
		vertex:   vs,
		fragment: fs,
		uniforms: make(map[string]Location),
		attribs:  make(map[string]Location),
	}
	c.programs[p] = struct{}{}
	glplay.Logger().Debug("gpu: program linked", "handle", prog)
	return p, nil
}

// Handle returns the backend program name.
func (p *Program) Handle() uint32 { return p.handle }

// Use makes p the current program.
func (p *Program) Use() {
	p.ctx.b.UseProgram(p.handle)
}

// Delete releases the program and its shaders and clears the location
// caches. Calling Delete more than once is a no-op.
func (p *Program) Delete() {
	if p.handle == 0 {
		return
	}
	b := p.ctx.b
	b.DeleteProgram(p.handle)
	b.DeleteShader(uint32(p.vertex))
	b.DeleteShader(uint32(p.fragment))
	delete(p.ctx.programs, p)
	p.handle, p.vertex, p.fragment = 0, NoShader, NoShader
	p.uniforms = make(map[string]Location)
	p.attribs = make(map[string]Location)
}

// Uniform returns the location of the named uniform or NoLocation when the
// program has no such active uniform.
func (p *Program) Uniform(name string) Location {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := NoLocation
	if p.handle != 0 {
		loc = Location(p.ctx.b.GetUniformLocation(p.handle, name))
		if loc < 0 {
			loc = NoLocation
			glplay.Logger().Debug("gpu: uniform not found", "name", name)
		}
	}
	p.uniforms[name] = loc
	return loc
}

// Attrib returns the location of the named vertex attribute or NoLocation
// when the program has no such active attribute.
func (p *Program) Attrib(name string) Location {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	loc := NoLocation
	if p.handle != 0 {
		loc = Location(p.ctx.b.GetAttribLocation(p.handle, name))
		if loc < 0 {
			loc = NoLocation
		}
	}
	p.attribs[name] = loc
	return loc
}

// The setters below write a uniform of the program currently in use and
// report whether the uniform exists. Missing uniforms are skipped.

func (p *Program) SetMat4(name string, m m4.Mat) bool {
	loc := p.Uniform(name)
	if !loc.Valid() {
		return false
	}
	p.ctx.b.UniformMatrix4fv(int32(loc), (*[16]float32)(&m))
	return true
}

func (p *Program) SetMat3(name string, m m3.Mat) bool {
	loc := p.Uniform(name)
	if !loc.Valid() {
		return false
	}
	p.ctx.b.UniformMatrix3fv(int32(loc), (*[9]float32)(&m))
	return true
}

func (p *Program) SetInt(name string, v int) bool {
	loc := p.Uniform(name)
	if !loc.Valid() {
		return false
	}
	p.ctx.b.Uniform1i(int32(loc), int32(v))
	return true
}

func (p *Program) SetInts(name string, v []int32) bool {
	loc := p.Uniform(name)
	if !loc.Valid() {
		return false
	}
	p.ctx.b.Uniform1iv(int32(loc), v)
	return true
}

func (p *Program) SetFloat(name string, v float32) bool {
	loc := p.Uniform(name)
	if !loc.Valid() {
		return false
	}
	p.ctx.b.Uniform1f(int32(loc), v)
	return true
}

func (p *Program) SetVec3(name string, v ms3.Vec) bool {
	loc := p.Uniform(name)
	if !loc.Valid() {
		return false
	}
	p.ctx.b.Uniform3f(int32(loc), v.X, v.Y, v.Z)
	return true
}
