package gpu

// Backend is the subset of the OpenGL 3.3 / WebGL2 API the package issues
// commands through. Object handles are non-zero uint32 names, zero meaning
// no object. Enum arguments carry the numeric values shared by OpenGL and
// WebGL2 so implementations may pass them through unchanged.
//
// Implementations live in gpu/gogl for desktop OpenGL and gpu/webgl for the
// browser. A Backend is bound to one rendering context and is not safe for
// concurrent use.
type Backend interface {
	// ShaderHeader returns the #version line and any precision statements
	// prefixed to every generated shader source.
	ShaderHeader() string

	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	// CompileShader compiles shader and reports whether compilation
	// succeeded. On failure infoLog holds the compiler diagnostics.
	CompileShader(shader uint32) (ok bool, infoLog string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	// LinkProgram links program and reports whether linking succeeded. On
	// failure infoLog holds the linker diagnostics.
	LinkProgram(program uint32) (ok bool, infoLog string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// GetUniformLocation and GetAttribLocation return -1 when name is not
	// an active variable of program.
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	UniformMatrix4fv(location int32, m *[16]float32)
	UniformMatrix3fv(location int32, m *[9]float32)
	Uniform1i(location, v int32)
	Uniform1iv(location int32, v []int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)

	CreateTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	// TexImage2D uploads tightly packed RGBA8 pixels to the bound texture.
	TexImage2D(target uint32, width, height int, pix []byte)
	DeleteTexture(texture uint32)

	CreateBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []float32, usage uint32)
	DeleteBuffer(buffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	DrawArrays(mode uint32, first, count int32)
	Enable(capability uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
}

// GL enum values used by the package. They are identical in OpenGL and WebGL2.
const (
	glTexture2D      = 0x0DE1
	glTextureWrapS   = 0x2802
	glTextureWrapT   = 0x2803
	glTextureMinFilt = 0x2801
	glTextureMagFilt = 0x2800
	glClampToEdge    = 0x812F
	glNearest        = 0x2600
	glTexture0       = 0x84C0
	glArrayBuffer    = 0x8892
	glStaticDraw     = 0x88E4
	glTriangles      = 0x0004
	glFloat          = 0x1406
	glColorBufferBit = 0x4000
	glDepthBufferBit = 0x0100
	glDepthTest      = 0x0B71
	glVertexShader   = 0x8B31
	glFragmentShader = 0x8B30
)
