package gpu

import "strconv"

// Attribute and uniform names of the generated shaders.
const (
	AttribPosition     = "a_position"
	AttribTexCoord     = "a_texCoord"
	AttribTextureIndex = "a_textureIndex"
	AttribNormal       = "a_normal"

	UniformMatrix        = "u_matrix"
	UniformTextureArray  = "u_textureArray"
	UniformWorld         = "u_world"
	UniformNormalMatrix  = "u_normalMatrix"
	UniformView          = "u_view"
	UniformProjection    = "u_projection"
	UniformLightPosition = "u_lightPosition"
	UniformLightDir      = "u_lightDirection"
	UniformInnerLimit    = "u_innerLimit"
	UniformOuterLimit    = "u_outerLimit"
)

// TexturedSources returns the vertex and fragment sources of the textured
// program. Vertices are transformed by u_matrix and colored by sampling the
// texture unit selected by a_textureIndex. The index attribute is a float so
// it can be fed from the same float buffers as every other attribute; it is
// rounded to a flat int before reaching the fragment stage.
func TexturedSources(header string) (vertex, fragment string) {
	var b []byte
	b = append(b, header...)
	b = append(b, `
in vec4 a_position;
in vec2 a_texCoord;
in float a_textureIndex;

uniform mat4 u_matrix;

out vec2 v_texCoord;
flat out int v_textureIndex;

void main() {
	gl_Position = u_matrix * a_position;
	v_texCoord = a_texCoord;
	v_textureIndex = int(a_textureIndex + 0.5);
}
`...)
	vertex = string(b)

	b = append(b[:0], header...)
	b = append(b, `
in vec2 v_texCoord;
flat in int v_textureIndex;

uniform sampler2D u_textureArray[`...)
	b = strconv.AppendInt(b, NumTextureUnits, 10)
	b = append(b, `];

out vec4 outColor;

void main() {
`...)
	b = appendSampleSwitch(b, "outColor", "v_textureIndex", "v_texCoord")
	b = append(b, "}\n"...)
	fragment = string(b)
	return vertex, fragment
}

// LitSources returns the sources of the textured program lit by a single
// spot light. Positions are transformed by u_projection * u_view * u_world
// and normals by u_normalMatrix. Fragments outside the cone between
// u_outerLimit and u_innerLimit, given as cosines of the cone half angles,
// receive no light.
func LitSources(header string) (vertex, fragment string) {
	var b []byte
	b = append(b, header...)
	b = append(b, `
in vec4 a_position;
in vec3 a_normal;
in vec2 a_texCoord;
in float a_textureIndex;

uniform mat4 u_world;
uniform mat4 u_normalMatrix;
uniform mat4 u_view;
uniform mat4 u_projection;
uniform vec3 u_lightPosition;

out vec3 v_normal;
out vec3 v_surfaceToLight;
out vec2 v_texCoord;
flat out int v_textureIndex;

void main() {
	vec4 world = u_world * a_position;
	gl_Position = u_projection * u_view * world;
	v_normal = mat3(u_normalMatrix) * a_normal;
	v_surfaceToLight = u_lightPosition - world.xyz;
	v_texCoord = a_texCoord;
	v_textureIndex = int(a_textureIndex + 0.5);
}
`...)
	vertex = string(b)

	b = append(b[:0], header...)
	b = append(b, `
in vec3 v_normal;
in vec3 v_surfaceToLight;
in vec2 v_texCoord;
flat in int v_textureIndex;

uniform sampler2D u_textureArray[`...)
	b = strconv.AppendInt(b, NumTextureUnits, 10)
	b = append(b, `];
uniform vec3 u_lightDirection;
uniform float u_innerLimit;
uniform float u_outerLimit;

out vec4 outColor;

void main() {
	vec3 normal = normalize(v_normal);
	vec3 surfaceToLight = normalize(v_surfaceToLight);
	float dotFromDirection = dot(surfaceToLight, -u_lightDirection);
	float inLight = smoothstep(u_outerLimit, u_innerLimit, dotFromDirection);
	float light = inLight * max(dot(normal, surfaceToLight), 0.0);
`...)
	b = appendSampleSwitch(b, "outColor", "v_textureIndex", "v_texCoord")
	b = append(b, "\toutColor.rgb *= light;\n}\n"...)
	fragment = string(b)
	return vertex, fragment
}

// appendSampleSwitch appends the statements sampling u_textureArray at the
// unit selected by index. Sampler arrays cannot be indexed by a non-constant
// expression in GLSL ES so every unit gets its own case. Texels with alpha
// under 0.1, including those of unbound units, yield transparent black.
func appendSampleSwitch(b []byte, dst, index, texCoord string) []byte {
	b = append(b, "\tswitch ("...)
	b = append(b, index...)
	b = append(b, ") {\n"...)
	for i := 0; i < NumTextureUnits; i++ {
		b = append(b, "\tcase "...)
		b = strconv.AppendInt(b, int64(i), 10)
		b = append(b, ":\n\t\t"...)
		b = append(b, dst...)
		b = append(b, " = texture(u_textureArray["...)
		b = strconv.AppendInt(b, int64(i), 10)
		b = append(b, "], "...)
		b = append(b, texCoord...)
		b = append(b, ");\n\t\tbreak;\n"...)
	}
	b = append(b, "\tdefault:\n\t\t"...)
	b = append(b, dst...)
	b = append(b, " = vec4(0.0);\n\t\tbreak;\n\t}\n\tif ("...)
	b = append(b, dst...)
	b = append(b, ".a < 0.1) {\n\t\t"...)
	b = append(b, dst...)
	b = append(b, " = vec4(0.0);\n\t}\n"...)
	return b
}

// TexturedSources returns the textured program sources with the header of
// the Context's backend.
func (c *Context) TexturedSources() (vertex, fragment string) {
	return TexturedSources(c.b.ShaderHeader())
}

// LitSources returns the lit program sources with the header of the
// Context's backend.
func (c *Context) LitSources() (vertex, fragment string) {
	return LitSources(c.b.ShaderHeader())
}
