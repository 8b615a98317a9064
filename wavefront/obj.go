package wavefront

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultName is the object, group and material name used for geometry
// declared before any o, g or usemtl statement.
const DefaultName = "default"

// GeometryData holds flat per-vertex attribute arrays ready for upload. Each
// face is fan-triangulated and every triangle vertex is emitted in full, so
// there is no index buffer. Attributes not present in the source are nil.
type GeometryData struct {
	Position []float32 // 3 components per vertex.
	Texcoord []float32 // 2 components per vertex.
	Normal   []float32 // 3 components per vertex.
	// Color holds 3 components per vertex when any position in the file
	// carried an inline color. Vertices without one are black.
	Color []float32
}

// VertexCount returns the number of vertices in d.
func (d GeometryData) VertexCount() int { return len(d.Position) / 3 }

// Geometry is a run of faces sharing object name, groups and material.
type Geometry struct {
	Object   string
	Groups   []string
	Material string
	Data     GeometryData
}

// OBJ is the result of parsing an OBJ file.
type OBJ struct {
	Geometries []Geometry
	// MaterialLibs lists the mtllib statements in order of appearance.
	MaterialLibs []string
	Warnings     []Warning
}

// objParser holds the attribute pools and current state while parsing.
type objParser struct {
	lineParser
	positions [][3]float32
	texcoords [][2]float32
	normals   [][3]float32
	// colors is index aligned with positions.
	colors   [][3]float32
	anyColor bool

	object   string
	groups   []string
	material string
	current  *Geometry

	obj OBJ
}

// ParseOBJ parses Wavefront OBJ text from r. Faces with more than three
// vertices are fan-triangulated as (0, i, i+1). Positive face indices are
// 1-based and negative indices are relative to the end of the attribute pool
// defined so far, -1 being the most recently defined element. Geometries with
// no faces are never emitted.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	p := &objParser{
		lineParser: lineParser{format: "obj"},
		object:     DefaultName,
		groups:     []string{DefaultName},
		material:   DefaultName,
	}
	handlers := map[string]handler{
		"v":      p.vertex,
		"vn":     p.normal,
		"vt":     p.texcoord,
		"f":      p.face,
		"s":      func([]string, string) error { return nil },
		"mtllib": p.mtllib,
		"usemtl": p.usemtl,
		"o":      p.objectName,
		"g":      p.group,
	}
	err := p.parse(r, handlers)
	if err != nil {
		return nil, err
	}
	p.obj.Warnings = p.warnings
	return &p.obj, nil
}

func (p *objParser) vertex(args []string, _ string) error {
	var pos [3]float32
	if err := parseFloats(pos[:], args); err != nil {
		return err
	}
	// The position is kept even when the trailing color is unusable, such as
	// the w component of "v x y z w", so later indices stay in place.
	var color [3]float32
	if len(args) > 3 {
		if err := parseFloats(color[:], args[3:]); err != nil {
			color = [3]float32{}
			p.warn("vertex color ignored: " + err.Error())
		} else {
			p.anyColor = true
		}
	}
	p.positions = append(p.positions, pos)
	p.colors = append(p.colors, color)
	return nil
}

func (p *objParser) normal(args []string, _ string) error {
	var n [3]float32
	if err := parseFloats(n[:], args); err != nil {
		return err
	}
	p.normals = append(p.normals, n)
	return nil
}

func (p *objParser) texcoord(args []string, _ string) error {
	// The v coordinate is optional.
	var uv [2]float32
	n := len(uv)
	if len(args) == 1 {
		n = 1
	}
	if err := parseFloats(uv[:n], args); err != nil {
		return err
	}
	p.texcoords = append(p.texcoords, uv)
	return nil
}

func (p *objParser) mtllib(_ []string, unparsed string) error {
	if unparsed == "" {
		return errors.New("missing library name")
	}
	p.obj.MaterialLibs = append(p.obj.MaterialLibs, unparsed)
	return nil
}

func (p *objParser) usemtl(_ []string, unparsed string) error {
	p.material = unparsed
	p.endGeometry()
	return nil
}

func (p *objParser) objectName(_ []string, unparsed string) error {
	p.object = unparsed
	p.endGeometry()
	return nil
}

func (p *objParser) group(args []string, _ string) error {
	if len(args) == 0 {
		p.groups = []string{DefaultName}
		return nil
	}
	p.groups = append([]string(nil), args...)
	return nil
}

// endGeometry closes the current geometry so the next face starts a new one
// with the current object, groups and material.
func (p *objParser) endGeometry() {
	p.current = nil
}

// geometry returns the geometry faces are currently appended to, creating it
// if needed. Geometries are only created when a face is emitted so none can
// end up empty. The returned pointer is valid until the next endGeometry call.
func (p *objParser) geometry() *Geometry {
	if p.current == nil {
		p.obj.Geometries = append(p.obj.Geometries, Geometry{
			Object:   p.object,
			Groups:   append([]string(nil), p.groups...),
			Material: p.material,
		})
		p.current = &p.obj.Geometries[len(p.obj.Geometries)-1]
	}
	return p.current
}

// vertexRef holds resolved 0-based pool indices of a face vertex. Absent
// texcoord or normal references are -1.
type vertexRef struct {
	pos, tex, norm int
}

func (p *objParser) face(args []string, _ string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
	}
	// Resolve every reference before emitting so a bad face emits nothing.
	refs := make([]vertexRef, len(args))
	for i, arg := range args {
		ref, err := p.resolveVertex(arg)
		if err != nil {
			return err
		}
		refs[i] = ref
	}
	g := p.geometry()
	for i := 1; i+1 < len(refs); i++ {
		p.emit(&g.Data, refs[0])
		p.emit(&g.Data, refs[i])
		p.emit(&g.Data, refs[i+1])
	}
	return nil
}

func (p *objParser) resolveVertex(arg string) (vertexRef, error) {
	ref := vertexRef{tex: -1, norm: -1}
	parts := strings.Split(arg, "/")
	if len(parts) > 3 || parts[0] == "" {
		return ref, fmt.Errorf("malformed vertex reference %q", arg)
	}
	var err error
	ref.pos, err = p.resolve(parts[0], "position", len(p.positions))
	if err != nil {
		return ref, err
	}
	if len(parts) > 1 && parts[1] != "" {
		ref.tex, err = p.resolve(parts[1], "texcoord", len(p.texcoords))
		if err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		ref.norm, err = p.resolve(parts[2], "normal", len(p.normals))
		if err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// resolve converts a 1-based or negative relative reference into a 0-based
// index into a pool of length poolLen.
func (p *objParser) resolve(s, attribute string, poolLen int) (int, error) {
	ref, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s index: %w", attribute, err)
	}
	idx := ref - 1
	if ref < 0 {
		idx = poolLen + ref
	}
	if ref == 0 || idx < 0 || idx >= poolLen {
		return 0, &IndexError{Line: p.line, Attribute: attribute, Ref: ref, PoolLen: poolLen}
	}
	return idx, nil
}

func (p *objParser) emit(d *GeometryData, ref vertexRef) {
	d.Position = append(d.Position, p.positions[ref.pos][:]...)
	if ref.tex >= 0 {
		d.Texcoord = append(d.Texcoord, p.texcoords[ref.tex][:]...)
	}
	if ref.norm >= 0 {
		d.Normal = append(d.Normal, p.normals[ref.norm][:]...)
	}
	if p.anyColor {
		// Pad vertices emitted before the first colored position.
		for want := len(d.Position) - 3; len(d.Color) < want; {
			d.Color = append(d.Color, 0)
		}
		d.Color = append(d.Color, p.colors[ref.pos][:]...)
	}
}
