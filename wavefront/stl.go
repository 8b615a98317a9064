package wavefront

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// WriteSTL writes the triangles of geoms to w in binary STL format and
// returns the number of bytes written. Facet normals are computed from the
// vertex winding. Colors, texture coordinates and materials are not kept.
func WriteSTL(w io.Writer, geoms []Geometry) (int, error) {
	var nt int64 // int64 so the limit check below works on 32 bit machines.
	for i := range geoms {
		nt += int64(len(geoms[i].Data.Position) / 9)
	}
	if nt == 0 {
		return 0, errors.New("no triangles to write")
	} else if nt > math.MaxUint32 {
		return 0, errors.New("triangle count exceeds STL limit")
	}

	var buf [stlHeaderSize]byte
	binary.LittleEndian.PutUint32(buf[80:], uint32(nt))
	n, err := w.Write(buf[:])
	if err != nil {
		return n, err
	}
	var d stlTriangle
	for i := range geoms {
		pos := geoms[i].Data.Position
		for j := 0; j+8 < len(pos); j += 9 {
			copy(d.Vertex1[:], pos[j:j+3])
			copy(d.Vertex2[:], pos[j+3:j+6])
			copy(d.Vertex3[:], pos[j+6:j+9])
			norm := d.normalFromVertices()
			d.Normal = [3]float32{norm.X, norm.Y, norm.Z}
			if bad3F32(d.Normal) {
				d.Normal = [3]float32{} // Degenerate.
			}
			d.put(buf[:])
			ngot, err := w.Write(buf[:stlTriangleSize])
			n += ngot
			if err != nil {
				return n, err
			} else if ngot != stlTriangleSize {
				return n, io.ErrShortWrite
			}
		}
	}
	return n, nil
}

// ReadSTL reads a binary STL file into a single geometry named
// [DefaultName] with per-vertex facet normals. Triangles whose stored normal
// disagrees with their winding are kept and reported as warnings, with Line
// holding the 1-based triangle number.
func ReadSTL(r io.Reader) (*OBJ, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading STL header: %w", err)
	}
	count := binary.LittleEndian.Uint32(header[80:])
	if count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf      [stlTriangleSize]byte
		d        stlTriangle
		data     GeometryData
		warnings []Warning
	)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%d/%d STL triangles read: %w", i, count, err)
		}
		d.get(buf[:])
		norm, err := d.validate()
		if errors.Is(err, errNormalMismatch) {
			warnings = append(warnings, Warning{Format: "stl", Line: int(i) + 1, Keyword: "facet", Msg: err.Error()})
		} else if err != nil {
			return nil, fmt.Errorf("STL triangle %d: %w", i+1, err)
		}
		data.Position = append(data.Position, d.Vertex1[:]...)
		data.Position = append(data.Position, d.Vertex2[:]...)
		data.Position = append(data.Position, d.Vertex3[:]...)
		for range 3 {
			data.Normal = append(data.Normal, norm.X, norm.Y, norm.Z)
		}
	}
	return &OBJ{
		Geometries: []Geometry{{Object: DefaultName, Groups: []string{DefaultName}, Material: DefaultName, Data: data}},
		Warnings:   warnings,
	}, nil
}

type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

func (t stlTriangle) put(b []byte) {
	_ = b[stlTriangleSize-1] // early bounds check
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0) // Zero out attributes.
}

func (t *stlTriangle) get(b []byte) {
	_ = b[stlTriangleSize-1]
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11]
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11]
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var errNormalMismatch = errors.New("stored normal does not match vertex winding")

// validate returns the normal computed from the vertices. A mismatch with
// the stored normal is reported with errNormalMismatch along with the
// computed normal.
func (t stlTriangle) validate() (ms3.Vec, error) {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return ms3.Vec{}, errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return ms3.Vec{}, errors.New("inf/NaN STL triangle vertex")
	}
	if t.triangle().IsDegenerate(epsilon) {
		return ms3.Vec{}, errors.New("triangle is degenerate")
	}
	got := vecFromArray(t.Normal)
	calc := t.normalFromVertices()
	if !ms3.EqualElem(calc, got, normTol) && !ms3.EqualElem(ms3.Scale(-1, calc), got, normTol) {
		return calc, errNormalMismatch
	}
	return calc, nil
}

func vecFromArray(f [3]float32) ms3.Vec {
	return ms3.Vec{X: f[0], Y: f[1], Z: f[2]}
}

func (t stlTriangle) triangle() ms3.Triangle {
	return ms3.Triangle{vecFromArray(t.Vertex1), vecFromArray(t.Vertex2), vecFromArray(t.Vertex3)}
}

func (t stlTriangle) normalFromVertices() ms3.Vec {
	v1 := ms3.Scale(10, vecFromArray(t.Vertex1))
	v2 := ms3.Scale(10, vecFromArray(t.Vertex2))
	v3 := ms3.Scale(10, vecFromArray(t.Vertex3))
	return ms3.Unit(ms3.Cross(ms3.Sub(v2, v1), ms3.Sub(v3, v1)))
}
