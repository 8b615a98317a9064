package wavefront

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Extents returns the axis aligned bounding box of a flat xyz position
// array. It returns false when positions holds no complete vertex.
func Extents(positions []float32) (ms3.Box, bool) {
	if len(positions) < 3 {
		return ms3.Box{}, false
	}
	inf := math32.Inf(1)
	bb := ms3.Box{
		Min: ms3.Vec{X: inf, Y: inf, Z: inf},
		Max: ms3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
	for i := 0; i+2 < len(positions); i += 3 {
		v := ms3.Vec{X: positions[i], Y: positions[i+1], Z: positions[i+2]}
		bb.Min = ms3.MinElem(bb.Min, v)
		bb.Max = ms3.MaxElem(bb.Max, v)
	}
	return bb, true
}

// GeometriesExtents returns the bounding box enclosing all geometries.
func GeometriesExtents(geoms []Geometry) (ms3.Box, bool) {
	var (
		bb    ms3.Box
		found bool
	)
	for i := range geoms {
		gbb, ok := Extents(geoms[i].Data.Position)
		if !ok {
			continue
		}
		if !found {
			bb, found = gbb, true
			continue
		}
		bb.Min = ms3.MinElem(bb.Min, gbb.Min)
		bb.Max = ms3.MaxElem(bb.Max, gbb.Max)
	}
	return bb, found
}

// ShadeGroups returns an RGBA byte array of vertexCount colors where each run
// of vertsPerColor vertices shares a random gray between 128 and 255. It is
// used to tell triangles or faces apart on geometry that has no color of its
// own. rnd must return values in [0,1), math/rand.Float64 for example.
func ShadeGroups(vertexCount, vertsPerColor int, rnd func() float64) []uint8 {
	if vertsPerColor < 1 {
		vertsPerColor = 1
	}
	colors := make([]uint8, 0, 4*vertexCount)
	var shade uint8
	for i := 0; i < vertexCount; i++ {
		if i%vertsPerColor == 0 {
			shade = uint8(128 + rnd()*128)
		}
		colors = append(colors, shade, shade, shade, 255)
	}
	return colors
}
