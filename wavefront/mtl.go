package wavefront

import (
	"errors"
	"io"
	"strconv"
)

// Material holds the recognized properties of an MTL material. Properties
// not present in the source are nil.
type Material struct {
	Name               string
	Shininess          *float32    // Ns
	Ambient            *[3]float32 // Ka
	Diffuse            *[3]float32 // Kd
	Specular           *[3]float32 // Ks
	Emissive           *[3]float32 // Ke
	OpticalDensity     *float32    // Ni
	Opacity            *float32    // d, or 1-Tr when d is absent.
	Transparency       *float32    // Tr
	TransmissionFilter *[3]float32 // Tf
	Illum              *int        // Illumination model.
	// DiffuseMap is the map_Kd texture file name. Map options are ignored.
	DiffuseMap string
}

// MTL is the result of parsing an MTL file.
type MTL struct {
	Materials map[string]*Material
	Warnings  []Warning
}

type mtlParser struct {
	lineParser
	current *Material
	mtl     MTL
}

// ParseMTL parses Wavefront MTL text from r. A later newmtl with a name
// already seen replaces the earlier material. Property statements before the
// first newmtl are ignored.
func ParseMTL(r io.Reader) (*MTL, error) {
	p := &mtlParser{
		lineParser: lineParser{format: "mtl"},
		mtl:        MTL{Materials: make(map[string]*Material)},
	}
	handlers := map[string]handler{
		"newmtl": p.newmtl,
		"Ns":     p.scalar(func(m *Material) **float32 { return &m.Shininess }),
		"Ka":     p.color(func(m *Material) **[3]float32 { return &m.Ambient }),
		"Kd":     p.color(func(m *Material) **[3]float32 { return &m.Diffuse }),
		"Ks":     p.color(func(m *Material) **[3]float32 { return &m.Specular }),
		"Ke":     p.color(func(m *Material) **[3]float32 { return &m.Emissive }),
		"Tf":     p.color(func(m *Material) **[3]float32 { return &m.TransmissionFilter }),
		"Ni":     p.scalar(func(m *Material) **float32 { return &m.OpticalDensity }),
		"d":      p.scalar(func(m *Material) **float32 { return &m.Opacity }),
		"Tr":     p.transparency,
		"illum":  p.illum,
		"map_Kd": p.diffuseMap,
	}
	err := p.parse(r, handlers)
	if err != nil {
		return nil, err
	}
	p.mtl.Warnings = p.warnings
	return &p.mtl, nil
}

func (p *mtlParser) newmtl(_ []string, unparsed string) error {
	if unparsed == "" {
		return errors.New("missing material name")
	}
	p.current = &Material{Name: unparsed}
	p.mtl.Materials[unparsed] = p.current
	return nil
}

func (p *mtlParser) scalar(field func(*Material) **float32) handler {
	return func(args []string, _ string) error {
		if p.current == nil {
			return nil
		}
		v, err := parseFloat(args)
		if err != nil {
			return err
		}
		*field(p.current) = &v
		return nil
	}
}

func (p *mtlParser) color(field func(*Material) **[3]float32) handler {
	return func(args []string, _ string) error {
		if p.current == nil {
			return nil
		}
		var c [3]float32
		if err := parseFloats(c[:], args); err != nil {
			return err
		}
		*field(p.current) = &c
		return nil
	}
}

func (p *mtlParser) transparency(args []string, _ string) error {
	if p.current == nil {
		return nil
	}
	tr, err := parseFloat(args)
	if err != nil {
		return err
	}
	p.current.Transparency = &tr
	if p.current.Opacity == nil {
		d := 1 - tr
		p.current.Opacity = &d
	}
	return nil
}

func (p *mtlParser) illum(args []string, _ string) error {
	if p.current == nil {
		return nil
	}
	if len(args) == 0 {
		return errors.New("missing illumination model")
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	p.current.Illum = &v
	return nil
}

func (p *mtlParser) diffuseMap(args []string, _ string) error {
	if p.current == nil {
		return nil
	}
	if len(args) == 0 {
		return errors.New("missing texture file name")
	}
	// Options such as -s or -o precede the file name.
	p.current.DiffuseMap = args[len(args)-1]
	return nil
}
