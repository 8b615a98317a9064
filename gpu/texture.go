package gpu

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/soypat/glplay"
)

// NumTextureUnits is the size of the sampler array in the generated
// fragment shaders.
const NumTextureUnits = 6

// TextureUnit is one of the NumTextureUnits texture binding points sampled by
// the generated shaders.
type TextureUnit uint8

const (
	Unit0 TextureUnit = iota
	Unit1
	Unit2
	Unit3
	Unit4
	Unit5
)

// ErrInvalidUnit is returned when binding to a unit outside Unit0..Unit5.
var ErrInvalidUnit = errors.New("invalid texture unit")

// Valid reports whether u is one of Unit0..Unit5.
func (u TextureUnit) Valid() bool { return u < NumTextureUnits }

func (u TextureUnit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("TextureUnit(%d)", uint8(u))
	}
	return fmt.Sprintf("Unit%d", uint8(u))
}

// TextureUnits returns all valid texture units in order.
func TextureUnits() [NumTextureUnits]TextureUnit {
	return [NumTextureUnits]TextureUnit{Unit0, Unit1, Unit2, Unit3, Unit4, Unit5}
}

// CreateTexture allocates a 2D texture that clamps to edge on both axes and
// uses nearest neighbor filtering for minification and magnification with
// no mipmaps, so texels are reproduced exactly. The texture is left bound to
// the active unit.
func (c *Context) CreateTexture() Texture {
	tex := c.b.CreateTexture()
	c.b.BindTexture(glTexture2D, tex)
	c.b.TexParameteri(glTexture2D, glTextureWrapS, glClampToEdge)
	c.b.TexParameteri(glTexture2D, glTextureWrapT, glClampToEdge)
	c.b.TexParameteri(glTexture2D, glTextureMinFilt, glNearest)
	c.b.TexParameteri(glTexture2D, glTextureMagFilt, glNearest)
	c.textures[Texture(tex)] = struct{}{}
	return Texture(tex)
}

// UploadImage replaces the contents of tex with img converted to RGBA8.
func (c *Context) UploadImage(tex Texture, img image.Image) error {
	if _, ok := c.textures[tex]; !ok {
		return fmt.Errorf("upload to unknown texture %d", tex)
	}
	rgba := toRGBA(img)
	b := rgba.Bounds()
	c.b.BindTexture(glTexture2D, uint32(tex))
	c.b.TexImage2D(glTexture2D, b.Dx(), b.Dy(), rgba.Pix)
	return nil
}

// toRGBA returns img as a tightly packed *image.RGBA with origin at 0,0.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// BindTexture binds tex to the given texture unit.
func (c *Context) BindTexture(unit TextureUnit, tex Texture) error {
	if !unit.Valid() {
		return ErrInvalidUnit
	}
	c.b.ActiveTexture(glTexture0 + uint32(unit))
	c.b.BindTexture(glTexture2D, uint32(tex))
	c.units[unit] = tex
	return nil
}

// BoundTexture returns the texture last bound to unit through the Context.
func (c *Context) BoundTexture(unit TextureUnit) (Texture, bool) {
	if !unit.Valid() || c.units[unit] == 0 {
		return 0, false
	}
	return c.units[unit], true
}

// DeleteTexture releases tex and unbinds it from any unit it was bound to.
func (c *Context) DeleteTexture(tex Texture) {
	if _, ok := c.textures[tex]; !ok {
		return
	}
	c.b.DeleteTexture(uint32(tex))
	delete(c.textures, tex)
	for i := range c.units {
		if c.units[i] == tex {
			c.units[i] = 0
		}
	}
	glplay.Logger().Debug("gpu: texture deleted", "handle", uint32(tex))
}

// BindTextureArray points the sampler array uniform name at units 0 through
// NumTextureUnits-1 so that element i samples the texture bound to unit i.
func (p *Program) BindTextureArray(name string) bool {
	var units [NumTextureUnits]int32
	for i := range units {
		units[i] = int32(i)
	}
	return p.SetInts(name, units[:])
}
