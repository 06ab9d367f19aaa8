package ui2d

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// Font is a fixed-width bitmap font uploaded as one texture. Glyphs are
// stacked vertically in the atlas.
type Font struct {
	face  *basicfont.Face
	atlas *image.RGBA
	tex   uint32
}

// NewFont uploads the 7x13 basic font. It needs a current GL context.
func NewFont() *Font {
	f := newFontAtlas(basicfont.Face7x13)
	b := f.atlas.Bounds()

	gl.GenTextures(1, &f.tex)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.atlas.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// newFontAtlas renders the face mask as white RGBA with the glyph coverage
// in alpha.
func newFontAtlas(face *basicfont.Face) *Font {
	b := face.Mask.Bounds()
	atlas := image.NewRGBA(b)
	draw.DrawMask(atlas, b, image.White, image.Point{}, face.Mask, b.Min, draw.Src)
	return &Font{face: face, atlas: atlas}
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 {
	return f.tex
}

// GlyphSize returns the advance, the drawn glyph width and the line height
// in pixels.
func (f *Font) GlyphSize() (advance, width, height int) {
	return f.face.Advance, f.face.Width, f.face.Height
}

// glyphIndex returns the atlas row of r, falling back to '?'.
func (f *Font) glyphIndex(r rune) int {
	for _, rg := range f.face.Ranges {
		if r >= rg.Low && r < rg.High {
			return rg.Offset + int(r-rg.Low)
		}
	}
	if r != '?' {
		return f.glyphIndex('?')
	}
	return 0
}

// GetGlyphUV returns the atlas texture coordinates of r.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	b := f.atlas.Bounds()
	i := f.glyphIndex(r)
	h := float32(f.face.Height)
	u1 = float32(f.face.Width) / float32(b.Dx())
	v0 = float32(i) * h / float32(b.Dy())
	v1 = float32(i+1) * h / float32(b.Dy())
	return 0, v0, u1, v1
}

// MeasureText returns the size of text drawn at scale.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, longest, cur := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > longest {
			longest = cur
		}
	}
	return float32(longest*f.face.Advance) * scale, float32(lines*f.face.Height) * scale
}

// Close releases the texture.
func (f *Font) Close() {
	if f.tex != 0 {
		gl.DeleteTextures(1, &f.tex)
		f.tex = 0
	}
}
