package ui2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"
)

func TestGlyphUV(t *testing.T) {
	f := newFontAtlas(basicfont.Face7x13)
	h := float32(f.atlas.Bounds().Dy())

	u0, v0, u1, v1 := f.GetGlyphUV('A')
	assert.Equal(t, float32(0), u0)
	assert.Equal(t, float32(1), u1) // the mask is exactly one glyph wide
	assert.InDelta(t, float32(('A'-' ')*13)/h, v0, 1e-6)
	assert.InDelta(t, float32(('A'-' '+1)*13)/h, v1, 1e-6)

	// unknown runes draw as '?'
	_, qv0, _, _ := f.GetGlyphUV('?')
	_, xv0, _, _ := f.GetGlyphUV('世')
	assert.Equal(t, qv0, xv0)
}

func TestFontAtlasAlpha(t *testing.T) {
	f := newFontAtlas(basicfont.Face7x13)
	b := f.atlas.Bounds()

	var inked int
	for i := 3; i < len(f.atlas.Pix); i += 4 {
		if f.atlas.Pix[i] != 0 {
			inked++
		}
	}
	assert.Positive(t, inked)
	assert.Less(t, inked, b.Dx()*b.Dy())
}

func TestMeasureText(t *testing.T) {
	f := newFontAtlas(basicfont.Face7x13)

	w, h := f.MeasureText("abc", 1)
	assert.Equal(t, float32(21), w)
	assert.Equal(t, float32(13), h)

	w, h = f.MeasureText("ab\nlonger", 2)
	assert.Equal(t, float32(6*7*2), w)
	assert.Equal(t, float32(2*13*2), h)
}

func TestAppendQuad(t *testing.T) {
	solid := appendQuad(nil, 10, 20, 4, 2, nil, ColorWhite)
	assert.Len(t, solid, 6*7)
	assert.Equal(t, []float32{14, 22, 0}, solid[2*7:2*7+3])

	uv := [4]float32{0, 0.5, 1, 0.75}
	text := appendQuad(nil, 0, 0, 1, 1, &uv, ColorWhite)
	assert.Len(t, text, 6*9)
	assert.Equal(t, []float32{1, 0.75}, text[2*9+3:2*9+5])
}

func TestOrthoCorners(t *testing.T) {
	m := ortho(200, 100)
	project := func(x, y float32) (float32, float32) {
		return m[0]*x + m[12], m[5]*y + m[13]
	}

	x, y := project(0, 0)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)
	x, y = project(200, 100)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)
}
