package caustics

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleInRange(t *testing.T) {
	p := DefaultPattern()
	for _, tm := range []float32{0, 0.5, 3, 120} {
		for u := float32(0); u < 1; u += 0.07 {
			for v := float32(0); v < 1; v += 0.07 {
				s := p.Sample(u, v, tm)
				require.GreaterOrEqual(t, s, float32(0))
				require.LessOrEqual(t, s, float32(1))
			}
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	p := DefaultPattern()
	a := image.NewRGBA(image.Rect(0, 0, 64, 64))
	b := image.NewRGBA(image.Rect(0, 0, 64, 64))

	p.Render(a, 1.25)
	p.Render(b, 1.25)
	assert.Equal(t, a.Pix, b.Pix)

	p.Render(b, 2.5)
	assert.NotEqual(t, a.Pix, b.Pix, "pattern should animate")
}

func TestFrameRendererIsDeterministic(t *testing.T) {
	cfg := Config{Resolution: 64, Downsample: 2, Blur: 1}

	r1 := NewFrameRenderer(cfg)
	r2 := NewFrameRenderer(cfg)
	// Render other frames first so reuse of buffers cannot leak state.
	r2.Render(9)
	r2.Render(0.1)

	f1 := r1.Render(4)
	f2 := r2.Render(4)

	assert.Equal(t, float32(4), f1.Time)
	assert.Equal(t, image.Rect(0, 0, 64, 64), f1.Image.Bounds())
	assert.Equal(t, f1.Image.Pix, f2.Image.Pix)
}

func TestFrameRendererReusesImage(t *testing.T) {
	r := NewFrameRenderer(Config{Resolution: 16, Downsample: 1})
	a := r.Render(0).Image
	b := r.Render(1).Image
	assert.Same(t, a, b)
}

func TestConfigNormalized(t *testing.T) {
	cfg := Config{}.normalized()
	assert.Equal(t, 1, cfg.Resolution)
	assert.Equal(t, 1, cfg.Downsample)
	assert.Equal(t, DefaultPattern(), cfg.Pattern)

	r := NewFrameRenderer(Config{Resolution: 8, Downsample: 64})
	assert.Equal(t, 8, r.Size())
	assert.Equal(t, 1, r.small.Bounds().Dx())
}
