// Package caustics renders the animated light pattern projected onto the
// seabed and exposes it as a texture with a stable handle.
package caustics

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/chewxy/math32"
)

const tau = 2 * math32.Pi

// Pattern is an iterated interference pattern, periodic in u and v over
// [0, 1/Scale). The GPU shader evaluates the same formula.
type Pattern struct {
	Scale      float32 // repeats across the unit square
	Speed      float32 // time multiplier
	Iterations int
	Intensity  float32 // brightness multiplier
}

// DefaultPattern returns the pattern tuned for the seabed.
func DefaultPattern() Pattern {
	return Pattern{Scale: 1, Speed: 0.5, Iterations: 5, Intensity: 1}
}

// Sample returns the pattern brightness in [0, 1] at (u, v) and time t.
func (p Pattern) Sample(u, v, t float32) float32 {
	iters := p.Iterations
	if iters < 1 {
		iters = 1
	}
	t = t*p.Speed + 23

	px := math32.Mod(u*p.Scale*tau, tau) - 250
	py := math32.Mod(v*p.Scale*tau, tau) - 250
	ix, iy := px, py
	c := float32(1)
	const inten = 0.005

	for n := 0; n < iters; n++ {
		tn := t * (1 - 3.5/float32(n+1))
		ix, iy = px+math32.Cos(tn-ix)+math32.Sin(tn+iy), py+math32.Sin(tn-iy)+math32.Cos(tn+ix)
		dx := px / (math32.Sin(ix+tn) / inten)
		dy := py / (math32.Cos(iy+tn) / inten)
		c += 1 / math32.Hypot(dx, dy)
	}
	c /= float32(iters)
	c = 1.17 - math32.Pow(c, 1.4)
	c = math32.Pow(math32.Abs(c), 8) * p.Intensity

	switch {
	case c != c, c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}

// Render fills dst with the pattern at time t. The result depends only on
// t and the size of dst.
func (p Pattern) Render(dst *image.RGBA, t float32) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			v := (float32(y) + 0.5) / float32(h)
			for x := 0; x < w; x++ {
				u := (float32(x) + 0.5) / float32(w)
				g := uint8(p.Sample(u, v, t)*255 + 0.5)
				dst.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{R: g, G: g, B: g, A: 255})
			}
		}
	})
}
