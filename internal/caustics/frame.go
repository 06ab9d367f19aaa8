package caustics

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"
)

// Frame is one rendered caustics image and the time it was rendered for.
type Frame struct {
	Image *image.RGBA
	Time  float32
}

// Config sizes the caustics texture.
type Config struct {
	Resolution int     // texture edge in pixels
	Downsample int     // software backend renders at Resolution/Downsample
	Blur       float64 // software backend gaussian radius, 0 disables
	Pattern    Pattern
}

func (c Config) normalized() Config {
	if c.Resolution < 1 {
		c.Resolution = 1
	}
	if c.Downsample < 1 {
		c.Downsample = 1
	}
	if c.Pattern.Iterations == 0 {
		c.Pattern = DefaultPattern()
	}
	return c
}

// FrameRenderer produces caustics frames on the CPU. It reuses one output
// image; each Render overwrites it.
type FrameRenderer struct {
	cfg   Config
	small *image.RGBA
	out   *image.RGBA
}

// NewFrameRenderer allocates the working images for cfg.
func NewFrameRenderer(cfg Config) *FrameRenderer {
	cfg = cfg.normalized()
	side := cfg.Resolution / cfg.Downsample
	if side < 1 {
		side = 1
	}
	return &FrameRenderer{
		cfg:   cfg,
		small: image.NewRGBA(image.Rect(0, 0, side, side)),
		out:   image.NewRGBA(image.Rect(0, 0, cfg.Resolution, cfg.Resolution)),
	}
}

// Render draws the frame for time t.
func (r *FrameRenderer) Render(t float32) Frame {
	r.cfg.Pattern.Render(r.small, t)

	var src image.Image = r.small
	if r.cfg.Blur > 0 {
		src = blur.Gaussian(r.small, r.cfg.Blur)
	}
	if src.Bounds().Eq(r.out.Bounds()) {
		draw.Copy(r.out, image.Point{}, src, src.Bounds(), draw.Src, nil)
	} else {
		draw.ApproxBiLinear.Scale(r.out, r.out.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	return Frame{Image: r.out, Time: t}
}

// Size returns the output edge length.
func (r *FrameRenderer) Size() int {
	return r.cfg.Resolution
}
