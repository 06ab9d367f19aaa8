package caustics

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/engine/framebuffer"
	"github.com/Faultbox/divescroll/internal/engine/shader"
	"github.com/Faultbox/divescroll/internal/logger"
)

// Compositor regenerates the caustics texture in place every frame.
// Texture returns the same handle for the compositor's lifetime.
type Compositor interface {
	Update(t float32)
	Texture() uint32
	Destroy()
}

// Backend names accepted by New.
const (
	BackendGPU      = "gpu"
	BackendSoftware = "software"
)

// New creates the compositor for backend. It needs a current GL context.
func New(backend string, cfg Config, log *zap.Logger) (Compositor, error) {
	switch backend {
	case BackendGPU, "":
		return NewGPU(cfg, log)
	case BackendSoftware:
		return NewSoftware(cfg, log)
	default:
		return nil, fmt.Errorf("unknown caustics backend %q", backend)
	}
}

// Software renders frames on the CPU and uploads them into one texture.
type Software struct {
	frames *FrameRenderer
	tex    uint32
	last   Frame
	log    *zap.Logger
}

// NewSoftware allocates the texture and working images.
func NewSoftware(cfg Config, log *zap.Logger) (*Software, error) {
	s := &Software{frames: NewFrameRenderer(cfg), log: logger.OrNop(log)}
	size := int32(s.frames.Size())

	gl.GenTextures(1, &s.tex)
	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, size, size, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		s.Destroy()
		return nil, fmt.Errorf("caustics texture: gl error 0x%x", code)
	}

	s.log.Info("caustics compositor ready",
		zap.String("backend", BackendSoftware),
		zap.Int32("resolution", size))
	return s, nil
}

// Update renders the frame for t and uploads it.
func (s *Software) Update(t float32) {
	s.last = s.frames.Render(t)
	img := s.last.Image
	size := int32(img.Bounds().Dx())

	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, size, size, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Texture returns the caustics texture.
func (s *Software) Texture() uint32 {
	return s.tex
}

// Frame returns the last rendered frame.
func (s *Software) Frame() Frame {
	return s.last
}

// Destroy releases the texture.
func (s *Software) Destroy() {
	if s.tex != 0 {
		gl.DeleteTextures(1, &s.tex)
		s.tex = 0
	}
}

// GPU renders the pattern with a fragment shader into a repeat-wrapped
// render target.
type GPU struct {
	fb      *framebuffer.Framebuffer
	program uint32
	vao     uint32
	pattern Pattern

	locTime       int32
	locScale      int32
	locSpeed      int32
	locIntensity  int32
	locIterations int32
}

// NewGPU compiles the pattern shader and allocates the render target.
func NewGPU(cfg Config, log *zap.Logger) (*GPU, error) {
	cfg = cfg.normalized()
	g := &GPU{pattern: cfg.Pattern}

	program, err := shader.CompileProgram(patternVertexShader, patternFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("caustics shader: %w", err)
	}
	g.program = program
	g.locTime = shader.Uniform(program, "uTime")
	g.locScale = shader.Uniform(program, "uScale")
	g.locSpeed = shader.Uniform(program, "uSpeed")
	g.locIntensity = shader.Uniform(program, "uIntensity")
	g.locIterations = shader.Uniform(program, "uIterations")

	size := int32(cfg.Resolution)
	g.fb, err = framebuffer.New(size, size, framebuffer.Options{Repeat: true})
	if err != nil {
		g.Destroy()
		return nil, fmt.Errorf("caustics target: %w", err)
	}

	// The vertex shader derives a fullscreen triangle from gl_VertexID.
	gl.GenVertexArrays(1, &g.vao)

	logger.OrNop(log).Info("caustics compositor ready",
		zap.String("backend", BackendGPU),
		zap.Int32("resolution", size))
	return g, nil
}

// Update renders the pattern for t into the target.
func (g *GPU) Update(t float32) {
	restore := g.fb.BindWithViewport()
	defer restore()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.UseProgram(g.program)
	gl.Uniform1f(g.locTime, t)
	gl.Uniform1f(g.locScale, g.pattern.Scale)
	gl.Uniform1f(g.locSpeed, g.pattern.Speed)
	gl.Uniform1f(g.locIntensity, g.pattern.Intensity)
	gl.Uniform1i(g.locIterations, int32(g.pattern.Iterations))

	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Texture returns the render target's color texture.
func (g *GPU) Texture() uint32 {
	return g.fb.ColorTexture()
}

// Pixels reads back the current texture contents, bottom row first.
func (g *GPU) Pixels() (pixels []byte, width, height int) {
	w, h := g.fb.Size()
	return g.fb.ReadPixels(), int(w), int(h)
}

// Destroy releases the shader, target and vertex array.
func (g *GPU) Destroy() {
	if g.fb != nil {
		g.fb.Destroy()
		g.fb = nil
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.program != 0 {
		gl.DeleteProgram(g.program)
		g.program = 0
	}
}
