// Package scene holds the node graph and draws it: lit boxes and seabed
// with optional caustics, then the translucent sea surface.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/divescroll/internal/engine/lighting"
	"github.com/Faultbox/divescroll/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Width      int32
	Height     int32
	Background [3]float32
	// Caustics compiles the lit program with the caustics block.
	Caustics bool
}

// Fog is the fog applied to every shader this frame.
type Fog struct {
	Enabled bool
	Color   [3]float32
	Density float32
}

// Caustics are the caustics parameters for the lit program.
type Caustics struct {
	Texture    uint32
	Tiling     float32
	Intensity  float32
	Tint       [3]float32
	WaterLevel float32
}

// Frame is everything a render pass needs besides the graph.
type Frame struct {
	ViewProj  math.Mat4
	CameraPos math.Vec3
	Lights    *lighting.Rig
	Fog       Fog
	Caustics  Caustics
	Time      float32
}

// Scene manages the graph and its renderers.
type Scene struct {
	config Config
	graph  *Graph

	litRenderer   *LitRenderer
	waterRenderer *WaterRenderer

	// scratch lists reused across frames
	lit   []drawItem
	water []drawItem
}

type drawItem struct {
	node  *Node
	world math.Mat4
}

// New creates a new scene with the given configuration.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		config: cfg,
		graph:  NewGraph(),
	}

	var err error
	s.litRenderer, err = NewLitRenderer(cfg.Caustics)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating lit renderer: %w", err)
	}

	s.waterRenderer, err = NewWaterRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating water renderer: %w", err)
	}

	return s, nil
}

// Graph returns the insertion point for nodes and models.
func (s *Scene) Graph() *Graph {
	return s.graph
}

// Resize updates the viewport size.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = width
	s.config.Height = height
}

// Render draws the graph into the bound framebuffer.
func (s *Scene) Render(f *Frame) {
	s.lit = s.lit[:0]
	s.water = s.water[:0]
	s.graph.Root().Walk(func(n *Node, world math.Mat4) {
		switch n.Shape {
		case ShapeBox, ShapeSeabed:
			s.lit = append(s.lit, drawItem{n, world})
		case ShapeSurface, ShapeUnderside:
			s.water = append(s.water, drawItem{n, world})
		}
	})

	gl.Viewport(0, 0, s.config.Width, s.config.Height)
	bg := s.config.Background
	if f.Fog.Enabled {
		bg = f.Fog.Color
	}
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// Enable depth testing
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)

	if len(s.lit) > 0 {
		s.litRenderer.Begin(f)
		for _, it := range s.lit {
			s.litRenderer.Draw(it.node, it.world)
		}
	}

	if len(s.water) > 0 {
		gl.DepthMask(false)
		s.waterRenderer.Begin(f)
		for _, it := range s.water {
			s.waterRenderer.Draw(it.node, it.world)
		}
		s.waterRenderer.End()
		gl.DepthMask(true)
	}
}

// Capture reads the bound framebuffer back as top-to-bottom RGBA rows.
func (s *Scene) Capture() ([]byte, int32, int32) {
	width, height := s.config.Width, s.config.Height
	pixels := make([]byte, int(width)*int(height)*4)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return FlipRows(pixels, int(width), int(height)), width, height
}

// FlipRows returns a copy of RGBA pixels with the row order reversed. GL
// reads bottom-up.
func FlipRows(pixels []byte, width, height int) []byte {
	rowSize := width * 4
	flipped := make([]byte, len(pixels))
	for y := 0; y < height; y++ {
		srcRow := (height - 1 - y) * rowSize
		dstRow := y * rowSize
		copy(flipped[dstRow:dstRow+rowSize], pixels[srcRow:srcRow+rowSize])
	}
	return flipped
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.litRenderer != nil {
		s.litRenderer.Destroy()
	}
	if s.waterRenderer != nil {
		s.waterRenderer.Destroy()
	}
}
