package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/divescroll/internal/engine/scene/shaders"
	"github.com/Faultbox/divescroll/internal/engine/shader"
	"github.com/Faultbox/divescroll/internal/engine/water"
	"github.com/Faultbox/divescroll/pkg/math"
)

// WaterRenderer draws the sea surface from above and from below.
type WaterRenderer struct {
	program uint32

	locViewProj   int32
	locModel      int32
	locColor      int32
	locSunDir     int32
	locCameraPos  int32
	locTime       int32
	locFogEnabled int32
	locFogColor   int32
	locFogDensity int32

	top    *mesh
	bottom *mesh
}

// NewWaterRenderer creates a new water renderer.
func NewWaterRenderer() (*WaterRenderer, error) {
	program, err := shader.CompileProgram(shaders.WaterVertexShader, shaders.WaterFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}

	wr := &WaterRenderer{program: program}

	wr.locViewProj = shader.Uniform(program, "uViewProj")
	wr.locModel = shader.Uniform(program, "uModel")
	wr.locColor = shader.Uniform(program, "uColor")
	wr.locSunDir = shader.Uniform(program, "uSunDir")
	wr.locCameraPos = shader.Uniform(program, "uCameraPos")
	wr.locTime = shader.Uniform(program, "uTime")
	wr.locFogEnabled = shader.Uniform(program, "uFogEnabled")
	wr.locFogColor = shader.Uniform(program, "uFogColor")
	wr.locFogDensity = shader.Uniform(program, "uFogDensity")

	plane := water.UnitPlane()
	wr.top = newMesh(plane.Vertices)
	wr.bottom = newMesh(plane.Flip().Vertices)

	return wr, nil
}

// Begin binds the program, enables blending and uploads per-frame uniforms.
func (wr *WaterRenderer) Begin(f *Frame) {
	gl.UseProgram(wr.program)

	// Enable blending for transparency
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UniformMatrix4fv(wr.locViewProj, 1, false, &f.ViewProj[0])
	gl.Uniform3f(wr.locCameraPos, f.CameraPos.X, f.CameraPos.Y, f.CameraPos.Z)
	gl.Uniform1f(wr.locTime, f.Time)
	if f.Lights != nil {
		sun := f.Lights.SunDir
		gl.Uniform3f(wr.locSunDir, sun.X, sun.Y, sun.Z)
	}
	setFog(wr.locFogEnabled, wr.locFogColor, wr.locFogDensity, f.Fog)
}

// Draw renders one surface node. Nodes of other shapes are ignored.
func (wr *WaterRenderer) Draw(n *Node, world math.Mat4) {
	var m *mesh
	switch n.Shape {
	case ShapeSurface:
		m = wr.top
	case ShapeUnderside:
		m = wr.bottom
	default:
		return
	}

	model := world.Mul(math.Scale(n.Size.X, 1, n.Size.Z))
	gl.UniformMatrix4fv(wr.locModel, 1, false, &model[0])
	gl.Uniform4f(wr.locColor, n.Color[0], n.Color[1], n.Color[2], n.Opacity)
	m.draw()
}

// End restores the blend state.
func (wr *WaterRenderer) End() {
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (wr *WaterRenderer) Destroy() {
	wr.top.destroy()
	wr.bottom.destroy()
	if wr.program != 0 {
		gl.DeleteProgram(wr.program)
		wr.program = 0
	}
}
