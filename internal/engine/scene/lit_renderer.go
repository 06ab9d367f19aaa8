package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/divescroll/internal/engine/scene/shaders"
	"github.com/Faultbox/divescroll/internal/engine/shader"
	"github.com/Faultbox/divescroll/internal/engine/water"
	"github.com/Faultbox/divescroll/pkg/math"
)

// LitRenderer draws box and seabed nodes with ambient plus directional
// lighting, fog and, when built with caustics, the caustics overlay.
type LitRenderer struct {
	program  uint32
	caustics bool

	locViewProj  int32
	locModel     int32
	locColor     int32
	locAmbient   int32
	locKeyDir    int32
	locKeyColor  int32
	locFillDir   int32
	locFillColor int32
	locCameraPos int32

	locFogEnabled int32
	locFogColor   int32
	locFogDensity int32

	locCaustics          int32
	locCausticsTiling    int32
	locCausticsIntensity int32
	locCausticsTint      int32
	locWaterLevel        int32

	cube  *mesh
	plane *mesh
}

// NewLitRenderer compiles the lit program. With caustics set the CAUSTICS
// variant is compiled instead of the plain one.
func NewLitRenderer(caustics bool) (*LitRenderer, error) {
	var defines []string
	if caustics {
		defines = append(defines, shaders.CausticsDefine)
	}
	program, err := shader.CompileVariant(shaders.LitVertexShader, shaders.LitFragmentShader, defines...)
	if err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}

	lr := &LitRenderer{program: program, caustics: caustics}

	lr.locViewProj = shader.Uniform(program, "uViewProj")
	lr.locModel = shader.Uniform(program, "uModel")
	lr.locColor = shader.Uniform(program, "uColor")
	lr.locAmbient = shader.Uniform(program, "uAmbient")
	lr.locKeyDir = shader.Uniform(program, "uKeyDir")
	lr.locKeyColor = shader.Uniform(program, "uKeyColor")
	lr.locFillDir = shader.Uniform(program, "uFillDir")
	lr.locFillColor = shader.Uniform(program, "uFillColor")
	lr.locCameraPos = shader.Uniform(program, "uCameraPos")
	lr.locFogEnabled = shader.Uniform(program, "uFogEnabled")
	lr.locFogColor = shader.Uniform(program, "uFogColor")
	lr.locFogDensity = shader.Uniform(program, "uFogDensity")
	lr.locCaustics = shader.Uniform(program, "uCaustics")
	lr.locCausticsTiling = shader.Uniform(program, "uCausticsTiling")
	lr.locCausticsIntensity = shader.Uniform(program, "uCausticsIntensity")
	lr.locCausticsTint = shader.Uniform(program, "uCausticsTint")
	lr.locWaterLevel = shader.Uniform(program, "uWaterLevel")

	lr.cube = newMesh(cubeVertices())
	lr.plane = newMesh(water.UnitPlane().Vertices)

	return lr, nil
}

// Caustics reports whether the caustics variant is active.
func (lr *LitRenderer) Caustics() bool {
	return lr.caustics
}

// Begin binds the program and uploads the per-frame uniforms.
func (lr *LitRenderer) Begin(f *Frame) {
	gl.UseProgram(lr.program)
	gl.Disable(gl.BLEND)

	gl.UniformMatrix4fv(lr.locViewProj, 1, false, &f.ViewProj[0])
	gl.Uniform3f(lr.locCameraPos, f.CameraPos.X, f.CameraPos.Y, f.CameraPos.Z)

	if f.Lights != nil {
		rig := f.Lights
		gl.Uniform3f(lr.locAmbient, rig.Ambient[0], rig.Ambient[1], rig.Ambient[2])
		key := rig.Key.Radiance()
		gl.Uniform3f(lr.locKeyDir, rig.Key.Direction.X, rig.Key.Direction.Y, rig.Key.Direction.Z)
		gl.Uniform3f(lr.locKeyColor, key[0], key[1], key[2])
		fill := rig.Underwater.Radiance()
		gl.Uniform3f(lr.locFillDir, rig.Underwater.Direction.X, rig.Underwater.Direction.Y, rig.Underwater.Direction.Z)
		gl.Uniform3f(lr.locFillColor, fill[0], fill[1], fill[2])
	}

	setFog(lr.locFogEnabled, lr.locFogColor, lr.locFogDensity, f.Fog)

	if lr.caustics {
		c := f.Caustics
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, c.Texture)
		gl.Uniform1i(lr.locCaustics, 0)
		gl.Uniform1f(lr.locCausticsTiling, c.Tiling)
		gl.Uniform1f(lr.locCausticsIntensity, c.Intensity)
		gl.Uniform3f(lr.locCausticsTint, c.Tint[0], c.Tint[1], c.Tint[2])
		gl.Uniform1f(lr.locWaterLevel, c.WaterLevel)
	}
}

// Draw renders one node. Nodes of other shapes are ignored.
func (lr *LitRenderer) Draw(n *Node, world math.Mat4) {
	var m *mesh
	switch n.Shape {
	case ShapeBox:
		m = lr.cube
	case ShapeSeabed:
		m = lr.plane
	default:
		return
	}

	model := world.Mul(math.Scale(n.Size.X, n.Size.Y, n.Size.Z))
	gl.UniformMatrix4fv(lr.locModel, 1, false, &model[0])
	gl.Uniform3f(lr.locColor, n.Color[0], n.Color[1], n.Color[2])
	m.draw()
}

// Destroy releases all resources.
func (lr *LitRenderer) Destroy() {
	lr.cube.destroy()
	lr.plane.destroy()
	if lr.program != 0 {
		gl.DeleteProgram(lr.program)
		lr.program = 0
	}
}

func setFog(locEnabled, locColor, locDensity int32, fog Fog) {
	if !fog.Enabled {
		gl.Uniform1i(locEnabled, 0)
		return
	}
	gl.Uniform1i(locEnabled, 1)
	gl.Uniform3f(locColor, fog.Color[0], fog.Color[1], fog.Color[2])
	gl.Uniform1f(locDensity, fog.Density)
}
