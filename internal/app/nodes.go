package app

import (
	"github.com/Faultbox/divescroll/internal/config"
	"github.com/Faultbox/divescroll/internal/engine/scene"
	"github.com/Faultbox/divescroll/pkg/math"
)

// Node names the sequence can address besides the model's own nodes.
const (
	CameraObject  = "Camera"
	HeadingObject = "Heading"
)

// headingChildren are the model nodes moved under the heading group.
var headingChildren = []string{"intro_title", "intro_sub"}

// Nodes are the scene pieces built before any model loads.
type Nodes struct {
	Surface   *scene.Node // sea surface seen from above
	Underside *scene.Node // sea surface seen from below
	Seabed    *scene.Node
	Heading   *scene.Node // group for the intro texts
}

var seabedColor = [3]float32{0.55, 0.50, 0.38}

// buildEnvironment adds the sea surface, seabed and heading group to g.
func buildEnvironment(cfg *config.Config, g *scene.Graph) Nodes {
	level := cfg.Environment.WaterLevel
	size := cfg.Scene.SurfaceSize
	water := cfg.Scene.WaterColor

	surface := scene.NewNode("SeaSurface")
	surface.Shape = scene.ShapeSurface
	surface.Size = math.Vec3{X: size, Y: 1, Z: size}
	surface.Color = water
	surface.Opacity = 0.85
	surface.SetTransform(at(0, level, 0))

	underside := scene.NewNode("SeaUnderside")
	underside.Shape = scene.ShapeUnderside
	underside.Size = surface.Size
	underside.Color = [3]float32{water[0] * 0.6, water[1] * 0.6, water[2] * 0.6}
	underside.Opacity = 0.9
	underside.SetTransform(at(0, level, 0))

	seabed := scene.NewNode("Seabed")
	seabed.Shape = scene.ShapeSeabed
	seabed.Size = math.Vec3{X: size, Y: 1, Z: size}
	seabed.Color = seabedColor
	seabed.SetTransform(at(0, level-cfg.Scene.SeabedDepth, 0))

	heading := scene.NewNode(HeadingObject)
	heading.SetTransform(at(0, -20, 0))

	for _, n := range []*scene.Node{surface, underside, seabed, heading} {
		g.Add(n)
	}
	return Nodes{Surface: surface, Underside: underside, Seabed: seabed, Heading: heading}
}

func at(x, y, z float32) math.Transform {
	t := math.NewTransform()
	t.Position = math.Vec3{X: x, Y: y, Z: z}
	return t
}
