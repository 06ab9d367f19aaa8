// Package camera provides the perspective camera driven by the timeline.
package camera

import (
	"github.com/Faultbox/divescroll/pkg/math"
)

// Perspective is a free camera positioned by a transform with Euler XYZ
// rotation. Scale is ignored.
type Perspective struct {
	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Rotation math.Vec3 // radians

	// MoveSpeed is the authoring nudge speed in units per second.
	MoveSpeed float32
}

// NewPerspective creates a camera with fov 60, near 0.1, far 10000 at (0,0,5).
func NewPerspective(aspect float32) *Perspective {
	return &Perspective{
		FovY:      60,
		Aspect:    aspect,
		Near:      0.1,
		Far:       10000,
		Position:  math.Vec3{Z: 5},
		MoveSpeed: 10,
	}
}

// Transform returns the camera pose with unit scale.
func (c *Perspective) Transform() math.Transform {
	return math.Transform{Position: c.Position, Rotation: c.Rotation, Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// SetTransform sets position and rotation.
func (c *Perspective) SetTransform(t math.Transform) {
	c.Position = t.Position
	c.Rotation = t.Rotation
}

// World returns the camera-to-world matrix.
func (c *Perspective) World() math.Mat4 {
	return math.Compose(c.Position, c.Rotation, math.Vec3{X: 1, Y: 1, Z: 1})
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return c.World().Inverse()
}

// ProjMatrix returns the projection matrix.
func (c *Perspective) ProjMatrix() math.Mat4 {
	return math.Perspective(math.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *Perspective) ViewProj() math.Mat4 {
	return c.ProjMatrix().Mul(c.ViewMatrix())
}

// SetAspect updates the aspect ratio after a resize.
func (c *Perspective) SetAspect(width, height int) {
	if height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Forward returns the viewing direction in world space.
func (c *Perspective) Forward() math.Vec3 {
	d := c.World().TransformDirection([3]float32{0, 0, -1})
	return math.Vec3{X: d[0], Y: d[1], Z: d[2]}.Normalize()
}

// Right returns the camera's right direction in world space.
func (c *Perspective) Right() math.Vec3 {
	d := c.World().TransformDirection([3]float32{1, 0, 0})
	return math.Vec3{X: d[0], Y: d[1], Z: d[2]}.Normalize()
}

// Move nudges the camera along its own axes; up is world Y.
func (c *Perspective) Move(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	delta := c.Forward().Scale(forward * step).
		Add(c.Right().Scale(right * step)).
		Add(math.Vec3{Y: up * step})
	c.Position = c.Position.Add(delta)
}

// Turn rotates by pitch and yaw in radians.
func (c *Perspective) Turn(pitch, yaw float32) {
	c.Rotation.X += pitch
	c.Rotation.Y += yaw
}
