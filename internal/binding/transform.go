package binding

import "github.com/Faultbox/divescroll/pkg/math"

// Transformable is implemented by scene nodes and the camera.
type Transformable interface {
	Transform() math.Transform
	SetTransform(math.Transform)
}

// ApplyTransform writes position.*, rotation.* (radians) and scale.*
// channels onto t. Channels that are absent keep their current value.
func ApplyTransform(t Transformable, c Channels) {
	tr := t.Transform()
	setVec(&tr.Position, "position.", c)
	setVec(&tr.Rotation, RotationPrefix, c)
	setVec(&tr.Scale, "scale.", c)
	t.SetTransform(tr)
}

// SeedTransform returns t's current pose as authored channels, with rotation
// in degrees.
func SeedTransform(t Transformable) Channels {
	tr := t.Transform()
	c := Channels{}
	putVec(c, "position.", tr.Position)
	putVec(c, RotationPrefix, tr.Rotation)
	putVec(c, "scale.", tr.Scale)
	return RadiansToDegrees(RotationPrefix)(c)
}

// BindTransform binds target so the sequence object called name drives its
// transform. The rest pose is seeded from the target itself.
func BindTransform[T interface {
	comparable
	Transformable
}](r *Registry, target T, name string) Handle {
	return Bind(r, target, name, SeedTransform(target), DegreesToRadians(RotationPrefix),
		func(t T, c Channels) { ApplyTransform(t, c) })
}

func setVec(v *math.Vec3, prefix string, c Channels) {
	if x, ok := c[prefix+"x"]; ok {
		v.X = x
	}
	if y, ok := c[prefix+"y"]; ok {
		v.Y = y
	}
	if z, ok := c[prefix+"z"]; ok {
		v.Z = z
	}
}

func putVec(c Channels, prefix string, v math.Vec3) {
	c[prefix+"x"] = v.X
	c[prefix+"y"] = v.Y
	c[prefix+"z"] = v.Z
}
