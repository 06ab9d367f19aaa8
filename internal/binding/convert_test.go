package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/divescroll/pkg/math"
)

func TestDegreesRadiansRoundTrip(t *testing.T) {
	toRad := DegreesToRadians(RotationPrefix)
	toDeg := RadiansToDegrees(RotationPrefix)

	for deg := float32(-360); deg <= 360; deg += 7.5 {
		in := Channels{"rotation.y": deg, "position.y": deg}
		out := toDeg(toRad(in))

		assert.InDelta(t, deg, out["rotation.y"], 1e-3, "angle %v", deg)
		assert.Equal(t, deg, out["position.y"], "non-rotation channels pass through")
	}
}

func TestDegreesToRadiansDoesNotMutate(t *testing.T) {
	in := Channels{"rotation.x": 180}
	out := DegreesToRadians(RotationPrefix)(in)

	assert.Equal(t, float32(180), in["rotation.x"])
	assert.InDelta(t, 3.14159, out["rotation.x"], 1e-4)
}

func TestSeedTransform(t *testing.T) {
	n := newNode("Camera")
	n.tr.Position = math.Vec3{Z: 5}
	n.tr.Rotation = math.Vec3{Y: math.DegToRad(90)}

	seed := SeedTransform(n)
	assert.InDelta(t, 90, seed["rotation.y"], 1e-4)
	assert.Equal(t, float32(5), seed["position.z"])
	assert.Equal(t, float32(1), seed["scale.x"])
}

func TestBindTransformConvertsRotation(t *testing.T) {
	r := NewRegistry(nil)
	cam := newNode("Camera")
	BindTransform(r, cam, "Camera")

	r.ApplyAll(map[string]map[string]float32{"Camera": {"rotation.x": -90, "position.y": 3}})

	assert.InDelta(t, -1.570796, cam.tr.Rotation.X, 1e-5)
	assert.Equal(t, float32(3), cam.tr.Position.Y)
}
