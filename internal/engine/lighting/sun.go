// Package lighting provides the scene's light rig.
package lighting

import "github.com/Faultbox/divescroll/pkg/math"

// SunDirection converts spherical angles in degrees to a unit vector
// pointing towards the sun. phi is measured from the zenith, theta around Y.
func SunDirection(phi, theta float32) math.Vec3 {
	return math.Spherical(1, math.DegToRad(phi), math.DegToRad(theta))
}

// Directional is a directional light. Direction points towards the light.
type Directional struct {
	Direction math.Vec3
	Color     [3]float32
	Intensity float32
	Enabled   bool
}

// SetEnabled turns the light on or off.
func (d *Directional) SetEnabled(on bool) {
	d.Enabled = on
}

// Radiance returns color * intensity, or black when disabled.
func (d *Directional) Radiance() [3]float32 {
	if !d.Enabled {
		return [3]float32{}
	}
	return [3]float32{d.Color[0] * d.Intensity, d.Color[1] * d.Intensity, d.Color[2] * d.Intensity}
}

// Rig is the full light setup uploaded to the scene shaders.
type Rig struct {
	Ambient    [3]float32
	Key        Directional
	Underwater Directional
	// SunDir is where the sky is brightest; the surface shader uses it for
	// the specular glint.
	SunDir math.Vec3
}

// NewRig returns ambient 0.5 white, a white key light from (1,1,1) and a
// disabled steep light for underwater shots.
func NewRig(underwaterIntensity float32) *Rig {
	return &Rig{
		Ambient: [3]float32{0.5, 0.5, 0.5},
		Key: Directional{
			Direction: math.Vec3{X: 1, Y: 1, Z: 1}.Normalize(),
			Color:     [3]float32{1, 1, 1},
			Intensity: 1,
			Enabled:   true,
		},
		Underwater: Directional{
			Direction: math.Vec3{X: 0.15, Y: 1, Z: 0.1}.Normalize(),
			Color:     [3]float32{0.55, 0.85, 1},
			Intensity: underwaterIntensity,
		},
		SunDir: SunDirection(90, -135),
	}
}
