package math

import "github.com/chewxy/math32"

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * (math32.Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * (180 / math32.Pi)
}

// Spherical returns the point at radius r, polar angle phi (from +Y) and
// azimuth theta (around Y, from +Z). Angles are in radians.
func Spherical(r, phi, theta float32) Vec3 {
	sinPhi := math32.Sin(phi)
	return Vec3{
		X: r * sinPhi * math32.Sin(theta),
		Y: r * math32.Cos(phi),
		Z: r * sinPhi * math32.Cos(theta),
	}
}
