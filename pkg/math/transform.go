package math

import "github.com/chewxy/math32"

// Transform is a position, Euler XYZ rotation in radians and scale.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}}
}

// Matrix returns T*R*S.
func (t Transform) Matrix() Mat4 {
	return Compose(t.Position, t.Rotation, t.Scale)
}

// Decompose splits an affine T*R*S matrix back into a Transform with Euler
// XYZ rotation. Shear is lost.
func Decompose(m Mat4) Transform {
	sx := Vec3{m[0], m[1], m[2]}.Length()
	sy := Vec3{m[4], m[5], m[6]}.Length()
	sz := Vec3{m[8], m[9], m[10]}.Length()
	if sx == 0 || sy == 0 || sz == 0 {
		return Transform{Position: m.Translation(), Scale: Vec3{sx, sy, sz}}
	}

	// Rotation part with scale removed, in column-major order.
	r00 := m[0] / sx
	r01, r11, r21 := m[4]/sy, m[5]/sy, m[6]/sy
	r02, r12, r22 := m[8]/sz, m[9]/sz, m[10]/sz

	var rot Vec3
	rot.Y = math32.Asin(clamp(r02, -1, 1))
	if math32.Abs(r02) < 0.9999999 {
		rot.X = math32.Atan2(-r12, r22)
		rot.Z = math32.Atan2(-r01, r00)
	} else {
		rot.X = math32.Atan2(r21, r11)
	}

	return Transform{Position: m.Translation(), Rotation: rot, Scale: Vec3{sx, sy, sz}}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
