package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for deg := float32(-360); deg <= 360; deg += 7.5 {
		back := RadToDeg(DegToRad(deg))
		if math.Abs(float64(back-deg)) > 1e-3 {
			t.Errorf("round trip %v: got %v", deg, back)
		}
	}
	if got := DegToRad(180); math.Abs(float64(got)-math.Pi) > 1e-6 {
		t.Errorf("DegToRad(180) = %v, want pi", got)
	}
}

func TestSpherical(t *testing.T) {
	// phi = 90 degrees puts the point on the horizon.
	p := Spherical(1, DegToRad(90), DegToRad(-135))
	if math.Abs(float64(p.Y)) > 1e-6 {
		t.Errorf("Spherical Y = %v, want 0", p.Y)
	}
	if l := p.Length(); math.Abs(float64(l-1)) > 1e-5 {
		t.Errorf("Spherical length = %v, want 1", l)
	}
	if p.X >= 0 || p.Z >= 0 {
		t.Errorf("theta -135 should point to -X,-Z, got %v", p)
	}
}
