package lighting

import (
	gomath "math"
	"testing"
)

func TestSunDirectionIsUnit(t *testing.T) {
	for _, tc := range []struct{ phi, theta float32 }{{0, 0}, {45, 90}, {90, -135}, {120, 300}} {
		d := SunDirection(tc.phi, tc.theta)
		if l := d.Length(); gomath.Abs(float64(l-1)) > 1e-5 {
			t.Errorf("SunDirection(%v, %v) length = %v", tc.phi, tc.theta, l)
		}
	}
}

func TestSunDirectionZenith(t *testing.T) {
	d := SunDirection(0, 0)
	if gomath.Abs(float64(d.Y-1)) > 1e-6 {
		t.Errorf("zenith sun = %+v, want +Y", d)
	}
	horizon := SunDirection(90, -135)
	if gomath.Abs(float64(horizon.Y)) > 1e-6 {
		t.Errorf("phi 90 should sit on the horizon, got %+v", horizon)
	}
}

func TestRigUnderwaterLight(t *testing.T) {
	r := NewRig(1.5)
	if r.Underwater.Enabled {
		t.Fatal("underwater light should start disabled")
	}
	if r.Underwater.Radiance() != [3]float32{} {
		t.Error("disabled light should emit nothing")
	}
	r.Underwater.SetEnabled(true)
	if got := r.Underwater.Radiance(); got[2] != 1.5 {
		t.Errorf("radiance = %v", got)
	}
	if r.Underwater.Direction.Y < 0.9 {
		t.Errorf("underwater light should be steep, got %+v", r.Underwater.Direction)
	}
}
