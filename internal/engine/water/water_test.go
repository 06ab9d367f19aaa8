package water

import "testing"

func TestBuildPlane(t *testing.T) {
	p := BuildPlane(-10, 10, -5, 5, -2)

	if p.VertexCount() != 6 {
		t.Fatalf("expected 6 vertices, got %d", p.VertexCount())
	}
	if p.Level != -2 {
		t.Errorf("expected level -2, got %v", p.Level)
	}
	for i := int32(0); i < p.VertexCount(); i++ {
		v := p.Vertices[i*Stride : (i+1)*Stride]
		if v[1] != -2 {
			t.Errorf("vertex %d: expected y -2, got %v", i, v[1])
		}
		if v[0] < -10 || v[0] > 10 || v[2] < -5 || v[2] > 5 {
			t.Errorf("vertex %d out of bounds: %v", i, v[:3])
		}
		if v[3] != 0 || v[4] != 1 || v[5] != 0 {
			t.Errorf("vertex %d: expected up normal, got %v", i, v[3:])
		}
	}
}

func TestBuildPlaneWithPadding(t *testing.T) {
	p := BuildPlaneWithPadding(0, 10, 0, 10, 0, 5)
	minX, maxX := p.Vertices[0], p.Vertices[0]
	for i := 0; i < len(p.Vertices); i += Stride {
		minX = min(minX, p.Vertices[i])
		maxX = max(maxX, p.Vertices[i])
	}
	if minX != -5 || maxX != 15 {
		t.Errorf("expected x range [-5, 15], got [%v, %v]", minX, maxX)
	}
}

// Counter-clockwise winding seen from +Y means the cross product of the
// triangle edges points up.
func TestWinding(t *testing.T) {
	up := UnitPlane()
	if n := triangleNormalY(up.Vertices, 0); n <= 0 {
		t.Errorf("expected up-facing winding, got normal y %v", n)
	}

	down := up.Flip()
	if n := triangleNormalY(down.Vertices, 0); n >= 0 {
		t.Errorf("expected down-facing winding, got normal y %v", n)
	}
	if down.Vertices[4] != -1 {
		t.Errorf("expected flipped normal, got %v", down.Vertices[4])
	}
	if up.Vertices[4] != 1 {
		t.Error("Flip must not modify the source plane")
	}
}

func triangleNormalY(v []float32, tri int) float32 {
	a := v[tri*3*Stride:]
	b := v[(tri*3+1)*Stride:]
	c := v[(tri*3+2)*Stride:]
	e1x, e1z := b[0]-a[0], b[2]-a[2]
	e2x, e2z := c[0]-a[0], c[2]-a[2]
	return e1z*e2x - e1x*e2z
}
