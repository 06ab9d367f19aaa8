// Package water provides the flat plane geometry used for the sea surface
// and the seabed.
package water

// Stride is the number of floats per vertex: position (3) then normal (3).
const Stride = 6

// Plane holds plane geometry ready for GPU upload.
type Plane struct {
	Vertices []float32 // two triangles, Stride floats per vertex
	Level    float32   // Y of the plane in world coordinates
}

// BuildPlane creates a horizontal plane covering the given bounds at level,
// facing up.
func BuildPlane(minX, maxX, minZ, maxZ, level float32) *Plane {
	y := level
	corners := [6][2]float32{
		{minX, minZ}, {minX, maxZ}, {maxX, maxZ},
		{minX, minZ}, {maxX, maxZ}, {maxX, minZ},
	}

	vertices := make([]float32, 0, len(corners)*Stride)
	for _, c := range corners {
		vertices = append(vertices, c[0], y, c[1], 0, 1, 0)
	}

	return &Plane{
		Vertices: vertices,
		Level:    level,
	}
}

// BuildPlaneWithPadding creates a plane with padding around the bounds.
func BuildPlaneWithPadding(minX, maxX, minZ, maxZ, level, padding float32) *Plane {
	return BuildPlane(
		minX-padding,
		maxX+padding,
		minZ-padding,
		maxZ+padding,
		level,
	)
}

// UnitPlane is a 1x1 plane centered on the origin, meant to be scaled by the
// owning node.
func UnitPlane() *Plane {
	return BuildPlane(-0.5, 0.5, -0.5, 0.5, 0)
}

// VertexCount returns the number of vertices in the plane.
func (p *Plane) VertexCount() int32 {
	return int32(len(p.Vertices) / Stride)
}

// Flip reverses the winding and the normals so the plane faces down. The
// underside of the sea surface uses it.
func (p *Plane) Flip() *Plane {
	out := make([]float32, len(p.Vertices))
	n := len(p.Vertices) / Stride
	for i := 0; i < n; i += 3 {
		// swap the 2nd and 3rd vertex of each triangle
		order := [3]int{i, i + 2, i + 1}
		for j, src := range order {
			copy(out[(i+j)*Stride:], p.Vertices[src*Stride:(src+1)*Stride])
			out[(i+j)*Stride+4] = -out[(i+j)*Stride+4]
		}
	}
	return &Plane{Vertices: out, Level: p.Level}
}
