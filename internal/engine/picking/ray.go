// Package picking casts rays from the cursor into the scene graph.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/divescroll/internal/engine/scene"
	"github.com/Faultbox/divescroll/pkg/math"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay returns the world-space ray through the pixel (x, y) of a
// viewport of width by height, with y growing downwards.
func ScreenToRay(x, y, width, height float32, invViewProj math.Mat4) Ray {
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	near := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectAABB returns the distance along r to box. A ray starting inside
// the box reports the exit distance.
func (r Ray) IntersectAABB(box AABB) (float32, bool) {
	o, d := r.Origin.Arr(), r.Direction.Arr()
	lo, hi := box.Min.Arr(), box.Max.Arr()

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Bounds returns the world-space box around the unit cube centred at the
// origin after m is applied.
func Bounds(m math.Mat4) AABB {
	box := AABB{
		Min: math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}
		if i&1 != 0 {
			corner.X = 0.5
		}
		if i&2 != 0 {
			corner.Y = 0.5
		}
		if i&4 != 0 {
			corner.Z = 0.5
		}
		p := m.TransformVec3(corner)
		box.Min = math.Vec3{X: math32.Min(box.Min.X, p.X), Y: math32.Min(box.Min.Y, p.Y), Z: math32.Min(box.Min.Z, p.Z)}
		box.Max = math.Vec3{X: math32.Max(box.Max.X, p.X), Y: math32.Max(box.Max.Y, p.Y), Z: math32.Max(box.Max.Z, p.Z)}
	}
	return box
}

// Pick returns the nearest visible box under root hit by r, and the hit
// distance.
func Pick(root *scene.Node, r Ray) (*scene.Node, float32, bool) {
	var (
		best *scene.Node
		dist float32
	)
	root.Walk(func(n *scene.Node, world math.Mat4) {
		if n.Shape != scene.ShapeBox {
			return
		}
		box := Bounds(world.Mul(math.Scale(n.Size.X, n.Size.Y, n.Size.Z)))
		if t, ok := r.IntersectAABB(box); ok && (best == nil || t < dist) {
			best, dist = n, t
		}
	})
	return best, dist, best != nil
}
