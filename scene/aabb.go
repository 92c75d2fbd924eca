package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box accumulated in world space.
// The zero value from NewAABB is empty; extending it with points grows it.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB returns an empty box (min at +inf, max at -inf).
func NewAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been accumulated yet.
func (a AABB) IsEmpty() bool {
	return a.Min.X() > a.Max.X()
}

// ExtendPoint grows the box to enclose the given world-space point.
func (a *AABB) ExtendPoint(p mgl64.Vec3) {
	a.Min[0] = math.Min(a.Min[0], p[0])
	a.Min[1] = math.Min(a.Min[1], p[1])
	a.Min[2] = math.Min(a.Min[2], p[2])

	a.Max[0] = math.Max(a.Max[0], p[0])
	a.Max[1] = math.Max(a.Max[1], p[1])
	a.Max[2] = math.Max(a.Max[2], p[2])
}

// ExtendObject grows the box to enclose the object placed at the given world
// matrix. Objects with a bounding volume contribute every transformed corner;
// objects without geometry contribute their origin only.
func (a *AABB) ExtendObject(obj *Object, world mgl64.Mat4) {
	if len(obj.Bounds) == 0 {
		a.ExtendPoint(world.Col(3).Vec3())
		return
	}

	for _, corner := range obj.Bounds {
		a.ExtendPoint(world.Mul4x1(corner.Vec4(1)).Vec3())
	}
}

// Center returns the midpoint of the box, or the origin for an empty box.
func (a AABB) Center() mgl64.Vec3 {
	if a.IsEmpty() {
		return mgl64.Vec3{}
	}
	return a.Min.Add(a.Max).Mul(0.5)
}
