package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB Tests
// =============================================================================

func TestAABB_EmptyCenterIsOrigin(t *testing.T) {
	box := NewAABB()
	if !box.IsEmpty() {
		t.Error("new box should be empty")
	}
	if got := box.Center(); got != (mgl64.Vec3{}) {
		t.Errorf("Center() = %v, want origin", got)
	}
}

func TestAABB_ExtendPoint(t *testing.T) {
	box := NewAABB()
	box.ExtendPoint(mgl64.Vec3{-1, 0, 2})
	box.ExtendPoint(mgl64.Vec3{3, -4, 0})

	if box.Min != (mgl64.Vec3{-1, -4, 0}) {
		t.Errorf("Min = %v, want (-1, -4, 0)", box.Min)
	}
	if box.Max != (mgl64.Vec3{3, 0, 2}) {
		t.Errorf("Max = %v, want (3, 0, 2)", box.Max)
	}
	if got := box.Center(); got != (mgl64.Vec3{1, -2, 1}) {
		t.Errorf("Center() = %v, want (1, -2, 1)", got)
	}
}

func TestAABB_ExtendObject_CornersTransformed(t *testing.T) {
	obj := NewObject("cube")
	obj.Bounds = BoxCorners(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})

	box := NewAABB()
	box.ExtendObject(obj, mgl64.Translate3D(10, 0, 0))

	if box.Min != (mgl64.Vec3{9, -1, -1}) || box.Max != (mgl64.Vec3{11, 1, 1}) {
		t.Errorf("box = %v..%v, want (9,-1,-1)..(11,1,1)", box.Min, box.Max)
	}
}

func TestAABB_ExtendObject_NoGeometryUsesOrigin(t *testing.T) {
	empty := NewObject("empty")

	box := NewAABB()
	box.ExtendObject(empty, mgl64.Translate3D(5, 6, 7))

	want := mgl64.Vec3{5, 6, 7}
	if box.Min != want || box.Max != want {
		t.Errorf("box = %v..%v, want the origin point %v twice", box.Min, box.Max, want)
	}
}

func TestAABB_ExtendObject_ScaledCorners(t *testing.T) {
	obj := NewObject("cube")
	obj.Bounds = BoxCorners(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})

	box := NewAABB()
	box.ExtendObject(obj, mgl64.Scale3D(2, 3, 4))

	if box.Min != (mgl64.Vec3{-2, -3, -4}) || box.Max != (mgl64.Vec3{2, 3, 4}) {
		t.Errorf("box = %v..%v, want (-2,-3,-4)..(2,3,4)", box.Min, box.Max)
	}
}
