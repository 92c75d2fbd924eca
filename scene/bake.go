package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// RotationBaker folds an object's world rotation into its bounding geometry,
// leaving the world matrix with translation and per-axis scale only. This is
// the in-memory equivalent of the host's apply-rotation operator.
type RotationBaker struct{}

// BakeRotation rewrites obj.Bounds through the rotation part of obj.World and
// strips that rotation from the matrix. Objects without geometry cannot absorb
// a rotation and fail.
func (RotationBaker) BakeRotation(obj *Object) error {
	if len(obj.Bounds) == 0 {
		return fmt.Errorf("bake %q: no geometry", obj.Name)
	}

	rot, scale, err := decomposeRotationScale(obj.World)
	if err != nil {
		return fmt.Errorf("bake %q: %w", obj.Name, err)
	}

	baked := make([]mgl64.Vec3, len(obj.Bounds))
	for i, corner := range obj.Bounds {
		baked[i] = rot.Mul3x1(corner)
	}
	obj.Bounds = baked

	obj.World = mgl64.Mat4{
		scale.X(), 0, 0, 0,
		0, scale.Y(), 0, 0,
		0, 0, scale.Z(), 0,
		obj.World[12], obj.World[13], obj.World[14], 1,
	}
	return nil
}

// decomposeRotationScale splits the upper 3x3 of a world matrix into a pure
// rotation and per-axis scale, assuming no shear. The scale of each axis is
// the length of the corresponding basis column.
func decomposeRotationScale(m mgl64.Mat4) (mgl64.Mat3, mgl64.Vec3, error) {
	basis := m.Mat3()
	var scale mgl64.Vec3
	for i := 0; i < 3; i++ {
		scale[i] = basis.Col(i).Len()
		if scale[i] == 0 {
			return mgl64.Mat3{}, mgl64.Vec3{}, fmt.Errorf("singular basis on axis %d", i)
		}
	}

	var rot mgl64.Mat3
	for i := 0; i < 3; i++ {
		rot.SetCol(i, basis.Col(i).Mul(1/scale[i]))
	}
	return rot, scale, nil
}
