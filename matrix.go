package coltrans

import "github.com/go-gl/mathgl/mgl64"

// rotationScale builds the combined rotation+scale matrix Rz·Ry·Rx·S from the
// delta. No translation, no pivot; built once per operation.
func rotationScale(d Delta) mgl64.Mat4 {
	r := mgl64.HomogRotate3DZ(d.Rotation.Z()).
		Mul4(mgl64.HomogRotate3DY(d.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DX(d.Rotation.X()))

	return r.Mul4(mgl64.Scale3D(d.Scale.X(), d.Scale.Y(), d.Scale.Z()))
}

// fullTransform combines the world translation with rotation/scale about the
// pivot into a single matrix:
//
//	full = T(translation) · T(pivot) · RS · T(-pivot)
//
// The pivot only affects RS, never the translation.
func fullTransform(translation mgl64.Vec3, rs mgl64.Mat4, p mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(translation.X(), translation.Y(), translation.Z()).
		Mul4(mgl64.Translate3D(p.X(), p.Y(), p.Z())).
		Mul4(rs).
		Mul4(mgl64.Translate3D(-p.X(), -p.Y(), -p.Z()))
}
