package coltrans

import "github.com/go-gl/mathgl/mgl64"

// MIN_SCALE is the smallest accepted per-axis scale, keeping the combined
// matrix invertible.
const MIN_SCALE = 1e-4

// Delta holds the three independent transform inputs edited in the panel.
type Delta struct {
	// Translation in world units
	Translation mgl64.Vec3
	// Rotation in radians, world XYZ order (Z applied outermost)
	Rotation mgl64.Vec3
	// Scale per axis, each component strictly positive
	Scale mgl64.Vec3
}

// DefaultDelta returns the identity delta: zero translation, zero rotation,
// unit scale.
func DefaultDelta() Delta {
	return Delta{Scale: mgl64.Vec3{1, 1, 1}}
}

// IsDefault reports whether applying the delta would leave every matrix
// unchanged. Used as the commit no-op guard.
func (d Delta) IsDefault() bool {
	return d.Translation == (mgl64.Vec3{}) &&
		d.Rotation == (mgl64.Vec3{}) &&
		d.Scale == (mgl64.Vec3{1, 1, 1})
}

// Clamped returns the delta with every scale axis bounded away from zero.
func (d Delta) Clamped() Delta {
	for i := 0; i < 3; i++ {
		if d.Scale[i] < MIN_SCALE {
			d.Scale[i] = MIN_SCALE
		}
	}
	return d
}
