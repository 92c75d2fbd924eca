package scene

import "github.com/go-gl/mathgl/mgl64"

// Object is a host scene object. The transform tool never creates or destroys
// objects; it only reads and overwrites the World matrix of root objects.
type Object struct {
	// Name is the object's stable identity within the scene.
	Name string
	// Parent is nil for top-level objects. Children follow their parent via
	// the host's hierarchy propagation and are never written directly.
	Parent *Object
	// World is the object's world-space affine matrix (translation, rotation
	// and scale composed).
	World mgl64.Mat4
	// Bounds holds the local-space corners of the object's bounding volume.
	// Nil for objects without geometry (empties, lights, cameras).
	Bounds []mgl64.Vec3
}

// NewObject creates an object at the world origin with an identity matrix.
func NewObject(name string) *Object {
	return &Object{Name: name, World: mgl64.Ident4()}
}

// Translation returns the world-space position of the object's origin.
func (o *Object) Translation() mgl64.Vec3 {
	return o.World.Col(3).Vec3()
}

// BoxCorners returns the eight corners of the box spanning min..max, for use
// as an object's bounding volume.
func BoxCorners(min, max mgl64.Vec3) []mgl64.Vec3 {
	return []mgl64.Vec3{
		{min.X(), min.Y(), min.Z()},
		{max.X(), min.Y(), min.Z()},
		{min.X(), max.Y(), min.Z()},
		{max.X(), max.Y(), min.Z()},
		{min.X(), min.Y(), max.Z()},
		{max.X(), min.Y(), max.Z()},
		{min.X(), max.Y(), max.Z()},
		{max.X(), max.Y(), max.Z()},
	}
}
