// pkg/physics/transform.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Transform holds an entity's position and orientation in world space.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform returns a transform at the given position with identity rotation.
func NewTransform(position mgl64.Vec3) *Transform {
	return &Transform{
		Position: position,
		Rotation: mgl64.QuatIdent(),
	}
}

// Forward returns the local +Z axis rotated into world space.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Right returns the local +X axis rotated into world space.
func (t *Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Up returns the local +Y axis rotated into world space.
func (t *Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}
