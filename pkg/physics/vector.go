// pkg/physics/vector.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// SafeNormalize returns a unit vector in the same direction, or the
// fallback when the vector is too short to normalize.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < 1e-6 {
		return fallback
	}
	return v.Normalize()
}

// ClampLen limits the magnitude of a vector to max, preserving direction.
func ClampLen(v mgl64.Vec3, max float64) mgl64.Vec3 {
	length := v.Len()
	if length <= max || length == 0 {
		return v
	}
	return v.Mul(max / length)
}

// Clamp limits a scalar to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampVec limits each component of a vector to the range [min, max].
func ClampVec(v mgl64.Vec3, min, max float64) mgl64.Vec3 {
	return mgl64.Vec3{
		Clamp(v.X(), min, max),
		Clamp(v.Y(), min, max),
		Clamp(v.Z(), min, max),
	}
}

// MulVec multiplies two vectors component-wise.
func MulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
