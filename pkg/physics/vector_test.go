package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSafeNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    mgl64.Vec3
		fallback mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"unit axis", mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}},
		{"zero falls back", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 1}},
		{"near zero falls back", mgl64.Vec3{1e-9, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeNormalize(tt.input, tt.fallback)
			if got.Sub(tt.expected).Len() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestClampLen(t *testing.T) {
	v := ClampLen(mgl64.Vec3{30, 40, 0}, 5)
	if math.Abs(v.Len()-5) > 1e-9 {
		t.Errorf("Expected length 5, got %f", v.Len())
	}

	unchanged := ClampLen(mgl64.Vec3{1, 0, 0}, 5)
	if unchanged != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("Short vector was modified: %v", unchanged)
	}
}

func TestClampVec(t *testing.T) {
	v := ClampVec(mgl64.Vec3{-5, 0.5, 5}, -1, 1)
	if v != (mgl64.Vec3{-1, 0.5, 1}) {
		t.Errorf("Expected {-1,0.5,1}, got %v", v)
	}
}

func TestMulVec(t *testing.T) {
	v := MulVec(mgl64.Vec3{2, 3, 4}, mgl64.Vec3{5, 6, 7})
	if v != (mgl64.Vec3{10, 18, 28}) {
		t.Errorf("Expected {10,18,28}, got %v", v)
	}
}
