package core

import (
	"math"
	"testing"
)

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"zero vector", NewVec3(0, 0, 0), true},
		{"tiny components", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-3, 0), false},
		{"unit vector", NewVec3(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", v)
	}

	// Zero vector stays zero rather than producing NaN
	zero := Vec3{}.Normalize()
	if !zero.Equals(Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_CrossAndDot(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); !got.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("Expected x × y = z, got %v", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("Expected orthogonal dot product 0, got %f", got)
	}
	if got := NewVec3(1, 2, 3).Dot(NewVec3(4, 5, 6)); got != 32 {
		t.Errorf("Expected dot product 32, got %f", got)
	}
}

func TestVec3_Lerp(t *testing.T) {
	white := NewVec3(1, 1, 1)
	blue := NewVec3(0.5, 0.7, 1.0)

	tests := []struct {
		t        float64
		expected Vec3
	}{
		{0, white},
		{1, blue},
		{0.5, NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		got := white.Lerp(blue, tt.t)
		if got.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("Lerp(t=%f): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	c := NewVec3(0.25, 1.0, 0.0).GammaCorrect(2.0)
	if !c.Equals(NewVec3(0.5, 1.0, 0.0)) {
		t.Errorf("Expected sqrt gamma (0.5, 1, 0), got %v", c)
	}

	c = NewVec3(0.125, 1.0, 0.0).GammaCorrect(3.0)
	if math.Abs(c.X-0.5) > 1e-12 {
		t.Errorf("Expected cube-root gamma 0.5, got %f", c.X)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))

	if got := ray.At(0); !got.Equals(ray.Origin) {
		t.Errorf("At(0) should be origin, got %v", got)
	}
	if got := ray.At(1.5); !got.Equals(NewVec3(1, 2, 0)) {
		t.Errorf("At(1.5): expected (1, 2, 0), got %v", got)
	}
}
