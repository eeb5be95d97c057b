package output

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		samples  int
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), 1, color.RGBA{0, 0, 0, 255}},
		{"white clamps to 255", core.NewVec3(1, 1, 1), 1, color.RGBA{255, 255, 255, 255}},
		{"overbright clamps", core.NewVec3(4, 9, 100), 1, color.RGBA{255, 255, 255, 255}},
		// sqrt(0.25) = 0.5 -> int(256*0.5) = 128
		{"quarter gamma corrected", core.NewVec3(0.25, 0.25, 0.25), 1, color.RGBA{128, 128, 128, 255}},
		// four samples summing to 1 average to 0.25
		{"averaged over samples", core.NewVec3(1, 0, 4), 4, color.RGBA{128, 0, 255, 255}},
		{"negative clamps to zero", core.NewVec3(-1, 0.25, 0), 1, color.RGBA{0, 128, 0, 255}},
		{"NaN maps to zero", core.NewVec3(math.NaN(), 0, 0), 1, color.RGBA{0, 0, 0, 255}},
		{"no samples is black", core.NewVec3(1, 1, 1), 0, color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGBA(tt.sum, tt.samples)
			if got != tt.expected {
				t.Errorf("ToRGBA(%v, %d) = %v, want %v", tt.sum, tt.samples, got, tt.expected)
			}
		})
	}
}
