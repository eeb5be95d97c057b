package output

import (
	"image/color"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ToRGBA converts a summed pixel color into an 8-bit color.
// The sum is averaged over samples, gamma corrected with gamma 2 and
// quantized with int(256 * clamp(c, 0, 0.999)).
func ToRGBA(sum core.Vec3, samples int) color.RGBA {
	if samples <= 0 {
		return color.RGBA{A: 255}
	}

	scale := 1.0 / float64(samples)
	c := sum.Multiply(scale).GammaCorrect(2.0)

	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

// quantize maps a linear [0,1] channel to [0,255]; NaN maps to 0
func quantize(c float64) uint8 {
	if !(c > 0) {
		return 0
	}
	return uint8(256 * math.Min(c, 0.999))
}
