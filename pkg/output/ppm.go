package output

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// PPMWriter streams a plain-text (P3) PPM image
type PPMWriter struct {
	w *bufio.Writer
}

// NewPPMWriter creates a PPM writer on top of w
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the P3 header for an image of the given size
func (p *PPMWriter) WriteHeader(width, height int) error {
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WriteColor writes one pixel given the sum of its samples
func (p *PPMWriter) WriteColor(sum core.Vec3, samples int) error {
	c := ToRGBA(sum, samples)
	return p.writeRGBA(c.R, c.G, c.B)
}

func (p *PPMWriter) writeRGBA(r, g, b uint8) error {
	_, err := fmt.Fprintf(p.w, "%d %d %d\n", r, g, b)
	return err
}

// Flush writes any buffered output
func (p *PPMWriter) Flush() error {
	return p.w.Flush()
}

// EncodePPM writes img as a P3 PPM, top row first
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	pw := NewPPMWriter(w)
	if err := pw.WriteHeader(bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if err := pw.writeRGBA(uint8(r>>8), uint8(g>>8), uint8(b>>8)); err != nil {
				return fmt.Errorf("ppm: write pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	return pw.Flush()
}
