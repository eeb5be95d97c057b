package output

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

func TestPPMWriter(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPPMWriter(&buf)

	if err := pw.WriteHeader(2, 1); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if err := pw.WriteColor(core.NewVec3(1, 0, 0.25), 1); err != nil {
		t.Fatalf("WriteColor failed: %v", err)
	}
	if err := pw.WriteColor(core.NewVec3(2, 2, 2), 8); err != nil {
		t.Fatalf("WriteColor failed: %v", err)
	}
	if err := pw.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	expected := "P3\n2 1\n255\n255 0 128\n128 128 128\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nwant\n%q", buf.String(), expected)
	}
}

func TestEncodePPM(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	// Top row is written first
	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n10 20 30\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nwant\n%q", buf.String(), expected)
	}
}
