package renderer

import (
	"fmt"
	"image"
	"io"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Raytracer renders pixels of a scene with an integrator. It holds no mutable
// state, so one Raytracer may serve many goroutines with separate samplers.
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
}

// NewRaytracer creates a new raytracer at the scene's resolution
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator) *Raytracer {
	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		width:      s.SamplingConfig.Width,
		height:     s.SamplingConfig.Height,
	}
}

// NewSceneIntegrator creates a path tracing integrator using the scene's
// depth limit and background
func NewSceneIntegrator(s *scene.Scene) *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth: s.SamplingConfig.MaxDepth,
		Background: integrator.Background{
			Top:    s.TopColor,
			Bottom: s.BottomColor,
		},
	})
}

// samplePixel traces one jittered primary ray through pixel (i, j).
// Image row 0 is the top of the frame.
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(rt.width)
	t := (float64(rt.height-1-j) + jitter.Y) / float64(rt.height)

	ray := rt.scene.Camera.GetRay(s, t, sampler)
	return rt.integrator.RayColor(ray, rt.scene.World, sampler)
}

// RenderBounds adds samples to every pixel in bounds until each holds
// targetSamples. Pixels already at the target are left alone.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			initialSampleCount := ps.SampleCount

			for ps.SampleCount < targetSamples {
				ps.AddSample(rt.samplePixel(i, j, sampler))
			}

			samplesUsed := ps.SampleCount - initialSampleCount
			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// RenderPass renders the whole image sequentially with the scene's samples
// per pixel, drawing all randomness from sampler
func (rt *Raytracer) RenderPass(sampler core.Sampler) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	spp := rt.scene.SamplingConfig.SamplesPerPixel

	for j := 0; j < rt.height; j++ {
		for i := 0; i < rt.width; i++ {
			colorAccum := core.Vec3{}
			for sample := 0; sample < spp; sample++ {
				colorAccum = colorAccum.Add(rt.samplePixel(i, j, sampler))
			}
			img.SetRGBA(i, j, output.ToRGBA(colorAccum, spp))
		}
	}

	return img
}

// WritePPM renders the image sequentially and streams it to w as a P3 PPM,
// one pixel at a time, top row first
func (rt *Raytracer) WritePPM(w io.Writer, sampler core.Sampler) error {
	pw := output.NewPPMWriter(w)
	if err := pw.WriteHeader(rt.width, rt.height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	spp := rt.scene.SamplingConfig.SamplesPerPixel
	for j := 0; j < rt.height; j++ {
		for i := 0; i < rt.width; i++ {
			colorAccum := core.Vec3{}
			for sample := 0; sample < spp; sample++ {
				colorAccum = colorAccum.Add(rt.samplePixel(i, j, sampler))
			}
			if err := pw.WriteColor(colorAccum, spp); err != nil {
				return fmt.Errorf("write pixel (%d,%d): %w", i, j, err)
			}
		}
	}

	return pw.Flush()
}
