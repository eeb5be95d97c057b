package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig SamplingConfig
	TopColor       core.Vec3 // Background color looking up
	BottomColor    core.Vec3 // Background color looking down
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// NewScene creates an empty scene with the default sky gradient.
// A zero Height is derived from Width and the camera aspect ratio.
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	s := &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		SamplingConfig: samplingConfig,
		TopColor:       core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0), // White horizon
	}
	if s.SamplingConfig.Height <= 0 {
		s.SetWidth(samplingConfig.Width)
	}
	return s
}

// Add adds an object to the world
func (s *Scene) Add(obj geometry.Hittable) {
	s.World.Add(obj)
}

// Clear removes every object from the world
func (s *Scene) Clear() {
	s.World.Clear()
}

// SetWidth changes the output width and derives the height from the aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = heightForAspect(width, s.CameraConfig.AspectRatio)
}

func heightForAspect(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return max(1, width)
	}
	return max(1, int(float64(width)/aspectRatio))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

// countPrimitives counts primitives in a single object, descending into nested lists
func countPrimitives(obj geometry.Hittable) int {
	switch o := obj.(type) {
	case *geometry.HittableList:
		count := 0
		for _, child := range o.Objects() {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}
