package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewDefaultScene creates the three-sphere scene: a diffuse sphere between a
// glass sphere and a polished metal sphere, resting on a large ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)

	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(), // Focus on the center sphere
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           400,
		SamplesPerPixel: 80,
		MaxDepth:        50,
	})

	// Create materials
	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter))
	s.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft))
	s.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialRight))

	return s
}
