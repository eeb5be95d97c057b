package integrator

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along a ray from the world.
	// Implementations must be safe for concurrent use given distinct samplers.
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}
