package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// ErrInvalidScene is wrapped by every error caused by the content of a scene description
var ErrInvalidScene = errors.New("invalid scene")

// Defaults for omitted sampling fields
const (
	DefaultWidth           = 400
	DefaultAspectRatio     = 16.0 / 9.0
	DefaultSamplesPerPixel = 80
	DefaultMaxDepth        = 50
)

// SceneDescription is the JSON form of a scene
type SceneDescription struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      CameraDescription      `json:"camera"`
	Sampling    SamplingDescription    `json:"sampling"`
	Background  *BackgroundDescription `json:"background,omitempty"`
	Materials   []MaterialDescription  `json:"materials"`
	Spheres     []SphereDescription    `json:"spheres"`
}

// CameraDescription positions the camera
type CameraDescription struct {
	LookFrom      [3]float64  `json:"look_from"`
	LookAt        [3]float64  `json:"look_at"`
	Up            *[3]float64 `json:"up,omitempty"`
	VFov          float64     `json:"vfov"`
	Aperture      float64     `json:"aperture"`
	FocusDistance float64     `json:"focus_distance"` // 0 means |look_from - look_at|
}

// SamplingDescription sets resolution and sampling limits
type SamplingDescription struct {
	Width           int     `json:"width"`
	AspectRatio     float64 `json:"aspect_ratio"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	MaxDepth        int     `json:"max_depth"`
}

// BackgroundDescription is the sky gradient
type BackgroundDescription struct {
	Top    [3]float64 `json:"top"`
	Bottom [3]float64 `json:"bottom"`
}

// MaterialDescription defines a named material shared by any number of spheres
type MaterialDescription struct {
	ID              string      `json:"id"`
	Type            string      `json:"type"` // lambertian, metal or dielectric
	Albedo          *[3]float64 `json:"albedo,omitempty"`
	Fuzz            float64     `json:"fuzz,omitempty"`
	RefractiveIndex float64     `json:"refractive_index,omitempty"`
}

// SphereDescription places a sphere with a material id
type SphereDescription struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

// LoadScene reads and builds a scene from a JSON file
func LoadScene(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := DecodeScene(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// DecodeScene reads a JSON scene description and builds it
func DecodeScene(r io.Reader) (*scene.Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var desc SceneDescription
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidScene, err)
	}
	return BuildScene(desc)
}

// BuildScene validates a description and constructs the scene. Each material
// is created once and shared by every sphere that names it.
func BuildScene(desc SceneDescription) (*scene.Scene, error) {
	cameraConfig, err := buildCamera(desc.Camera, desc.Sampling)
	if err != nil {
		return nil, err
	}

	samplingConfig, err := buildSampling(desc.Sampling)
	if err != nil {
		return nil, err
	}

	materials, err := buildMaterials(desc.Materials)
	if err != nil {
		return nil, err
	}

	s := scene.NewScene(cameraConfig, samplingConfig)

	if bg := desc.Background; bg != nil {
		top, bottom := vec(bg.Top), vec(bg.Bottom)
		if !nonNegative(top) || !nonNegative(bottom) {
			return nil, fmt.Errorf("%w: background colors must be non-negative", ErrInvalidScene)
		}
		s.TopColor, s.BottomColor = top, bottom
	}

	for i, sd := range desc.Spheres {
		if !(sd.Radius > 0) {
			return nil, fmt.Errorf("%w: sphere %d: radius must be positive, got %v", ErrInvalidScene, i, sd.Radius)
		}
		mat, ok := materials[sd.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d: unknown material %q", ErrInvalidScene, i, sd.Material)
		}
		s.Add(geometry.NewSphere(vec(sd.Center), sd.Radius, mat))
	}

	return s, nil
}

func buildCamera(cd CameraDescription, sd SamplingDescription) (geometry.CameraConfig, error) {
	lookFrom, lookAt := vec(cd.LookFrom), vec(cd.LookAt)
	if lookFrom == lookAt {
		return geometry.CameraConfig{}, fmt.Errorf("%w: camera look_from and look_at must differ", ErrInvalidScene)
	}
	if !(cd.VFov > 0 && cd.VFov < 180) {
		return geometry.CameraConfig{}, fmt.Errorf("%w: camera vfov must be in (0, 180), got %v", ErrInvalidScene, cd.VFov)
	}
	if cd.Aperture < 0 || cd.FocusDistance < 0 {
		return geometry.CameraConfig{}, fmt.Errorf("%w: camera aperture and focus_distance must be non-negative", ErrInvalidScene)
	}

	up := core.NewVec3(0, 1, 0)
	if cd.Up != nil {
		up = vec(*cd.Up)
	}
	if up.Cross(lookFrom.Subtract(lookAt)).NearZero() {
		return geometry.CameraConfig{}, fmt.Errorf("%w: camera up must not be parallel to the view direction", ErrInvalidScene)
	}

	aspectRatio := sd.AspectRatio
	if aspectRatio == 0 {
		aspectRatio = DefaultAspectRatio
	}

	return geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            up,
		VFov:          cd.VFov,
		AspectRatio:   aspectRatio,
		Aperture:      cd.Aperture,
		FocusDistance: cd.FocusDistance,
	}, nil
}

func buildSampling(sd SamplingDescription) (scene.SamplingConfig, error) {
	if sd.Width < 0 || sd.AspectRatio < 0 || sd.SamplesPerPixel < 0 || sd.MaxDepth < 0 {
		return scene.SamplingConfig{}, fmt.Errorf("%w: sampling values must be non-negative", ErrInvalidScene)
	}

	config := scene.SamplingConfig{
		Width:           sd.Width,
		SamplesPerPixel: sd.SamplesPerPixel,
		MaxDepth:        sd.MaxDepth,
	}
	if config.Width == 0 {
		config.Width = DefaultWidth
	}
	if config.SamplesPerPixel == 0 {
		config.SamplesPerPixel = DefaultSamplesPerPixel
	}
	if config.MaxDepth == 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	return config, nil
}

func buildMaterials(descs []MaterialDescription) (map[string]material.Material, error) {
	materials := make(map[string]material.Material, len(descs))

	for _, md := range descs {
		if md.ID == "" {
			return nil, fmt.Errorf("%w: material without id", ErrInvalidScene)
		}
		if _, exists := materials[md.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate material id %q", ErrInvalidScene, md.ID)
		}

		mat, err := buildMaterial(md)
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %w", ErrInvalidScene, md.ID, err)
		}
		materials[md.ID] = mat
	}

	return materials, nil
}

func buildMaterial(md MaterialDescription) (material.Material, error) {
	switch md.Type {
	case "lambertian":
		albedo, err := albedoOf(md)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil

	case "metal":
		albedo, err := albedoOf(md)
		if err != nil {
			return nil, err
		}
		if md.Fuzz < 0 || md.Fuzz > 1 {
			return nil, fmt.Errorf("fuzz must be in [0, 1], got %v", md.Fuzz)
		}
		return material.NewMetal(albedo, md.Fuzz), nil

	case "dielectric":
		if !(md.RefractiveIndex > 0) {
			return nil, fmt.Errorf("refractive_index must be positive, got %v", md.RefractiveIndex)
		}
		return material.NewDielectric(md.RefractiveIndex), nil

	default:
		return nil, fmt.Errorf("unknown type %q", md.Type)
	}
}

func albedoOf(md MaterialDescription) (core.Vec3, error) {
	if md.Albedo == nil {
		return core.Vec3{}, fmt.Errorf("albedo is required")
	}
	albedo := vec(*md.Albedo)
	if !nonNegative(albedo) || albedo.X > 1 || albedo.Y > 1 || albedo.Z > 1 {
		return core.Vec3{}, fmt.Errorf("albedo components must be in [0, 1], got %v", *md.Albedo)
	}
	return albedo, nil
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

func nonNegative(v core.Vec3) bool {
	return v.X >= 0 && v.Y >= 0 && v.Z >= 0
}
