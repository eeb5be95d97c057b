package material

import "github.com/df07/go-recursive-raytracer/pkg/core"

// fixedSampler returns the same value for every dimension of every draw
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value, f.value)
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

// sequenceSampler replays a fixed list of 2D samples, then repeats the last one
type sequenceSampler struct {
	samples []core.Vec2
	next    int
}

func (s *sequenceSampler) Get1D() float64 { return s.Get2D().X }
func (s *sequenceSampler) Get2D() core.Vec2 {
	sample := s.samples[min(s.next, len(s.samples)-1)]
	s.next++
	return sample
}
func (s *sequenceSampler) Get3D() core.Vec3 {
	p := s.Get2D()
	return core.NewVec3(p.X, p.Y, p.X)
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
