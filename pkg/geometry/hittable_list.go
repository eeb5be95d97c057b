package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// HittableList is an ordered collection of hittables that resolves the
// closest intersection across all of its members
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list holding the given objects in order
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{}
	for _, obj := range objects {
		list.Add(obj)
	}
	return list
}

// Add appends an object to the list
func (l *HittableList) Add(obj Hittable) {
	l.objects = append(l.objects, obj)
}

// Clear removes every object from the list
func (l *HittableList) Clear() {
	l.objects = nil
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the list members in insertion order
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Hit finds the closest intersection with any object in the list.
// The upper bound shrinks to each accepted hit. Since the bound is
// inclusive, a later member at exactly the same distance replaces the
// earlier record.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, obj := range l.objects {
		if hit, isHit := obj.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
