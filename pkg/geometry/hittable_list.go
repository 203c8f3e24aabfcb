package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// HittableList is an ordered collection of shapes that is itself a Shape
type HittableList struct {
	shapes []Shape
}

// NewHittableList creates a list holding the given shapes in order
func NewHittableList(shapes ...Shape) *HittableList {
	list := &HittableList{}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape
func (l *HittableList) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Clear removes all shapes
func (l *HittableList) Clear() {
	l.shapes = nil
}

// Len returns the number of shapes
func (l *HittableList) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *HittableList) Shapes() []Shape {
	return l.shapes
}

// Hit returns the nearest intersection among all shapes.
// The window shrinks to the closest hit found so far, so every shape is tested
// and the result does not depend on the order of the list.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		// Exact ties keep the earlier shape
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit && (closestHit == nil || hit.T < closestHit.T) {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
