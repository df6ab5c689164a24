package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// ShapeList is an ordered collection of shapes that reports the nearest hit among its members
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list holding the given shapes in order
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends shapes to the list
func (l *ShapeList) Add(shapes ...Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Clear removes all shapes
func (l *ShapeList) Clear() {
	l.Shapes = nil
}

// Len returns the number of shapes
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest intersection among all shapes in (tMin, tMax).
// Each shape is tested against the best t so far, so on an exact tie the earlier shape wins.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
