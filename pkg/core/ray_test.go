package core

import "testing"

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0.5, -1, 2))

	for _, tt := range []float64{-2, 0, 0.5, 1, 10} {
		expected := ray.Origin.Add(ray.Direction.Multiply(tt))
		if got := ray.At(tt); got != expected {
			t.Errorf("At(%f): expected %v, got %v", tt, expected, got)
		}
	}
}
