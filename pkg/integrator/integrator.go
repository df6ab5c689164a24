package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray, following at most depth bounces
	RayColor(ray core.Ray, world geometry.Shape, depth int, random core.Random) core.Color
}
