package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance, so scattered rays do not re-hit their own surface
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	TopColor    core.Color // Sky color straight up
	BottomColor core.Color // Sky color straight down
}

// NewPathTracingIntegrator creates a path tracer with the default blue-to-white sky
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{
		TopColor:    core.NewColor(0.5, 0.7, 1.0),
		BottomColor: core.NewColor(1.0, 1.0, 1.0),
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, random core.Random) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.NewColor(0, 0, 0)
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.backgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		return core.NewColor(0, 0, 0)
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, depth-1, random))
}

// backgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) backgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Unit()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return pt.BottomColor.Multiply(1.0 - t).Add(pt.TopColor.Multiply(t))
}
