package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) Lambertian {
	return Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l Lambertian) Scatter(rayIn core.Ray, hit HitRecord, random core.Random) (ScatterResult, bool) {
	// Offsetting the normal by a unit-sphere sample gives a cosine-weighted direction
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(random))

	// The sample landed opposite the normal
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}
