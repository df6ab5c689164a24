package scene

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// SphereGridSize is the number of spheres along each side of the grid
const SphereGridSize = 8

// NewSphereGridScene creates a grid of small spheres resting on a ground sphere.
// Hue varies across the grid columns, chroma across the rows, and the material cycles
// through diffuse, metal, and glass.
func NewSphereGridScene() *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Origin = core.NewVec3(0, 0.8, 0.5) // Raised so the back rows are visible

	s := newScene(cameraConfig, 480)
	s.SamplingConfig.MaxDepth = 40

	// Ground sphere is large enough that its top is nearly flat at y=0
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	const (
		width     = 4.0  // Extent along x
		depth     = 4.0  // Extent along z
		nearZ     = -1.5 // Closest row
		lightness = 0.65 // Base lightness for uniform appearance
		minChroma = 0.05 // Near gray
		maxChroma = 0.25 // Vivid
	)

	spacing := width / float64(SphereGridSize-1)
	radius := spacing * 0.35
	glass := material.NewDielectric(1.5)

	for i := 0; i < SphereGridSize; i++ {
		for j := 0; j < SphereGridSize; j++ {
			x := float64(i)*spacing - width/2
			z := nearZ - float64(j)*depth/float64(SphereGridSize-1)
			position := core.NewVec3(x, radius, z)

			hue := float64(i) / float64(SphereGridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(SphereGridSize-1)*(maxChroma-minChroma)
			color := oklchToRGB(lightness+0.1*math.Sin(float64(i+j)*0.5), chroma, hue)

			var mat material.Material
			switch (i + j) % 3 {
			case 0:
				mat = material.NewLambertian(color)
			case 1:
				mat = material.NewMetal(color, 0.05+0.1*float64(j%3)/2.0)
			default:
				mat = glass
			}

			s.AddSphere(position, radius, mat)
		}
	}

	return s
}
