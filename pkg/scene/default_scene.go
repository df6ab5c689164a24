package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the four sphere scene: a matte center sphere on a huge ground
// sphere, flanked by a fuzzy silver and a very fuzzy gold metal sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.FocalLength = 0.8 // Slightly wider than the default view

	s := newScene(cameraConfig, 384)

	// Create materials
	lambertianRed := material.NewLambertian(core.NewColor(0.7, 0.3, 0.3))
	lambertianGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	metalGold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)
	metalSilver := material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.3)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, metalSilver)

	return s
}

// NewGlassScene replaces the silver sphere with a hollow glass bubble and polishes the gold one
func NewGlassScene() *Scene {
	s := newScene(renderer.DefaultCameraConfig(), 384)

	lambertianBlue := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	lambertianGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	metalGold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0)
	glass := material.NewDielectric(1.5)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	// Negative radius flips the normals inward, leaving a thin glass shell
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, glass)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)

	return s
}
