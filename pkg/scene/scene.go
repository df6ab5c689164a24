package scene

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Shapes         *geometry.ShapeList     // Objects in the scene, in insertion order
	SamplingConfig renderer.SamplingConfig // Recommended render settings
}

// newScene creates an empty scene whose image height follows the camera aspect ratio
func newScene(cameraConfig renderer.CameraConfig, width int) *Scene {
	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.Width = width
	samplingConfig.Height = HeightForWidth(width, cameraConfig.AspectRatio)

	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         geometry.NewShapeList(),
		SamplingConfig: samplingConfig,
	}
}

// HeightForWidth returns the image height matching width at the given aspect ratio, at least 1
func HeightForWidth(width int, aspectRatio float64) int {
	return max(1, int(float64(width)/aspectRatio))
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.Shapes
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Point3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Shapes.Add(sphere)
	return sphere
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Shapes.Len()
}

// SetWidth changes the image width, keeping the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = HeightForWidth(width, s.CameraConfig.AspectRatio)
}

// Validate checks the camera, the sampling settings, and every sphere radius
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("invalid camera: %w", err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid sampling config: %w", err)
	}
	for i, shape := range s.Shapes.Shapes {
		// Negative radii are hollow shells; only a zero radius is degenerate
		if sphere, ok := shape.(*geometry.Sphere); ok && sphere.Radius == 0 {
			return fmt.Errorf("shape %d: sphere at %v has zero radius", i, sphere.Center)
		}
	}
	return nil
}
