package renderer

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// CameraConfig contains the parameters of a pinhole camera looking down -Z
type CameraConfig struct {
	AspectRatio    float64     // Viewport width / height
	ViewportHeight float64     // Height of the virtual viewport in world units
	FocalLength    float64     // Distance from the origin to the viewport
	Origin         core.Point3 // Eye point
}

// DefaultCameraConfig returns a 16:9 camera at the origin with a unit focal length
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
		Origin:         core.NewVec3(0, 0, 0),
	}
}

// Validate checks that every scalar parameter is positive (NaN is rejected)
func (c CameraConfig) Validate() error {
	if !(c.AspectRatio > 0) {
		return fmt.Errorf("camera aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if !(c.ViewportHeight > 0) {
		return fmt.Errorf("camera viewport height must be positive, got %g", c.ViewportHeight)
	}
	if !(c.FocalLength > 0) {
		return fmt.Errorf("camera focal length must be positive, got %g", c.FocalLength)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	config CameraConfig
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{config: config}
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ViewportWidth returns the viewport width derived from the aspect ratio
func (c *Camera) ViewportWidth() float64 {
	return c.config.ViewportHeight * c.config.AspectRatio
}

// Horizontal returns the vector spanning the viewport from left to right
func (c *Camera) Horizontal() core.Vec3 {
	return core.NewVec3(c.ViewportWidth(), 0, 0)
}

// Vertical returns the vector spanning the viewport from bottom to top
func (c *Camera) Vertical() core.Vec3 {
	return core.NewVec3(0, c.config.ViewportHeight, 0)
}

// LowerLeftCorner returns the bottom-left point of the viewport
func (c *Camera) LowerLeftCorner() core.Point3 {
	return c.config.Origin.
		Subtract(c.Horizontal().Divide(2)).
		Subtract(c.Vertical().Divide(2)).
		Subtract(core.NewVec3(0, 0, c.config.FocalLength))
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1.
// Values outside that range extrapolate past the viewport edges.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.LowerLeftCorner().
		Add(c.Horizontal().Multiply(u)).
		Add(c.Vertical().Multiply(v)).
		Subtract(c.config.Origin)

	return core.NewRay(c.config.Origin, direction)
}
