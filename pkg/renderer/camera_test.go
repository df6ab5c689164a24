package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func vecNear(a, b core.Vec3) bool {
	return a.Subtract(b).Length() <= 1e-9
}

func TestDefaultCameraConfig(t *testing.T) {
	config := DefaultCameraConfig()

	if config.AspectRatio != 16.0/9.0 {
		t.Errorf("Expected aspect ratio 16/9, got %f", config.AspectRatio)
	}
	if config.ViewportHeight != 2.0 {
		t.Errorf("Expected viewport height 2, got %f", config.ViewportHeight)
	}
	if config.FocalLength != 1.0 {
		t.Errorf("Expected focal length 1, got %f", config.FocalLength)
	}
	if config.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected origin at zero, got %v", config.Origin)
	}

	camera := NewCamera(config)
	if camera.ViewportWidth() != 2.0*16.0/9.0 {
		t.Errorf("Expected viewport width %f, got %f", 2.0*16.0/9.0, camera.ViewportWidth())
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(CameraConfig{
		AspectRatio:    2.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
		Origin:         core.NewVec3(0, 0, 0),
	})

	tests := []struct {
		name      string
		u, v      float64
		direction core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"extrapolated", 1.5, -0.5, core.NewVec3(4, -2, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if ray.Origin != core.NewVec3(0, 0, 0) {
				t.Errorf("Expected ray from origin, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_OffsetOrigin(t *testing.T) {
	origin := core.NewVec3(1, 2, 3)
	config := DefaultCameraConfig()
	config.Origin = origin
	config.FocalLength = 0.8
	camera := NewCamera(config)

	// Direction is relative to the eye, so moving the camera does not change it
	ray := camera.GetRay(0.5, 0.5)
	if ray.Origin != origin {
		t.Errorf("Expected ray origin %v, got %v", origin, ray.Origin)
	}
	if !vecNear(ray.Direction, core.NewVec3(0, 0, -0.8)) {
		t.Errorf("Expected direction (0,0,-0.8), got %v", ray.Direction)
	}

	expectedCorner := origin.Subtract(core.NewVec3(camera.ViewportWidth()/2, 1, 0.8))
	if !vecNear(camera.LowerLeftCorner(), expectedCorner) {
		t.Errorf("Expected lower left corner %v, got %v", expectedCorner, camera.LowerLeftCorner())
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*CameraConfig)
		expectError bool
	}{
		{"default", func(c *CameraConfig) {}, false},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }, true},
		{"negative viewport", func(c *CameraConfig) { c.ViewportHeight = -1 }, true},
		{"zero focal length", func(c *CameraConfig) { c.FocalLength = 0 }, true},
		{"nan aspect", func(c *CameraConfig) { c.AspectRatio = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
