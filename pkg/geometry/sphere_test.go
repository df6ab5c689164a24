package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))

func vecNear(a, b core.Vec3) bool {
	return a.Subtract(b).Length() <= 1e-9
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
	if hit != nil {
		t.Error("Expected no hit record on a miss")
	}
}

func TestSphere_Hit_NearSide(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got t=%f", hit.T)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if !vecNear(hit.Point, core.NewVec3(0, 0, -0.5)) {
		t.Errorf("Expected hit point (0,0,-0.5), got %v", hit.Point)
	}
	if hit.Material != testMaterial {
		t.Errorf("Expected the sphere's material on the hit record, got %v", hit.Material)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !vecNear(hit.Normal, tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_TangentIsMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected tangent ray (zero discriminant) to miss")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded by tMin falls back to the far root
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit {
		t.Fatal("Expected far-side hit")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far intersection at t=3, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected far intersection to be a back face")
	}

	// Interval bounds are exclusive
	if _, isHit := sphere.Hit(ray, 0.001, 1.0); isHit {
		t.Error("Expected t == tMax to be rejected")
	}
	if hit, isHit := sphere.Hit(ray, 1.0, 1000.0); !isHit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Error("Expected t == tMin to be rejected in favour of the far root")
	}
}

func TestSphere_Hit_NegativeRadiusFlipsNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	// Outward normal points inward, so the ray sees the back face
	if hit.FrontFace {
		t.Error("Expected back face for negative radius sphere")
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected oriented normal (0,0,1), got %v", hit.Normal)
	}
}

func TestSphere_Hit_ZeroRadiusNeverHits(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected zero radius sphere to miss")
	}
}
