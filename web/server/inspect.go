package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	ShapeIndex   int                    `json:"shapeIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// hexColor formats a linear color as #rrggbb, clamping each channel to [0, 1]
func hexColor(r, g, b float64) string {
	clamp := func(c float64) int { return int(math.Max(0, math.Min(1, c)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
		return "lambertian", properties

	case material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["normalReflectance"] = material.Reflectance(1, 1/m.RefractiveIndex)
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit        bool
	HitRecord  *material.HitRecord // Hit record including the copied material
	Shape      geometry.Shape      // The shape that was hit
	ShapeIndex int                 // Position of the shape in the scene
}

// inspectPixel casts a ray through the center of the pixel and returns the nearest object hit.
// Pixel (0, 0) is the top-left corner of the image.
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := sceneObj.GetCamera().GetRay(u, v)

	// Same nearest-hit reduction as the shape list, keeping track of which shape won
	result := InspectResult{ShapeIndex: -1}
	closestSoFar := math.Inf(1)
	for i, shape := range sceneObj.Shapes.Shapes {
		if hit, isHit := shape.Hit(ray, integrator.ShadowAcneEpsilon, closestSoFar); isHit {
			closestSoFar = hit.T
			result = InspectResult{Hit: true, HitRecord: hit, Shape: shape, ShapeIndex: i}
		}
	}

	return result
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		properties["hollow"] = geom.Radius < 0
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneObj, err := s.parseCommonSceneParams(r, &RenderRequest{})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, width, height, pixelX, pixelY)

	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, ShapeIndex: -1})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)

	allProperties := make(map[string]interface{})
	allProperties["material"] = materialProps
	allProperties["geometry"] = geometryProps

	hit := result.HitRecord
	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		ShapeIndex:   result.ShapeIndex,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties:   allProperties,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
