package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Parameter limits shared by the render and inspect endpoints
const (
	MinWidth   = 16
	MaxWidth   = 2000
	MaxSamples = 10000
	MaxDepth   = 500
	MaxWorkers = 256
)

// Server handles web requests for the path tracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene id (e.g., "default")
	Width           int    `json:"width"`           // Image width; height follows the camera aspect ratio
	SamplesPerPixel int    `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Seed            int64  `json:"seed"`            // Seed for the random source
	Workers         int    `json:"workers"`         // Render workers, 0 = one per CPU
}

// Handler returns the routes served by the web server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scene.ListAllScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.NewScene(sceneName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	camera := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"camera": map[string]interface{}{
			"aspectRatio":    camera.AspectRatio,
			"viewportHeight": camera.ViewportHeight,
			"focalLength":    camera.FocalLength,
			"origin":         [3]float64{camera.Origin.X, camera.Origin.Y, camera.Origin.Z},
		},
		"primitiveCount": sceneObj.GetPrimitiveCount(),
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": MinWidth, "max": MaxWidth},
			"samplesPerPixel": map[string]int{"min": 1, "max": MaxSamples},
			"maxDepth":        map[string]int{"min": 0, "max": MaxDepth},
			"workers":         map[string]int{"min": 0, "max": MaxWorkers},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseCommonSceneParams parses the scene id and image width shared by all scene endpoints.
// It builds the scene once; defaults come from the scene itself and the width is applied to it.
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) (*scene.Scene, error) {
	req.Scene = r.URL.Query().Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	sceneObj, err := scene.NewScene(req.Scene)
	if err != nil {
		return nil, err
	}

	req.Width, err = parseIntParam(r.URL.Query(), "width", sceneObj.SamplingConfig.Width, MinWidth, MaxWidth)
	if err != nil {
		return nil, err
	}
	sceneObj.SetWidth(req.Width)
	return sceneObj, nil
}

// parseRenderRequest parses request parameters and returns the scene configured to match them
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	req := &RenderRequest{}
	sceneObj, err := s.parseCommonSceneParams(r, req)
	if err != nil {
		return nil, nil, err
	}

	query := r.URL.Query()
	if req.SamplesPerPixel, err = parseIntParam(query, "samplesPerPixel", sceneObj.SamplingConfig.SamplesPerPixel, 1, MaxSamples); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", sceneObj.SamplingConfig.MaxDepth, 0, MaxDepth); err != nil {
		return nil, nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, MaxWorkers); err != nil {
		return nil, nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, nil, fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = 1
	}

	// Performance warning
	if req.Width > 800 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	if err := sceneObj.Validate(); err != nil {
		return nil, nil, err
	}

	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
