package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// SSEEvent represents a single server-sent event
type SSEEvent struct {
	Type string `json:"type"` // "console", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or plain text
}

// ImageUpdate carries the finished frame and its statistics
type ImageUpdate struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	PrimitiveCount   int     `json:"primitiveCount"`
	AverageLuminance float64 `json:"averageLuminance"`
}

type renderResult struct {
	image *image.RGBA
	stats renderer.RenderStats
}

// handleRender renders a frame and streams progress messages and the final image via SSE.
// Events are written only from the handler goroutine.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()

	config := sceneObj.SamplingConfig
	raytracer := renderer.NewRaytracer(sceneObj, config, core.NewRandomSampler(req.Seed))
	raytracer.SetLogger(webLogger, max(1, config.Height/10))

	// Buffered so the render goroutine can exit after a client disconnect;
	// cancelling ctx stops the workers at the next pixel
	done := make(chan renderResult, 1)
	startTime := time.Now()
	go func() {
		sink := renderer.NewImageSink(config.Width, config.Height)
		stats := raytracer.RenderParallel(ctx, sink, req.Seed, req.Workers)
		done <- renderResult{image: sink.Image, stats: stats}
	}()

	for {
		select {
		case msg := <-consoleChan:
			if err := s.writeConsoleMessage(w, msg); err != nil {
				return
			}

		case result := <-done:
			if ctx.Err() != nil {
				// Client disconnected; the frame is incomplete
				return
			}
			s.drainConsole(w, consoleChan)

			update, err := s.buildImageUpdate(result, sceneObj.GetPrimitiveCount(), time.Since(startTime))
			if err != nil {
				s.writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Render error: %v", err)})
				return
			}
			data, err := json.Marshal(update)
			if err != nil {
				log.Printf("Error marshaling image update: %v", err)
				return
			}
			if err := s.writeSSEEvent(w, SSEEvent{Type: "image", Data: string(data)}); err != nil {
				return
			}
			s.writeSSEEvent(w, SSEEvent{Type: "complete", Data: "Rendering completed"})
			return

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// drainConsole forwards console messages still queued when the render finished
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := s.writeConsoleMessage(w, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *Server) writeConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return nil
	}
	return s.writeSSEEvent(w, SSEEvent{Type: "console", Data: string(data)})
}

func (s *Server) buildImageUpdate(result renderResult, primitiveCount int, elapsed time.Duration) (ImageUpdate, error) {
	imageData, err := s.imageToBase64PNG(result.image)
	if err != nil {
		return ImageUpdate{}, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := result.image.Bounds()
	return ImageUpdate{
		ImageData:        imageData,
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
		ElapsedMs:        elapsed.Milliseconds(),
		TotalPixels:      result.stats.TotalPixels,
		TotalSamples:     result.stats.TotalSamples,
		SamplesPerPixel:  result.stats.SamplesPerPixel,
		PrimitiveCount:   primitiveCount,
		AverageLuminance: renderer.CalculateAverageLuminance(result.image),
	}, nil
}

// writeSSEEvent writes one event and flushes it to the client
func (s *Server) writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
