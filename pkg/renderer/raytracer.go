package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// maxChannel keeps a fully saturated channel below 256 after scaling
const maxChannel = 1.0 - 0x1p-52

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           384,
		Height:          216,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate reports the first invalid sampling parameter
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// PixelSink receives one finished color per pixel. Row 0 is the top of the image.
// During a parallel render SetPixel is called concurrently for distinct pixels.
type PixelSink interface {
	SetPixel(x, y int, c color.RGBA)
}

// ImageSink collects pixels into an RGBA image
type ImageSink struct {
	Image *image.RGBA
}

// NewImageSink allocates an image of the given size
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetPixel implements PixelSink
func (s *ImageSink) SetPixel(x, y int, c color.RGBA) {
	s.Image.SetRGBA(x, y, c)
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene         Scene
	integrator    integrator.Integrator
	config        SamplingConfig
	random        core.Random
	logger        core.Logger
	progressEvery int
}

// NewRaytracer creates a new raytracer drawing all randomness from random
func NewRaytracer(scene Scene, config SamplingConfig, random core.Random) *Raytracer {
	return &Raytracer{
		scene:         scene,
		integrator:    integrator.NewPathTracingIntegrator(),
		config:        config,
		random:        random,
		logger:        core.NopLogger{},
		progressEvery: 16,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SamplingConfig returns the current sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// SetLogger sets the progress logger; every is the number of scanlines between reports
func (rt *Raytracer) SetLogger(logger core.Logger, every int) {
	rt.logger = logger
	rt.progressEvery = every
}

// RenderPass renders a single pass with multi-sampling and returns an image
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	sink := NewImageSink(rt.config.Width, rt.config.Height)
	stats := rt.RenderTo(sink)
	return sink.Image, stats
}

// RenderTo renders every pixel in scanline order and hands each finished color to sink
func (rt *Raytracer) RenderTo(sink PixelSink) RenderStats {
	var stats RenderStats

	// Scanlines run bottom-up in camera space
	for j := rt.config.Height - 1; j >= 0; j-- {
		stats.Merge(rt.renderRow(context.Background(), j, sink, rt.random))
		rt.reportProgress(j)
	}

	return stats
}

// renderRow renders camera-space row j into image row Height-1-j.
// It stops between pixels once ctx is cancelled; the stats count only finished pixels.
func (rt *Raytracer) renderRow(ctx context.Context, j int, sink PixelSink, random core.Random) RenderStats {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()

	pixels := 0
	for i := 0; i < rt.config.Width; i++ {
		if ctx.Err() != nil {
			break
		}
		pixel := rt.samplePixel(camera, world, i, j, random)
		sink.SetPixel(i, rt.config.Height-1-j, ToRGB(pixel.GetColor()))
		pixels++
	}

	return RenderStats{
		TotalPixels:     pixels,
		TotalSamples:    pixels * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
	}
}

// samplePixel traces SamplesPerPixel jittered rays through pixel (i, j)
func (rt *Raytracer) samplePixel(camera *Camera, world geometry.Shape, i, j int, random core.Random) PixelStats {
	var pixel PixelStats

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		u := (float64(i) + random.Float64()) / float64(rt.config.Width)
		v := (float64(j) + random.Float64()) / float64(rt.config.Height)

		ray := camera.GetRay(u, v)
		pixel.AddSample(rt.integrator.RayColor(ray, world, rt.config.MaxDepth, random))
	}

	return pixel
}

func (rt *Raytracer) reportProgress(remaining int) {
	if rt.progressEvery <= 0 {
		return
	}
	if remaining%rt.progressEvery == 0 {
		rt.logger.Printf("Scanlines remaining: %d", remaining)
	}
}

// ToRGB converts an averaged linear color to 8-bit sRGB-ish channels with gamma 2
func ToRGB(c core.Color) color.RGBA {
	c = c.Sqrt().Clamp(0, maxChannel)

	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: 255,
	}
}

// toByte maps [0, 1) to [0, 255]; NaN renders black
func toByte(channel float64) uint8 {
	if math.IsNaN(channel) {
		return 0
	}
	return uint8(256 * channel)
}
