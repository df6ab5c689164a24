package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row  int   // Camera-space row, 0 is the bottom of the image
	Seed int64 // Seed for this row's private random source
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row     int
	Stats   RenderStats
	Skipped bool // Cancelled before the row was finished
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	sink        PixelSink
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool rendering into sink with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, sink PixelSink, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	rows := raytracer.config.Height
	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, rows),   // Buffer for all rows
		resultQueue: make(chan RowResult, rows), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			sink:        sink,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers; they stop rendering once ctx is cancelled
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Rows taken after ctx is cancelled are skipped.
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if ctx.Err() != nil {
			w.resultQueue <- RowResult{Row: task.Row, Skipped: true}
			continue
		}

		// Each row owns its random source, so the result does not depend on which worker ran it
		random := core.NewRandomSampler(task.Seed)
		stats := w.raytracer.renderRow(ctx, task.Row, w.sink, random)

		w.resultQueue <- RowResult{Row: task.Row, Stats: stats, Skipped: stats.TotalPixels < w.raytracer.config.Width}
	}
}

// RenderParallel renders rows concurrently. Row j draws from a source seeded with seed+j,
// so the output is identical for every worker count.
// Cancelling ctx stops the render early; the returned stats then cover only the finished pixels.
func (rt *Raytracer) RenderParallel(ctx context.Context, sink PixelSink, seed int64, numWorkers int) RenderStats {
	pool := NewWorkerPool(rt, sink, numWorkers)
	pool.Start(ctx)

	submitted := 0
	for j := rt.config.Height - 1; j >= 0; j-- {
		if ctx.Err() != nil {
			break
		}
		pool.SubmitTask(RowTask{Row: j, Seed: seed + int64(j)})
		submitted++
	}

	var stats RenderStats
	completed := 0
	for received := 0; received < submitted; received++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		if !result.Skipped {
			completed++
			rt.reportProgress(rt.config.Height - completed)
		}
	}

	pool.Stop()
	return stats
}
