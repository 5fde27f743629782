package renderer

import "time"

// RenderStats contains statistics about a finished (or interrupted) render
type RenderStats struct {
	TotalPixels int           // Pixels actually traced
	Rows        int           // Rows actually traced
	Workers     int           // Number of workers used
	Duration    time.Duration // Wall clock time of the render
	PerWorker   []WorkerStats
}

// WorkerStats tracks the work done by a single worker
type WorkerStats struct {
	ID     int
	Rows   int           // Rows rendered
	Pixels int           // Pixels rendered
	Busy   time.Duration // Time spent tracing, excluding waits on the queue
}

// newRenderStats aggregates per-worker statistics
func newRenderStats(perWorker []WorkerStats, duration time.Duration) RenderStats {
	stats := RenderStats{
		Workers:   len(perWorker),
		Duration:  duration,
		PerWorker: perWorker,
	}
	for _, w := range perWorker {
		stats.TotalPixels += w.Pixels
		stats.Rows += w.Rows
	}
	return stats
}

// PixelsPerSecond returns the overall throughput, zero for an instant render
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}

// Utilization returns the fraction of the wall clock time the worker spent tracing
func (w WorkerStats) Utilization(total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(w.Busy) / float64(total)
}
