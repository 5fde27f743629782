package renderer

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// RowTask represents one image row for the worker pool
type RowTask struct {
	Row int
}

// WorkerPool renders rows in parallel. Every row goes to exactly one worker,
// so workers never write the same pixel. A pool runs once.
type WorkerPool struct {
	taskQueue  chan RowTask
	workers    []*Worker
	numWorkers int
	rows       int
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID        int
	renderer  *RowRenderer
	taskQueue <-chan RowTask
	stats     WorkerStats
}

// NewWorkerPool creates a pool of numWorkers workers for an image of the given number of rows
func NewWorkerPool(rr *RowRenderer, rows, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:  make(chan RowTask, rows), // Buffer for all rows
		numWorkers: numWorkers,
		rows:       rows,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			renderer:  rr,
			taskQueue: wp.taskQueue,
			stats:     WorkerStats{ID: i},
		})
	}

	return wp
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run submits every row and waits for the workers to drain the queue.
// It stops early when ctx is cancelled and returns the context's error.
func (wp *WorkerPool) Run(ctx context.Context) ([]WorkerStats, error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(wp.taskQueue) // No more tasks
		for row := 0; row < wp.rows; row++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case wp.taskQueue <- RowTask{Row: row}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for _, worker := range wp.workers {
		worker := worker
		g.Go(func() error {
			return worker.run(ctx)
		})
	}

	err := g.Wait()

	stats := make([]WorkerStats, len(wp.workers))
	for i, worker := range wp.workers {
		stats[i] = worker.stats
	}
	return stats, err
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task, ok := <-w.taskQueue:
			if !ok {
				return nil
			}

			start := time.Now()
			pixels := w.renderer.RenderRow(task.Row)
			w.stats.Busy += time.Since(start)
			w.stats.Rows++
			w.stats.Pixels += pixels
		}
	}
}
