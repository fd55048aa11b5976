// Package pool provides the worker pool used for parallel graph loading.
//
// A [Pool] is the execution context a load configuration carries: its presence
// is what switches a loader from sequential to parallel loading. Tasks run on
// an errgroup with a concurrency limit equal to the pool size; the first
// failing task cancels the context handed to the remaining ones.
package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default parallelism for loads and pools.
var DefaultConcurrency = runtime.NumCPU()

// Pool runs batches of tasks with bounded parallelism.
// A Pool holds no goroutines between calls to Run and is safe for concurrent use.
type Pool struct {
	size int
}

// New creates a pool running at most size tasks at once.
// A size <= 0 falls back to DefaultConcurrency.
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultConcurrency
	}
	return &Pool{size: size}
}

// Size returns the maximum number of tasks run at once.
func (p *Pool) Size() int { return p.size }

// Run executes all tasks and waits for them to finish.
// It returns the first error encountered. Tasks not yet started when the
// context is cancelled are skipped and report the context error.
func (p *Pool) Run(ctx context.Context, tasks []func(context.Context) error) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)
	for _, task := range tasks {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
				return task(gCtx)
			}
		})
	}
	return g.Wait()
}
