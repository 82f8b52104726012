// Package parallel runs a function over a slice with a bounded worker
// pool. Results come back in input order; errors are collected, not
// short-circuited.
package parallel

import (
	"context"
	"sync"
)

// Options configure the pool.
type Options struct {
	// MaxWorkers bounds concurrency; defaults to 4.
	MaxWorkers int
}

// Run applies fn to every item. The returned slice is index-aligned with
// items; errs holds every non-nil error fn produced. A canceled context
// stops workers from picking up new items but already-started calls run
// to completion.
func Run[T any, R any](
	ctx context.Context,
	items []T,
	opts Options,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int, len(items))
	type outcome struct {
		index  int
		result R
		err    error
	}
	results := make(chan outcome, len(items))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					results <- outcome{index: i, err: ctx.Err()}
				default:
					r, err := fn(ctx, i, items[i])
					results <- outcome{index: i, result: r, err: err}
				}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, len(items))
	var errs []error
	for range items {
		res := <-results
		if res.err != nil {
			errs = append(errs, res.err)
		}
		out[res.index] = res.result
	}
	return out, errs
}
