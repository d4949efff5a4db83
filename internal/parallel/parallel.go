// Package parallel fans independent index ranges out over a bounded number of
// goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested worker count. Non-positive values select
// runtime.GOMAXPROCS(0).
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return n
}

// For calls fn(i) for every i in [0, count) using at most workers goroutines.
// The first error cancels the remaining iterations and is returned.
// Cancellation of ctx is observed between iterations.
func For(ctx context.Context, workers, count int, fn func(i int) error) error {
	if count <= 0 {
		return ctx.Err()
	}

	workers = min(Workers(workers), count)
	if workers == 1 {
		for i := range count {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := fn(i); err != nil {
				return err
			}
		}

		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range count {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return fn(i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
