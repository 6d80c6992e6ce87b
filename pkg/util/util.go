package util

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Concurrently runs thunk once per concurrency level and blocks until all
// invocations return. Output is expected to flow through channels owned by
// the caller. The first error cancels the shared context and is returned.
func Concurrently(ctx context.Context, concurrency uint, thunk func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := uint(0); i < concurrency; i++ {
		g.Go(func() error {
			return thunk(ctx)
		})
	}
	return g.Wait()
}

// ForEachChunk splits [0, n) into contiguous ranges of at least minChunk
// elements and calls fn on them with at most concurrency goroutines. Ranges
// are disjoint, so fn may write to per-element output without locking.
// Small inputs are handled on the calling goroutine.
func ForEachChunk(ctx context.Context, n, minChunk, concurrency int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if minChunk < 1 {
		minChunk = 1
	}
	chunk := (n + concurrency - 1) / concurrency
	if chunk < minChunk {
		chunk = minChunk
	}
	if chunk >= n {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(0, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for lo := 0; lo < n; lo += chunk {
		if gctx.Err() != nil {
			break
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
