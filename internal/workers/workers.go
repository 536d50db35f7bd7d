// Package workers runs independent row or column jobs on a bounded number of
// goroutines. Returning from ForEach is a barrier: every job has finished.
package workers

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Limit resolves a requested worker count. Values <= 0 select GOMAXPROCS.
func Limit(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// ForEach calls fn on contiguous index ranges [lo, hi) covering [0, n).
// At most limit ranges run at once. With a limit of 1 (or n small enough to
// form one range) everything runs on the calling goroutine.
func ForEach(n, limit int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}

	limit = Limit(limit)
	if limit > n {
		limit = n
	}
	if limit == 1 {
		return fn(0, n)
	}

	chunk := (n + limit - 1) / limit

	var g errgroup.Group
	g.SetLimit(limit)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := fn(lo, hi); err != nil {
				return fmt.Errorf("workers: range [%d,%d): %w", lo, hi, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Each calls fn for every index in [0, n) using ForEach.
func Each(n, limit int, fn func(i int)) {
	_ = ForEach(n, limit, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			fn(i)
		}
		return nil
	})
}
