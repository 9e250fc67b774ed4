package transport

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SolveBatch solves independent instances concurrently, at most
// Options.Concurrency at a time (GOMAXPROCS when 0). Results are in input
// order. The first failure cancels the remaining work and is returned as
// "transport: instance <k>: <cause>"; results of instances that finished
// are still filled in.
func SolveBatch(ctx context.Context, insts []Instance, opts ...Option) ([]*Result, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, len(insts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers())

	for k := range insts {
		k := k // per-iteration copy (go directive < 1.22)
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("transport: instance %d: panic: %v", k, rec)
				}
			}()
			res, err := solve(gctx, insts[k], o)
			if err != nil {
				return fmt.Errorf("transport: instance %d: %w", k, err)
			}
			out[k] = res

			return nil
		})
	}

	return out, g.Wait()
}
