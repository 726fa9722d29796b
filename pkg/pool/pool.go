// Package pool provides a bounded-concurrency map over a list of inputs.
package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over inputs with at most limit invocations in flight at once.
// Results land in pre-sized slots indexed by input position, so the output
// order always matches the input order regardless of completion order, and
// a slow early item never blocks submission of later ones.
//
// Errors are fn's business: the first non-nil error cancels the remaining
// work and is returned. Callers that want per-item failure isolation wrap fn
// to convert failures into sentinel results instead of returning them.
func Map[T, R any](ctx context.Context, inputs []T, limit int, fn func(ctx context.Context, in T) (R, error)) ([]R, error) {
	if len(inputs) == 0 {
		return []R{}, nil
	}
	if limit < 1 {
		limit = 1
	}

	results := make([]R, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		g.Go(func() error {
			res, err := fn(ctx, in)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
