package bond

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/meenmo/germanbond/rates"
)

// BatchOptions configures ProjectAll.
type BatchOptions struct {
	// Workers bounds concurrent projections; <= 0 means one goroutine per
	// bond.
	Workers int
	Solver  rates.SolverConfig
}

// BatchResult is the outcome for terms[Index].
type BatchResult struct {
	Index      int
	Projection Projection
	Err        error
}

// ProjectAll projects every bond concurrently and returns results in input
// order. A failing bond does not affect the others. Once ctx is done, bonds
// not yet started report ctx.Err().
func ProjectAll(ctx context.Context, terms []Terms, opts BatchOptions) []BatchResult {
	results := make([]BatchResult, len(terms))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for i := range terms {
		i := i
		results[i].Index = i
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			p, err := Project(terms[i], opts.Solver)
			results[i].Projection = p
			results[i].Err = err
			// Per-bond failures are results, not group errors.
			return nil
		})
	}

	_ = g.Wait()
	return results
}
