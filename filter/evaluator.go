package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*Evaluator)

// WithWorkers sets the number of concurrent chunks
func WithWorkers(workers int) EvaluatorOption {
	return func(e *Evaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the chunk size. Smaller inputs are evaluated
// sequentially.
func WithBatchSize(size int) EvaluatorOption {
	return func(e *Evaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// Evaluator applies filters to large collections in parallel chunks
type Evaluator struct {
	workerCount int
	batchSize   int
}

// NewEvaluator creates an evaluator using GOMAXPROCS workers
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the items matching filter in their original order. The
// first evaluation error cancels the remaining chunks.
func (e *Evaluator) Evaluate(ctx context.Context, filter *Filter, items []any) ([]any, error) {
	if len(items) == 0 {
		return []any{}, nil
	}
	if len(items) < e.batchSize {
		return filter.Apply(items)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	// chunks write disjoint ranges
	matched := make([]bool, len(items))
	for start := 0; start < len(items); start += e.batchSize {
		end := min(start+e.batchSize, len(items))

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				ok, err := filter.match(items[i], i)
				if err != nil {
					return err
				}
				matched[i] = ok
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]any, 0, len(items))
	for i, ok := range matched {
		if ok {
			results = append(results, items[i])
		}
	}
	return results, nil
}
