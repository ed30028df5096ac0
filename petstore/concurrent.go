package petstore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 5
	MaxConcurrency     = 20
)

// GetPetsByID fetches pets concurrently. Results keep the order of ids and
// the first failure cancels the remaining requests.
func (a *API) GetPetsByID(ctx context.Context, ids []int64) ([]*Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	// each goroutine owns one index
	pets := make([]*Pet, len(ids))
	for i, id := range ids {
		g.Go(func() error {
			pet, err := a.GetPetByID(ctx, id)
			if err != nil {
				a.logger.Warn().
					Err(err).
					Int64("pet_id", id).
					Msg("Failed to fetch pet")
				return err
			}
			pets[i] = pet
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug().Int("count", len(pets)).Msg("Fetched pets")
	return pets, nil
}
