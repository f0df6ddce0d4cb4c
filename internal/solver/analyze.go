package solver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"napoleon/internal/engine"
)

// MoveResult is the solved outcome after one candidate card.
type MoveResult struct {
	Card   engine.Cards
	Result Result
}

// Lead returns the card leading the position's current trick, or 0.
func (p Position) Lead() engine.Cards {
	if len(p.Trick) == 0 {
		return 0
	}
	return p.Trick[0]
}

// Analyze solves every legal card of the seat on turn, in ascending card
// order. Each card is searched on its own copy of the position by up to
// workers goroutines. Cancelling ctx stops searches that have not started.
func Analyze(ctx context.Context, p Position, workers int) ([]MoveResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	candidates := engine.LegalMoves(p.Hands[p.Turn], p.Lead()).Slice()
	results := make([]MoveResult, len(candidates))
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, card := range candidates {
		i, card := i, card
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := p.SolveAfter([]engine.Cards{card})
			if err != nil {
				return err
			}
			results[i] = MoveResult{Card: card, Result: r}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug().
		Int("candidates", len(candidates)).
		Int("workers", workers).
		Dur("elapsed", time.Since(start)).
		Msg("analyzed")
	return results, nil
}

// Best picks the card a seat of camp should play from an analysis: the first
// winning card, or else the one whose refutation needed the most work.
func Best(results []MoveResult, camp engine.Camp) (MoveResult, bool) {
	if len(results) == 0 {
		return MoveResult{}, false
	}
	best := results[0]
	for _, r := range results {
		if r.Result.Winner == camp {
			return r, true
		}
		if r.Result.Bound > best.Result.Bound {
			best = r
		}
	}
	return best, best.Result.Winner == camp
}
