package bots

import (
	"fmt"
	"math/bits"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"napoleon/internal/engine"
	"napoleon/internal/solver"
)

// Bot picks the card to play for the seat on turn.
type Bot interface {
	ChooseCard(g *engine.Game) engine.Cards
}

type EasyBot struct {
	RNG *frand.RNG
}

func NewEasy(seed int64) *EasyBot {
	return &EasyBot{RNG: engine.NewRNG(seed)}
}

func (b *EasyBot) ChooseCard(g *engine.Game) engine.Cards {
	legal := g.LegalMoves().Slice()
	if len(legal) == 0 {
		return 0
	}
	return legal[b.RNG.Intn(len(legal))]
}

type NormalBot struct{}

func NewNormal() *NormalBot {
	return &NormalBot{}
}

func (b *NormalBot) ChooseCard(g *engine.Game) engine.Cards {
	legal := g.LegalMoves().Slice()
	if len(legal) == 0 {
		return 0
	}
	if len(g.Trick) == 0 {
		// Lead with the highest point card
		best := legal[0]
		for _, c := range legal {
			if worth(c) > worth(best) {
				best = c
			}
		}
		return best
	}
	// Try to take the trick with the cheapest winning card
	var cheapest engine.Cards
	for _, c := range legal {
		if winsIfPlayed(g, c) && (cheapest == 0 || worth(c) < worth(cheapest)) {
			cheapest = c
		}
	}
	if cheapest != 0 {
		return cheapest
	}
	// Otherwise shed the cheapest card
	lowest := legal[0]
	for _, c := range legal {
		if worth(c) < worth(lowest) {
			lowest = c
		}
	}
	return lowest
}

// worth orders cards by points first, then by rank within the lane.
func worth(c engine.Cards) int {
	rank := bits.TrailingZeros64(uint64(engine.RankOf(c)))
	return c.Points()*16 + rank
}

// winsIfPlayed reports whether card would be on top of the trick so far.
func winsIfPlayed(g *engine.Game, card engine.Cards) bool {
	n := g.Players()
	trick := make([]engine.Cards, 0, len(g.Trick)+1)
	trick = append(trick, card)
	for i := len(g.Trick) - 1; i >= 0; i-- {
		trick = append(trick, g.Trick[i])
	}
	left := g.Remaining() - (n - len(g.Trick))
	return engine.TrickTaker(trick, g.Contract.Trump, engine.IsFirstTrick(left, n)) == len(g.Trick)
}

// PerfectBot plays a solver-proven card once few enough cards remain and
// falls back to NormalBot before that.
type PerfectBot struct {
	// Limit is the largest number of cards left in the hands it will solve.
	Limit    int
	Fallback Bot
}

func NewPerfect(limit int) *PerfectBot {
	return &PerfectBot{Limit: limit, Fallback: NewNormal()}
}

func (b *PerfectBot) ChooseCard(g *engine.Game) engine.Cards {
	if g.Remaining() > b.Limit {
		return b.Fallback.ChooseCard(g)
	}
	r, err := solver.FromGame(g).Solve()
	if err != nil || len(r.Variation) == 0 {
		log.Warn().Err(err).Int("seat", g.Turn).Msg("perfect bot could not solve, falling back")
		return b.Fallback.ChooseCard(g)
	}
	return r.Line()[0]
}

// New builds a bot by name: easy, normal or perfect.
func New(name string, seed int64, limit int) (Bot, error) {
	switch name {
	case "easy":
		return NewEasy(seed), nil
	case "normal":
		return NewNormal(), nil
	case "perfect":
		return NewPerfect(limit), nil
	}
	return nil, fmt.Errorf("unknown bot %q", name)
}
