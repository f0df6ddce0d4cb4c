package engine_test

import (
	"testing"

	"lukechampine.com/frand"

	"napoleon/internal/engine"
	"napoleon/internal/engine/sim"
)

type randomSeat struct {
	rng *frand.RNG
}

func (r randomSeat) ChooseCard(g *engine.Game) engine.Cards {
	return sim.RandomCard(r.rng, g.LegalMoves())
}

func runSelfPlay(t *testing.T, seed int64, players int) {
	rng := engine.NewRNG(seed)
	g := engine.NewGame(players, seed, sim.RandomContract(rng, players, 0))
	seats := make([]sim.Player, players)
	for i := range seats {
		seats[i] = randomSeat{rng: rng}
	}
	if err := sim.PlayOut(g, seats, engine.DeckSize); err != nil {
		t.Fatalf("self-play failed: %v", err)
	}
	if g.Verdict == engine.Unsettled {
		t.Fatalf("seed %d: finished game left unsettled: %+v", seed, g.Score)
	}
}

func TestSelfPlayManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		runSelfPlay(t, seed, 4)
		runSelfPlay(t, seed, 5)
	}
}

func TestRandomEndgameLeavesTricks(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g, err := sim.RandomEndgame(seed, sim.Config{Players: 4, TricksLeft: 3})
		if err != nil {
			t.Fatalf("random endgame failed: %v", err)
		}
		if g.Over() {
			continue
		}
		if g.Remaining() != 12 || len(g.Trick) != 0 {
			t.Fatalf("seed %d: expected 12 cards left and an empty trick, got %d/%d", seed, g.Remaining(), len(g.Trick))
		}
	}
}

func FuzzSelfPlay(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20260211))
	f.Fuzz(func(t *testing.T, seed int64) {
		runSelfPlay(t, seed, 4)
	})
}
