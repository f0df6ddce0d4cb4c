package sim

import (
	"fmt"

	"lukechampine.com/frand"

	"napoleon/internal/engine"
)

// Player picks the card to play for the seat on turn.
type Player interface {
	ChooseCard(g *engine.Game) engine.Cards
}

// Config shapes a random deal.
type Config struct {
	Players int
	// TricksLeft is the number of whole tricks RandomEndgame leaves unplayed.
	TricksLeft int
	// Target is the contract; zero picks one from 13 to 16.
	Target int
}

type PlayRecord struct {
	Step int
	Seat int
	Card engine.Cards
}

// RandomContract draws seats, trump and target for a deal.
func RandomContract(rng *frand.RNG, players, target int) engine.Contract {
	if target == 0 {
		target = 13 + rng.Intn(4)
	}
	return engine.Contract{
		Napoleon: rng.Intn(players),
		Adjutant: rng.Intn(players),
		Trump:    engine.Suits[rng.Intn(len(engine.Suits))],
		Target:   target,
	}
}

// RandomEndgame deals for seed and plays random legal cards until
// cfg.TricksLeft tricks remain. The returned game may already be decided;
// callers that need an open position check Over.
func RandomEndgame(seed int64, cfg Config) (*engine.Game, error) {
	if cfg.Players == 0 {
		cfg.Players = 4
	}
	if !engine.ValidPlayers(cfg.Players) {
		return nil, fmt.Errorf("cannot deal for %d players", cfg.Players)
	}
	if cfg.TricksLeft < 1 || cfg.TricksLeft > engine.HandSize(cfg.Players) {
		return nil, fmt.Errorf("cannot leave %d tricks with %d cards a hand", cfg.TricksLeft, engine.HandSize(cfg.Players))
	}
	rng := engine.NewRNG(seed)
	g := engine.NewGame(cfg.Players, seed, RandomContract(rng, cfg.Players, cfg.Target))
	stop := cfg.TricksLeft * cfg.Players
	records := []PlayRecord{}
	for step := 0; g.Remaining() > stop || len(g.Trick) > 0; step++ {
		if g.Over() {
			return g, nil
		}
		seat := g.Turn
		card := RandomCard(rng, g.LegalMoves())
		if err := g.Play(card); err != nil {
			return nil, failure(seed, step, seat, records, fmt.Sprintf("play error: %v", err))
		}
		records = append(records, PlayRecord{Step: step, Seat: seat, Card: card})
		if err := Check(g); err != nil {
			return nil, failure(seed, step, seat, records, err.Error())
		}
	}
	return g, nil
}

// PlayOut lets seats play g to the end, checking invariants after every card.
func PlayOut(g *engine.Game, seats []Player, maxSteps int) error {
	records := []PlayRecord{}
	for step := 0; step < maxSteps; step++ {
		if g.Over() {
			return nil
		}
		seat := g.Turn
		card := seats[seat].ChooseCard(g)
		if err := g.Play(card); err != nil {
			return failure(0, step, seat, records, fmt.Sprintf("play error: %v", err))
		}
		records = append(records, PlayRecord{Step: step, Seat: seat, Card: card})
		if err := Check(g); err != nil {
			return failure(0, step, seat, records, err.Error())
		}
	}
	return fmt.Errorf("game not finished after %d steps", maxSteps)
}

// RandomCard picks one card of legal uniformly.
func RandomCard(rng *frand.RNG, legal engine.Cards) engine.Cards {
	cards := legal.Slice()
	return cards[rng.Intn(len(cards))]
}

// Check verifies card conservation and point bounds.
func Check(g *engine.Game) error {
	seen := g.Kitty
	total := g.Kitty.Count()
	add := func(c engine.Cards) error {
		if seen&c != 0 {
			return fmt.Errorf("duplicate card detected: %s", seen&c)
		}
		seen |= c
		total += c.Count()
		return nil
	}
	for seat, h := range g.Hands {
		if h&^engine.FullDeck != 0 {
			return fmt.Errorf("seat %d holds a presented joker: %s", seat, h&^engine.FullDeck)
		}
		if err := add(h); err != nil {
			return err
		}
	}
	for _, c := range g.Played {
		if err := add(c.Canonical()); err != nil {
			return err
		}
	}
	if seen != engine.FullDeck || total != engine.DeckSize {
		return fmt.Errorf("card count mismatch: %d", total)
	}
	if len(g.Trick) >= g.Players() {
		return fmt.Errorf("invalid trick size: %d", len(g.Trick))
	}
	s := g.Score
	if s.Declarer < 0 || s.Defender < 0 || s.Declarer+s.Defender > engine.TotalPoints {
		return fmt.Errorf("points out of range: %+v", s)
	}
	return nil
}

func failure(seed int64, step int, seat int, records []PlayRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[s%d p%d] %s\n", r.Step, r.Seat, r.Card)
	}
	return fmt.Errorf("seed=%d step=%d seat=%d reason=%s\nlast plays:\n%s",
		seed, step, seat, reason, log)
}
