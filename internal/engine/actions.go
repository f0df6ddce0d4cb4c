package engine

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalPlay = errors.New("illegal card play")
	ErrGameOver    = errors.New("game is over")
)

// Game is a deal in progress: hands, the trick on the table and the running
// contract state. Play advances it one card at a time.
type Game struct {
	Contract Contract
	Hands    []Cards
	Kitty    Cards
	Turn     int
	Rotation int
	Score    Score
	// Trick holds the current trick in play order, lead first.
	Trick   []Cards
	Leader  int
	Played  []Cards
	Verdict Camp
}

// NewGame deals a fresh game for seed. The napoleon leads the first trick.
func NewGame(players int, seed int64, contract Contract) *Game {
	hands, kitty := Deal(players, seed)
	return &Game{
		Contract: contract,
		Hands:    hands,
		Kitty:    kitty,
		Turn:     contract.Napoleon,
		Rotation: 1,
		Leader:   contract.Napoleon,
	}
}

func (g *Game) Players() int {
	return len(g.Hands)
}

// Remaining counts the cards still held.
func (g *Game) Remaining() int {
	n := 0
	for _, h := range g.Hands {
		n += h.Count()
	}
	return n
}

// Lead returns the card leading the current trick, or 0.
func (g *Game) Lead() Cards {
	if len(g.Trick) == 0 {
		return 0
	}
	return g.Trick[0]
}

// LegalMoves returns the cards the player on turn may play.
func (g *Game) LegalMoves() Cards {
	if g.Over() {
		return 0
	}
	return LegalMoves(g.Hands[g.Turn], g.Lead())
}

// Over reports whether the contract outcome is decided or the cards ran out.
func (g *Game) Over() bool {
	return g.Verdict != Unsettled || g.Remaining() == 0
}

// Play puts card on the table for the player on turn. A joker led may be
// presented as any suit.
func (g *Game) Play(card Cards) error {
	if g.Over() {
		return ErrGameOver
	}
	if card.Count() != 1 || g.LegalMoves()&card == 0 {
		return fmt.Errorf("%w: %s by seat %d", ErrIllegalPlay, card, g.Turn)
	}
	if len(g.Trick) == 0 {
		g.Leader = g.Turn
	}
	g.Hands[g.Turn] ^= card.Canonical()
	g.Trick = append(g.Trick, card)
	g.Played = append(g.Played, card)
	g.Turn = (g.Turn + g.Rotation) % g.Players()
	if len(g.Trick) < g.Players() {
		return nil
	}

	st := g.Contract.SettleTrick(reversed(g.Trick), g.Leader, g.Rotation, g.Remaining(), g.Score)
	g.Score = st.Score
	g.Verdict = st.Verdict
	g.Rotation = st.Rotation
	g.Turn = st.Winner
	g.Leader = st.Winner
	g.Trick = nil
	return nil
}

func reversed(cards []Cards) []Cards {
	out := make([]Cards, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}

// Clone returns a deep copy.
func (g *Game) Clone() *Game {
	c := *g
	c.Hands = append([]Cards(nil), g.Hands...)
	c.Trick = append([]Cards(nil), g.Trick...)
	c.Played = append([]Cards(nil), g.Played...)
	return &c
}
