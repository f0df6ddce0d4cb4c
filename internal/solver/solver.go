// Package solver decides Napoleon end-games exactly. The search is a
// depth-first AND/OR walk over every legal card: a node returns as soon as
// one card wins for the coalition on turn, and otherwise proves the other
// coalition the winner after trying them all.
package solver

import "napoleon/internal/engine"

// Result is the verdict of a search together with its diagnostics.
type Result struct {
	Winner engine.Camp
	// Variation is the principal line, leaf to root.
	Variation []engine.Cards
	// Leaves counts the terminal judgments visited.
	Leaves uint64
	// Bound is an upper bound of the proof number.
	Bound uint64
}

// Line returns the principal variation root to leaf.
func (r Result) Line() []engine.Cards {
	out := make([]engine.Cards, len(r.Variation))
	for i, c := range r.Variation {
		out[len(out)-1-i] = c
	}
	return out
}

type search struct {
	hands     []engine.Cards
	contract  engine.Contract
	variation []engine.Cards
}

// Search solves the position whose hands hold remaining cards. variation is
// indexed by the number of cards left to play; entries at and above
// remaining must hold the cards already played in the current trick, and its
// length must be remaining rounded up to a multiple of the player count.
// hands is mutated during the search and restored before Search returns.
func Search(hands []engine.Cards, contract engine.Contract, turn, rotation int, variation []engine.Cards, remaining int, score engine.Score) Result {
	s := &search{hands: hands, contract: contract, variation: variation}
	return s.solve(turn, rotation, remaining, score)
}

func (s *search) solve(turn, rotation, remaining int, score engine.Score) Result {
	n := len(s.hands)
	remainder := remaining % n
	if remainder == 0 && remaining < len(s.variation) {
		st := s.contract.SettleTrick(s.variation[remaining:remaining+n], turn, rotation, remaining, score)
		if st.Verdict != engine.Unsettled {
			return Result{Winner: st.Verdict, Leaves: 1, Bound: 1}
		}
		turn, rotation, score = st.Winner, st.Rotation, st.Score
	}
	if remaining == n {
		return s.lastTrick(turn, rotation, score)
	}

	belonging := s.contract.CampOf(turn)
	var lead engine.Cards
	if remainder != 0 {
		lead = s.variation[remaining-remainder+n-1]
	}
	var leaves, disproof, greatest uint64
	var toughest []engine.Cards
	for choice := engine.LegalMoves(s.hands[turn], lead); choice != 0; {
		card := choice & -choice
		choice ^= card
		r := s.descend(turn, rotation, remaining, card, score)
		r.Variation = append(r.Variation, card)
		leaves += r.Leaves
		disproof += r.Bound
		if r.Winner == belonging {
			return Result{Winner: belonging, Variation: r.Variation, Leaves: leaves, Bound: r.Bound}
		}
		if r.Bound > greatest {
			toughest, greatest = r.Variation, r.Bound
		}
	}
	return Result{Winner: belonging.Opposite(), Variation: toughest, Leaves: leaves, Bound: disproof}
}

// descend plays card for turn and searches the rest. The card goes back into
// the hand on every return path.
func (s *search) descend(turn, rotation, remaining int, card engine.Cards, score engine.Score) Result {
	held := card.Canonical()
	s.hands[turn] ^= held
	defer func() { s.hands[turn] ^= held }()
	s.variation[remaining-1] = card
	return s.solve((turn+rotation)%len(s.hands), rotation, remaining-1, score)
}

// lastTrick resolves the forced final trick led by turn: every hand holds a
// single card.
func (s *search) lastTrick(turn, rotation int, score engine.Score) Result {
	n := len(s.hands)
	trick := make([]engine.Cards, 0, n)
	seat := turn
	for i := 0; i < n; i++ {
		seat = (seat + n - rotation) % n
		trick = append(trick, s.hands[seat])
	}
	st := s.contract.SettleTrick(trick, turn, rotation, 0, score)
	return Result{Winner: st.Verdict, Variation: trick, Leaves: 1, Bound: 1}
}
