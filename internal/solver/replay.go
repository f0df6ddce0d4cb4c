package solver

import (
	"errors"
	"fmt"

	"napoleon/internal/engine"
)

var ErrInvalidMove = errors.New("invalid move")

// ReplayThenSearch plays moves from the position and searches the remainder.
// It works on a private copy of hands. variation follows the layout Search
// expects but may be longer; moves are recorded into it. A move the mover
// does not hold aborts the replay with ErrInvalidMove.
func ReplayThenSearch(hands []engine.Cards, contract engine.Contract, turn, rotation int, variation []engine.Cards, remaining int, score engine.Score, moves []engine.Cards) (Result, error) {
	hands = append([]engine.Cards(nil), hands...)
	n := len(hands)
	for i, card := range moves {
		held := card.Canonical()
		if card.Count() != 1 || hands[turn]&held == 0 {
			return Result{}, fmt.Errorf("%w: move %d %s is not held by seat %d", ErrInvalidMove, i, card, turn)
		}
		hands[turn] ^= held
		turn = (turn + rotation) % n
		remaining--
		variation[remaining] = card
		if remaining%n == 0 && remaining < len(variation) {
			st := contract.SettleTrick(variation[remaining:remaining+n], turn, rotation, remaining, score)
			if st.Verdict != engine.Unsettled {
				return Result{Winner: st.Verdict, Leaves: 1, Bound: 1}, nil
			}
			turn, rotation, score = st.Winner, st.Rotation, st.Score
		}
	}
	return Search(hands, contract, turn, rotation, variation[:roundUp(remaining, n)], remaining, score), nil
}

// roundUp rounds remaining up to whole tricks.
func roundUp(remaining, players int) int {
	return ((remaining-1)/players + 1) * players
}
