package solver

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"napoleon/internal/engine"
)

var ErrInvalidPosition = errors.New("invalid position")

// Position is a complete solver input.
type Position struct {
	Hands    []engine.Cards
	Contract engine.Contract
	// Turn is the seat to play next.
	Turn int
	// Rotation is 1, or players-1 once play runs the other way round.
	Rotation int
	Score    engine.Score
	// Trick lists the cards already on the table, lead first.
	Trick []engine.Cards
}

// FromGame snapshots a game in progress.
func FromGame(g *engine.Game) Position {
	return Position{
		Hands:    append([]engine.Cards(nil), g.Hands...),
		Contract: g.Contract,
		Turn:     g.Turn,
		Rotation: g.Rotation,
		Score:    g.Score,
		Trick:    append([]engine.Cards(nil), g.Trick...),
	}
}

// Remaining counts the cards still held.
func (p Position) Remaining() int {
	n := 0
	for _, h := range p.Hands {
		n += h.Count()
	}
	return n
}

// Validate checks the preconditions Search relies on.
func (p Position) Validate() error {
	n := len(p.Hands)
	switch {
	case n < 2:
		return fmt.Errorf("%w: need at least two players, got %d", ErrInvalidPosition, n)
	case !seat(p.Turn, n) || !seat(p.Contract.Napoleon, n) || !seat(p.Contract.Adjutant, n):
		return fmt.Errorf("%w: seat out of range", ErrInvalidPosition)
	case p.Rotation != 1 && p.Rotation != n-1:
		return fmt.Errorf("%w: rotation %d", ErrInvalidPosition, p.Rotation)
	case p.Contract.Target < 0 || p.Contract.Target > engine.TotalPoints:
		return fmt.Errorf("%w: contract %d", ErrInvalidPosition, p.Contract.Target)
	case p.Score.Declarer < 0 || p.Score.Defender < 0 || p.Score.Declarer+p.Score.Defender > engine.TotalPoints:
		return fmt.Errorf("%w: score %+v", ErrInvalidPosition, p.Score)
	case len(p.Trick) >= n:
		return fmt.Errorf("%w: trick holds %d cards", ErrInvalidPosition, len(p.Trick))
	}
	var seen engine.Cards
	for i, h := range p.Hands {
		if h&^engine.FullDeck != 0 {
			return fmt.Errorf("%w: seat %d holds presented jokers %s", ErrInvalidPosition, i, h&^engine.FullDeck)
		}
		if seen&h != 0 {
			return fmt.Errorf("%w: %s dealt twice", ErrInvalidPosition, seen&h)
		}
		seen |= h
	}
	for _, c := range p.Trick {
		if c.Count() != 1 || seen&c.Canonical() != 0 {
			return fmt.Errorf("%w: trick card %s", ErrInvalidPosition, c)
		}
		seen |= c.Canonical()
	}
	remaining := p.Remaining()
	if remaining == 0 {
		return fmt.Errorf("%w: no cards left", ErrInvalidPosition)
	}
	if (remaining+len(p.Trick))%n != 0 {
		return fmt.Errorf("%w: %d cards held with %d on the table do not make whole tricks", ErrInvalidPosition, remaining, len(p.Trick))
	}
	return nil
}

func seat(i, n int) bool {
	return i >= 0 && i < n
}

// buffer lays out the variation buffer with the current trick prefilled.
func (p Position) buffer() []engine.Cards {
	size := p.Remaining() + len(p.Trick)
	variation := make([]engine.Cards, size)
	for i, c := range p.Trick {
		variation[size-1-i] = c
	}
	return variation
}

// Solve validates and searches the position. The position is not modified.
func (p Position) Solve() (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	hands := append([]engine.Cards(nil), p.Hands...)
	r := Search(hands, p.Contract, p.Turn, p.Rotation, p.buffer(), p.Remaining(), p.Score)
	logResult(r, p.Remaining(), 0, start)
	return r, nil
}

// SolveAfter replays moves from the position and searches the remainder.
func (p Position) SolveAfter(moves []engine.Cards) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if len(moves) > p.Remaining() {
		return Result{}, fmt.Errorf("%w: %d moves with %d cards left", ErrInvalidMove, len(moves), p.Remaining())
	}
	start := time.Now()
	r, err := ReplayThenSearch(p.Hands, p.Contract, p.Turn, p.Rotation, p.buffer(), p.Remaining(), p.Score, moves)
	if err != nil {
		return Result{}, err
	}
	logResult(r, p.Remaining(), len(moves), start)
	return r, nil
}

func logResult(r Result, remaining, replayed int, start time.Time) {
	log.Debug().
		Int("remaining", remaining).
		Int("replayed", replayed).
		Str("winner", r.Winner.String()).
		Uint64("leaves", r.Leaves).
		Uint64("bound", r.Bound).
		Dur("elapsed", time.Since(start)).
		Msg("solved")
}
