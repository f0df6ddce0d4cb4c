package server

import (
	"fmt"

	"napoleon/internal/engine"
	"napoleon/internal/solver"
)

// PositionDTO is the wire form of a solver position. Cards use the ASCII
// codec ("SA", "H10", "BJ", "HXJ").
type PositionDTO struct {
	// Hands holds one comma or space separated card list per seat.
	Hands    []string `json:"hands"`
	Napoleon int      `json:"napoleon"`
	Adjutant int      `json:"adjutant"`
	Turn     int      `json:"turn"`
	// Reversed means play currently runs against the seat order.
	Reversed bool   `json:"reversed,omitempty"`
	Trump    string `json:"trump"`
	Contract int    `json:"contract"`
	Declarer int    `json:"declarer"`
	Defender int    `json:"defender"`
	// Trick lists the cards already on the table, lead first.
	Trick []string `json:"trick,omitempty"`
	// Moves are replayed before searching.
	Moves []string `json:"moves,omitempty"`
}

func (d *PositionDTO) ToPosition() (solver.Position, []engine.Cards, error) {
	if d == nil {
		return solver.Position{}, nil, fmt.Errorf("%w: position missing", solver.ErrInvalidPosition)
	}
	hands := make([]engine.Cards, len(d.Hands))
	for i, h := range d.Hands {
		cards, err := engine.ParseCards(h)
		if err != nil {
			return solver.Position{}, nil, fmt.Errorf("hand %d: %w", i, err)
		}
		hands[i] = cards
	}
	trump, err := engine.ParseSuit(d.Trump)
	if err != nil {
		return solver.Position{}, nil, err
	}
	trick, err := parseList(d.Trick)
	if err != nil {
		return solver.Position{}, nil, fmt.Errorf("trick: %w", err)
	}
	moves, err := parseList(d.Moves)
	if err != nil {
		return solver.Position{}, nil, fmt.Errorf("moves: %w", err)
	}
	rotation := 1
	if d.Reversed {
		rotation = len(hands) - 1
	}
	p := solver.Position{
		Hands: hands,
		Contract: engine.Contract{
			Napoleon: d.Napoleon,
			Adjutant: d.Adjutant,
			Trump:    trump,
			Target:   d.Contract,
		},
		Turn:     d.Turn,
		Rotation: rotation,
		Score:    engine.Score{Declarer: d.Declarer, Defender: d.Defender},
		Trick:    trick,
	}
	return p, moves, nil
}

func parseList(codes []string) ([]engine.Cards, error) {
	out := make([]engine.Cards, 0, len(codes))
	for _, code := range codes {
		c, err := engine.ParseCard(code)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func codes(cards []engine.Cards) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Code())
	}
	return out
}
