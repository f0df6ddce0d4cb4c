package server

import "napoleon/internal/solver"

type EventPayload struct {
	Card   string `json:"card,omitempty"`
	Winner string `json:"winner,omitempty"`
	Bound  uint64 `json:"bound,omitempty"`
}

// buildEvents reports which candidate cards win for the seat on turn and
// which lose, in card order.
func buildEvents(p solver.Position, results []solver.MoveResult) []Event {
	camp := p.Contract.CampOf(p.Turn)
	events := []Event{}
	for _, m := range results {
		typ := "move_loses"
		if m.Result.Winner == camp {
			typ = "move_wins"
		}
		events = append(events, Event{Type: typ, Data: EventPayload{
			Card:   m.Card.Code(),
			Winner: m.Result.Winner.String(),
			Bound:  m.Result.Bound,
		}})
	}
	return events
}
