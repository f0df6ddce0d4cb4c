package server

import (
	"time"

	"napoleon/internal/solver"
)

type ResultView struct {
	Winner string   `json:"winner"`
	Line   []string `json:"line"`
	Leaves uint64   `json:"leaves"`
	Bound  uint64   `json:"bound"`
	Millis int64    `json:"millis"`
}

type MoveView struct {
	Card   string `json:"card"`
	Winner string `json:"winner"`
	Leaves uint64 `json:"leaves"`
	Bound  uint64 `json:"bound"`
}

type AnalysisView struct {
	Turn  int        `json:"turn"`
	Camp  string     `json:"camp"`
	Moves []MoveView `json:"moves"`
	// Best is the card the seat on turn should play, and Winning whether it
	// forces the contract outcome for that seat's coalition.
	Best    string `json:"best,omitempty"`
	Winning bool   `json:"winning"`
	Millis  int64  `json:"millis"`
}

func BuildResultView(r solver.Result, elapsed time.Duration) *ResultView {
	return &ResultView{
		Winner: r.Winner.String(),
		Line:   codes(r.Line()),
		Leaves: r.Leaves,
		Bound:  r.Bound,
		Millis: elapsed.Milliseconds(),
	}
}

func BuildAnalysisView(p solver.Position, results []solver.MoveResult, elapsed time.Duration) *AnalysisView {
	camp := p.Contract.CampOf(p.Turn)
	view := &AnalysisView{
		Turn:   p.Turn,
		Camp:   camp.String(),
		Moves:  make([]MoveView, 0, len(results)),
		Millis: elapsed.Milliseconds(),
	}
	for _, m := range results {
		view.Moves = append(view.Moves, MoveView{
			Card:   m.Card.Code(),
			Winner: m.Result.Winner.String(),
			Leaves: m.Result.Leaves,
			Bound:  m.Result.Bound,
		})
	}
	if best, ok := solver.Best(results, camp); best.Card != 0 {
		view.Best = best.Card.Code()
		view.Winning = ok
	}
	return view
}
