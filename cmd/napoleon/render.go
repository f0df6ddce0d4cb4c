package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"napoleon/internal/engine"
	"napoleon/internal/solver"
)

var (
	redSuit   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	blackSuit = lipgloss.NewStyle()
	jokerCard = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b84dff"))
	seatLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#7b7b9c"))
	verdict   = lipgloss.NewStyle().Bold(true)
)

func renderCard(c engine.Cards) string {
	switch {
	case engine.RankOf(c)&engine.Jokers != 0:
		return jokerCard.Render(c.String())
	case engine.SuitOf(c).Red():
		return redSuit.Render(c.String())
	default:
		return blackSuit.Render(c.String())
	}
}

func renderCards(cards []engine.Cards) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, renderCard(c))
	}
	return strings.Join(parts, " ")
}

func renderPosition(p solver.Position) string {
	var b strings.Builder
	for seat, h := range p.Hands {
		role := ""
		switch seat {
		case p.Contract.Napoleon:
			role = " napoleon"
		case p.Contract.Adjutant:
			role = " adjutant"
		}
		if seat == p.Contract.Napoleon && seat == p.Contract.Adjutant {
			role = " napoleon+adjutant"
		}
		fmt.Fprintf(&b, "%s %s\n", seatLabel.Render(fmt.Sprintf("seat %d%s:", seat, role)), renderCards(h.Slice()))
	}
	if len(p.Trick) > 0 {
		fmt.Fprintf(&b, "%s %s\n", seatLabel.Render("table:"), renderCards(p.Trick))
	}
	fmt.Fprintf(&b, "%s %s, contract %d, points %d/%d, seat %d to play\n",
		seatLabel.Render("trump:"), p.Contract.Trump, p.Contract.Target, p.Score.Declarer, p.Score.Defender, p.Turn)
	return b.String()
}

func renderResult(r solver.Result, seconds float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", verdict.Render(r.Winner.String()+" wins"))
	fmt.Fprintf(&b, "%s\n", renderCards(r.Line()))
	fmt.Fprintf(&b, "%d leaves visited\n", r.Leaves)
	fmt.Fprintf(&b, "%d is an upper bound of the proof number\n", r.Bound)
	fmt.Fprintf(&b, "%.3f sec\n", seconds)
	return b.String()
}

func renderAnalysis(p solver.Position, results []solver.MoveResult) string {
	var b strings.Builder
	camp := p.Contract.CampOf(p.Turn)
	for _, m := range results {
		mark := "  "
		if m.Result.Winner == camp {
			mark = "✓ "
		}
		fmt.Fprintf(&b, "%s%s → %s (%d leaves, bound %d)\n", mark, renderCard(m.Card), m.Result.Winner, m.Result.Leaves, m.Result.Bound)
	}
	if best, ok := solver.Best(results, camp); best.Card != 0 {
		fmt.Fprintf(&b, "best for seat %d (%s): %s", p.Turn, camp, renderCard(best.Card))
		if !ok {
			b.WriteString(", no card wins")
		}
		b.WriteString("\n")
	}
	return b.String()
}
