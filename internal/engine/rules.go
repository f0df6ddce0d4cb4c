package engine

import (
	"fmt"
	"math/bits"
)

// LegalMoves returns the cards a hand may contribute to a trick led by lead.
// A zero lead means the hand leads, in which case every joker held is also
// offered presented as each suit.
func LegalMoves(hand, lead Cards) Cards {
	jokers := hand & Cards(Jokers)
	switch {
	case lead == 0:
		return hand | jokers*AllSuits
	case lead == JokerCall && jokers != 0:
		return jokers
	}
	follow := hand & (Cards(Plains|Pictures) << SuitOf(lead))
	if follow != 0 {
		return follow | jokers
	}
	return hand
}

// Mighty returns the strongest plain card for the trump suit.
func Mighty(trump Suit) Cards {
	if trump != Spade {
		return Card(Ace, Spade)
	}
	return Card(Ace, Club)
}

// TrickTaker finds the winner of a completed trick. The trick is laid out
// the way the variation buffer holds it: the most recent card first and the
// lead last. The result is the winner's offset from the leader in play order.
// It panics on a malformed trick whose lead is not a single card.
func TrickTaker(trick []Cards, trump Suit, firstTrick bool) int {
	var field Cards
	for _, c := range trick {
		field |= c
	}
	strongest := strongestIn(field, trick[len(trick)-1], trump, firstTrick)
	for i, c := range trick {
		if c&strongest != 0 {
			return len(trick) - 1 - i
		}
	}
	panic(fmt.Sprintf("malformed trick %v: no card takes it", trick))
}

func strongestIn(field, lead Cards, trump Suit, firstTrick bool) Cards {
	mighty := Mighty(trump)
	queen := Card(Queen, Heart)
	switch {
	case field&mighty != 0:
		if field&queen != 0 {
			return queen
		}
		return mighty
	case field&(Cards(Jokers)*AllSuits) != 0:
		if extra := Cards(ExtraJoker) * AllSuits; field&extra != 0 {
			return extra
		}
		return Cards(BlackJoker|RedJoker) * AllSuits
	case field&Card(Jack, trump) != 0:
		return Card(Jack, trump)
	case field&Card(Jack, Mirror(trump)) != 0:
		return Card(Jack, Mirror(trump))
	}
	critical := SuitOf(lead)
	if field&(Cards(Plains|Pictures)<<trump) != 0 {
		critical = trump
	}
	effective := field & (Cards(Plains|Pictures) << critical)
	if effective == 0 {
		return 0
	}
	if !firstTrick && effective == field && effective&(Cards(Two)*AllSuits) != 0 {
		return Card(Two, critical)
	}
	return 1 << (63 - bits.LeadingZeros64(uint64(effective)))
}

// IsFirstTrick reports whether a trick completed with remaining cards left in
// the hands was the opening trick of the deal.
func IsFirstTrick(remaining, players int) bool {
	return remaining >= 50-(50%players)-players
}

// Reverses reports whether a trick holding field flips the rotation. Two
// reversing jacks together cancel out.
func Reverses(field Cards, trump Suit) bool {
	return (field & ReversingJacks(trump)).Count() == 1
}

// Judge maps running point totals to a verdict.
func Judge(contract, declarer, defender int) Camp {
	if defender > TotalPoints-contract || declarer == TotalPoints && contract < TotalPoints {
		return Allied
	}
	if declarer >= contract && (defender > 0 || contract == TotalPoints) {
		return Napoleonic
	}
	return Unsettled
}

// Contract fixes the declaring seats, trump and target of a deal.
type Contract struct {
	Napoleon int
	Adjutant int
	Trump    Suit
	Target   int
}

// CampOf returns the coalition a seat belongs to.
func (c Contract) CampOf(seat int) Camp {
	if seat == c.Napoleon || seat == c.Adjutant {
		return Napoleonic
	}
	return Allied
}

// Score holds the points captured so far by each coalition.
type Score struct {
	Declarer int
	Defender int
}

// Settlement is the outcome of one completed trick.
type Settlement struct {
	Winner   int
	Rotation int
	Score    Score
	Verdict  Camp
}

// SettleTrick scores a completed trick laid out most recent card first.
// leader is the seat that led it and remaining the number of cards still in
// the hands. The trick that empties the hands hands its winner the whole
// uncounted pool instead of its own picture cards.
func (c Contract) SettleTrick(trick []Cards, leader, rotation, remaining int, score Score) Settlement {
	n := len(trick)
	var field Cards
	for _, card := range trick {
		field |= card
	}
	taker := TrickTaker(trick, c.Trump, IsFirstTrick(remaining, n))
	winner := (leader + taker*rotation) % n
	declaring := c.CampOf(winner) == Napoleonic
	switch {
	case remaining == 0 && declaring:
		score.Declarer = TotalPoints - score.Defender
	case remaining == 0:
		score.Defender = TotalPoints - score.Declarer
	case declaring:
		score.Declarer += field.Points()
	default:
		score.Defender += field.Points()
	}
	if Reverses(field, c.Trump) {
		rotation = n - rotation
	}
	return Settlement{
		Winner:   winner,
		Rotation: rotation,
		Score:    score,
		Verdict:  Judge(c.Target, score.Declarer, score.Defender),
	}
}
