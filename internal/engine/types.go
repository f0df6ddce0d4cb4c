package engine

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Cards is a set of cards packed into four 16-bit suit lanes. A single card
// is a Cards value with exactly one bit set.
type Cards uint64

// Suit is the bit offset of a suit lane.
type Suit uint

const (
	Spade   Suit = 0
	Heart   Suit = 16
	Diamond Suit = 32
	Club    Suit = 48
)

// Rank is a lane-local rank bit.
type Rank uint64

const (
	Two Rank = 1 << iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	BlackJoker
	RedJoker
	ExtraJoker
)

const (
	Plains   = Two | Three | Four | Five | Six | Seven | Eight | Nine
	Pictures = Ten | Jack | Queen | King | Ace
	Jokers   = BlackJoker | RedJoker | ExtraJoker

	// AllSuits broadcasts a lane-local rank into every lane by multiplication.
	AllSuits Cards = 1<<Spade | 1<<Heart | 1<<Diamond | 1<<Club

	// DeckSize counts 52 plain and picture cards plus three jokers.
	DeckSize = 55
	// TotalPoints is the number of picture cards in the deck.
	TotalPoints = 20
)

// JokerCall is the lead that forces jokers out of the hands holding them.
const JokerCall = Cards(Three) << Club

var Suits = []Suit{Spade, Heart, Diamond, Club}

var ErrBadCard = errors.New("bad card")

// Card builds a single card.
func Card(r Rank, s Suit) Cards {
	return Cards(r) << s
}

// SuitOf returns the lane a single card occupies.
func SuitOf(card Cards) Suit {
	return Suit(bits.TrailingZeros64(uint64(card))) &^ 15
}

// RankOf returns the lane-local rank of a single card.
func RankOf(card Cards) Rank {
	return Rank(card >> SuitOf(card))
}

// Mirror returns the other suit of the same color.
func Mirror(s Suit) Suit {
	return 48 - s
}

// ReversingJacks returns the two off-trump jacks whose lone appearance in a
// trick reverses the turn rotation.
func ReversingJacks(trump Suit) Cards {
	return Card(Jack, 16^trump) | Card(Jack, 32^trump)
}

// Canonical collapses a joker presented in any lane back to the identity a
// hand holds. Other cards are returned unchanged.
func (c Cards) Canonical() Cards {
	if c&(Cards(Jokers)*AllSuits) == 0 {
		return c
	}
	return Cards(RankOf(c))
}

// Count returns the number of cards in the set.
func (c Cards) Count() int {
	return bits.OnesCount64(uint64(c))
}

// Points counts the picture cards in the set.
func (c Cards) Points() int {
	return (c & (Cards(Pictures) * AllSuits)).Count()
}

// Each calls f for every card in ascending bit order.
func (c Cards) Each(f func(card Cards)) {
	for c != 0 {
		card := c & -c
		f(card)
		c ^= card
	}
}

// Slice lists the cards in ascending bit order.
func (c Cards) Slice() []Cards {
	out := make([]Cards, 0, c.Count())
	c.Each(func(card Cards) { out = append(out, card) })
	return out
}

func (s Suit) String() string {
	switch s {
	case Spade:
		return "♠"
	case Heart:
		return "♥"
	case Diamond:
		return "♦"
	case Club:
		return "♣"
	default:
		return "?"
	}
}

// Letter is the ASCII form used by the card codec.
func (s Suit) Letter() string {
	switch s {
	case Spade:
		return "S"
	case Heart:
		return "H"
	case Diamond:
		return "D"
	case Club:
		return "C"
	default:
		return "?"
	}
}

// Red reports whether the suit is hearts or diamonds.
func (s Suit) Red() bool {
	return s == Heart || s == Diamond
}

func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	case BlackJoker:
		return "BJ"
	case RedJoker:
		return "RJ"
	case ExtraJoker:
		return "XJ"
	default:
		return "?"
	}
}

// String renders a single card with its suit symbol, or a comma separated
// list for larger sets.
func (c Cards) String() string {
	if c == 0 {
		return ""
	}
	if c.Count() > 1 {
		parts := make([]string, 0, c.Count())
		c.Each(func(card Cards) { parts = append(parts, card.String()) })
		return strings.Join(parts, ",")
	}
	return SuitOf(c).String() + RankOf(c).String()
}

// Code is the ASCII codec form of a single card: "SA", "H10", "BJ", "HXJ".
// Canonical jokers omit the suit letter.
func (c Cards) Code() string {
	r := RankOf(c)
	if r&Jokers != 0 && SuitOf(c) == Spade {
		return r.String()
	}
	return SuitOf(c).Letter() + r.String()
}

var rankCodes = map[string]Rank{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven, "8": Eight,
	"9": Nine, "10": Ten, "T": Ten, "J": Jack, "Q": Queen, "K": King, "A": Ace,
	"BJ": BlackJoker, "RJ": RedJoker, "XJ": ExtraJoker,
}

var suitCodes = map[byte]Suit{'S': Spade, 'H': Heart, 'D': Diamond, 'C': Club}

// ParseSuit reads a suit letter.
func ParseSuit(s string) (Suit, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) == 1 {
		if suit, ok := suitCodes[code[0]]; ok {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown suit %q", ErrBadCard, s)
}

// ParseCard reads the codec form produced by Code.
func ParseCard(s string) (Cards, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if r, ok := rankCodes[code]; ok && r&Jokers != 0 {
		return Card(r, Spade), nil
	}
	if len(code) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	suit, ok := suitCodes[code[0]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown suit in %q", ErrBadCard, s)
	}
	r, ok := rankCodes[code[1:]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown rank in %q", ErrBadCard, s)
	}
	return Card(r, suit), nil
}

// ParseCards reads a comma or space separated card list into a set.
func ParseCards(s string) (Cards, error) {
	var out Cards
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		c, err := ParseCard(f)
		if err != nil {
			return 0, err
		}
		if out&c != 0 {
			return 0, fmt.Errorf("%w: duplicate %s", ErrBadCard, f)
		}
		out |= c
	}
	return out, nil
}

// ParseMoves reads an ordered card list. Unlike ParseCards it keeps order and
// allows presented jokers.
func ParseMoves(s string) ([]Cards, error) {
	var out []Cards
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Camp is a coalition contesting the contract.
type Camp int

const (
	Unsettled Camp = iota
	Napoleonic
	Allied
)

// Opposite returns the other coalition. Unsettled stays unsettled.
func (c Camp) Opposite() Camp {
	switch c {
	case Napoleonic:
		return Allied
	case Allied:
		return Napoleonic
	default:
		return Unsettled
	}
}

func (c Camp) String() string {
	switch c {
	case Napoleonic:
		return "napoleon"
	case Allied:
		return "allied"
	default:
		return "unsettled"
	}
}
