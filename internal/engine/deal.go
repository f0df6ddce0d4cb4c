package engine

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// FullDeck holds all 55 cards in canonical form.
const FullDeck = Cards(Plains|Pictures)*AllSuits | Cards(Jokers)

// BuildDeck lists the deck in ascending bit order.
func BuildDeck() []Cards {
	return FullDeck.Slice()
}

// NewRNG returns a deterministic generator for seed.
func NewRNG(seed int64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, uint64(seed))
	return frand.NewCustom(key, 1024, 12)
}

func Shuffle(deck []Cards, seed int64) []Cards {
	shuffled := make([]Cards, len(deck))
	copy(shuffled, deck)
	rng := NewRNG(seed)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// HandSize is the number of cards each of players receives.
func HandSize(players int) int {
	return (50 - 50%players) / players
}

// ValidPlayers reports whether a deal can seat players.
func ValidPlayers(players int) bool {
	return players >= 2 && players <= 10
}

// Deal shuffles the deck for seed and splits it into player hands and the
// kitty. It is deterministic in seed.
func Deal(players int, seed int64) (hands []Cards, kitty Cards) {
	if !ValidPlayers(players) {
		panic("invalid deal configuration: player count")
	}
	deck := Shuffle(BuildDeck(), seed)
	size := HandSize(players)
	hands = make([]Cards, players)
	idx := 0
	for p := 0; p < players; p++ {
		for _, c := range deck[idx : idx+size] {
			hands[p] |= c
		}
		idx += size
	}
	for _, c := range deck[idx:] {
		kitty |= c
	}
	return hands, kitty
}
