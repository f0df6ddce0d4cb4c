package engine

import (
	"strings"
	"testing"
)

func TestLegalMoves(t *testing.T) {
	cases := []struct {
		name string
		hand Cards
		lead Cards
		want Cards
	}{
		{"lead plain", Card(Ace, Spade) | Card(Queen, Heart) | Card(Three, Club), 0, Card(Ace, Spade) | Card(Queen, Heart) | Card(Three, Club)},
		{"lead with jokers", Card(Ace, Spade) | Cards(RedJoker|ExtraJoker), 0, Card(Ace, Spade) | Cards(RedJoker|ExtraJoker)*AllSuits},
		{"joker call", Card(Ace, Spade) | Cards(RedJoker|ExtraJoker), JokerCall, Cards(RedJoker | ExtraJoker)},
		{"joker call without jokers", Card(Ace, Spade) | Card(Jack|Ace, Club), JokerCall, Card(Jack|Ace, Club)},
		{"follow with joker", Card(Ace, Spade) | Card(Jack, Club) | Cards(BlackJoker), Card(King, Spade), Card(Ace, Spade) | Cards(BlackJoker)},
		{"void", Card(Ace, Spade) | Card(Jack, Club) | Cards(BlackJoker), Card(Queen, Heart), Card(Ace, Spade) | Card(Jack, Club) | Cards(BlackJoker)},
		{"presented joker lead", Card(Five, Heart) | Card(Six, Spade), Card(ExtraJoker, Heart), Card(Five, Heart)},
	}
	for _, tc := range cases {
		if got := LegalMoves(tc.hand, tc.lead); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestLegalMovesNeverEmpty(t *testing.T) {
	hands, _ := Deal(4, 7)
	for _, hand := range hands {
		for _, lead := range append(BuildDeck(), 0) {
			if hand&lead != 0 {
				continue
			}
			if LegalMoves(hand, lead) == 0 {
				t.Fatalf("no legal move for %s against %s", hand, lead)
			}
		}
	}
}

func TestTrickTaker(t *testing.T) {
	qh, as, ac := Card(Queen, Heart), Card(Ace, Spade), Card(Ace, Club)
	cases := []struct {
		trick []Cards
		trump Suit
		first bool
		want  int
	}{
		{[]Cards{qh, as, Cards(ExtraJoker), Card(Jack, Diamond), ac}, Heart, false, 4},
		{[]Cards{qh, as, Cards(ExtraJoker), Card(Jack, Diamond), ac}, Spade, false, 4},
		{[]Cards{as, Cards(ExtraJoker), Card(Jack, Diamond), ac}, Club, false, 3},
		{[]Cards{as, Cards(ExtraJoker), Card(Jack, Diamond), ac}, Spade, false, 0},
		{[]Cards{ac, Cards(RedJoker), Cards(BlackJoker), Cards(ExtraJoker)}, Diamond, false, 0},
		{[]Cards{Card(Jack, Heart), Cards(RedJoker), Cards(BlackJoker), Card(Jack, Diamond)}, Diamond, false, 2},
		{[]Cards{as, Card(Jack, Diamond), Cards(BlackJoker), Cards(RedJoker)}, Spade, false, 1},
		{[]Cards{Card(Jack, Spade), Card(Jack, Club), Card(Jack, Heart), Card(Jack, Diamond)}, Spade, false, 3},
		{[]Cards{as, Card(Jack, Club), Card(Jack, Heart), Card(Jack, Diamond)}, Spade, false, 2},
		{[]Cards{Card(King, Spade), Card(Jack, Diamond), Card(Ace, Heart), as, Card(Jack, Heart)}, Spade, false, 1},
		{[]Cards{qh, Card(Ten, Heart), Card(Ace, Heart), Card(Two, Heart), Card(Three, Heart)}, Heart, false, 1},
		{[]Cards{qh, Card(Ten, Heart), Card(Ace, Heart), Card(Two, Heart), Card(Three, Heart)}, Heart, true, 2},
		{[]Cards{Card(Ten, Spade), Card(King, Club), Card(Ace, Heart), Card(Queen, Club)}, Diamond, false, 2},
	}
	for i, tc := range cases {
		got := TrickTaker(tc.trick, tc.trump, tc.first)
		if got != tc.want {
			t.Fatalf("case %d: expected winner %d, got %d", i, tc.want, got)
		}
		if again := TrickTaker(tc.trick, tc.trump, tc.first); again != got {
			t.Fatalf("case %d: evaluation not stable: %d then %d", i, got, again)
		}
	}
}

func TestTrickTakerPanicsOnMalformedTrick(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic for a trick led by no card")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "malformed trick") {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	TrickTaker([]Cards{Card(Five, Heart), 0}, Club, false)
}

func TestIsFirstTrick(t *testing.T) {
	if !IsFirstTrick(45, 5) || IsFirstTrick(40, 5) || IsFirstTrick(0, 5) {
		t.Fatalf("five player first trick boundary wrong")
	}
	if !IsFirstTrick(44, 4) || IsFirstTrick(40, 4) || IsFirstTrick(0, 4) {
		t.Fatalf("four player first trick boundary wrong")
	}
}

func TestReversingJacks(t *testing.T) {
	cases := map[Suit]Cards{
		Spade:   Card(Jack, Heart) | Card(Jack, Diamond),
		Heart:   Card(Jack, Spade) | Card(Jack, Club),
		Diamond: Card(Jack, Spade) | Card(Jack, Club),
		Club:    Card(Jack, Heart) | Card(Jack, Diamond),
	}
	for trump, want := range cases {
		if got := ReversingJacks(trump); got != want {
			t.Fatalf("trump %s: got %s want %s", trump, got, want)
		}
	}
	if !Reverses(Card(Jack, Spade)|Card(Four, Heart), Heart) {
		t.Fatalf("a lone reversing jack should reverse")
	}
	if Reverses(Card(Jack, Spade)|Card(Jack, Club), Heart) {
		t.Fatalf("two reversing jacks should cancel out")
	}
}

func TestJudge(t *testing.T) {
	cases := []struct {
		contract, declarer, defender int
		want                         Camp
	}{
		{20, 19, 1, Allied},
		{19, 20, 0, Allied},
		{17, 17, 1, Napoleonic},
		{20, 20, 0, Napoleonic},
		{18, 17, 2, Unsettled},
	}
	for _, tc := range cases {
		if got := Judge(tc.contract, tc.declarer, tc.defender); got != tc.want {
			t.Fatalf("Judge(%d, %d, %d) = %s, want %s", tc.contract, tc.declarer, tc.defender, got, tc.want)
		}
	}
}

func TestJudgeMonotonic(t *testing.T) {
	for contract := 0; contract <= TotalPoints; contract++ {
		for declarer := 0; declarer <= TotalPoints; declarer++ {
			for defender := 0; declarer+defender < TotalPoints; defender++ {
				before := Judge(contract, declarer, defender)
				after := Judge(contract, declarer, defender+1)
				if before == Allied && after != Allied {
					t.Fatalf("defender points undid an allied win: %d %d %d", contract, declarer, defender)
				}
				if Judge(contract, declarer+1, defender) == Napoleonic && before == Allied {
					t.Fatalf("declarer points undid an allied win: %d %d %d", contract, declarer, defender)
				}
			}
		}
	}
}

func TestSettleTrickScoresWinner(t *testing.T) {
	c := Contract{Napoleon: 0, Adjutant: 2, Trump: Heart, Target: 13}
	// play order S5 SK S2 HJ, leader seat 0
	trick := []Cards{Card(Jack, Heart), Card(Two, Spade), Card(King, Spade), Card(Five, Spade)}
	st := c.SettleTrick(trick, 0, 1, 4, Score{})
	if st.Winner != 3 {
		t.Fatalf("expected trump jack to win, got seat %d", st.Winner)
	}
	if st.Score != (Score{Declarer: 0, Defender: 2}) {
		t.Fatalf("unexpected score %+v", st.Score)
	}
	if st.Rotation != 1 || st.Verdict != Unsettled {
		t.Fatalf("unexpected rotation %d verdict %s", st.Rotation, st.Verdict)
	}
}

func TestSettleTrickLastTrickTakesPool(t *testing.T) {
	c := Contract{Napoleon: 0, Adjutant: 2, Trump: Heart, Target: 13}
	// play order C5 C9 CK H2
	trick := []Cards{Card(Two, Heart), Card(King, Club), Card(Nine, Club), Card(Five, Club)}
	st := c.SettleTrick(trick, 0, 1, 0, Score{Declarer: 9, Defender: 5})
	if st.Winner != 3 {
		t.Fatalf("expected trump to win, got seat %d", st.Winner)
	}
	if st.Score.Defender != 11 || st.Verdict != Allied {
		t.Fatalf("expected pool to go to defenders, got %+v %s", st.Score, st.Verdict)
	}
}
