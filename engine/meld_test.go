package engine

import (
	"slices"
	"testing"
)

func cards(pairs ...[2]uint8) []Card {
	// pairs are (suit, rank); duplicate pairs become the second physical copy.
	seen := make(map[[2]uint8]uint8)
	hand := make([]Card, 0, len(pairs))
	for _, p := range pairs {
		hand = append(hand, NewCard(Suit(p[0]), Rank(p[1]), seen[p]))
		seen[p]++
	}
	return hand
}

func suitRank(s Suit, r Rank) [2]uint8 { return [2]uint8{uint8(s), uint8(r)} }

// TestMeldRunInTrump: a single trump run scores 15 and suppresses the
// marriage in that suit.
func TestMeldRunInTrump(t *testing.T) {
	hand := cards(
		suitRank(SuitHearts, RankA),
		suitRank(SuitHearts, Rank10),
		suitRank(SuitHearts, RankK),
		suitRank(SuitHearts, RankQ),
		suitRank(SuitHearts, RankJ),
	)
	points, breakdown := CalculateMeld(hand, SuitHearts)
	if points != 15 {
		t.Fatalf("points = %d, want 15", points)
	}
	if !slices.Contains(breakdown, "Run in trump: 15") {
		t.Errorf("breakdown %v missing run entry", breakdown)
	}
	for _, entry := range breakdown {
		if entry == "Marriage in H: 4" {
			t.Errorf("marriage counted inside a run: %v", breakdown)
		}
	}
}

// TestMeldDoubleRun: both copies of the run score 150, not 30.
func TestMeldDoubleRun(t *testing.T) {
	var hand []Card
	for _, r := range []Rank{RankA, Rank10, RankK, RankQ, RankJ} {
		hand = append(hand, NewCard(SuitSpades, r, 0), NewCard(SuitSpades, r, 1))
	}
	points, breakdown := CalculateMeld(hand, SuitSpades)
	if points != 150 {
		t.Fatalf("points = %d, want 150", points)
	}
	if !slices.Contains(breakdown, "Double Run in trump: 150") {
		t.Errorf("breakdown %v missing double run entry", breakdown)
	}
}

func TestMeldMarriages(t *testing.T) {
	hand := cards(
		suitRank(SuitHearts, RankK),
		suitRank(SuitHearts, RankQ),
		suitRank(SuitClubs, RankK),
		suitRank(SuitClubs, RankQ),
	)
	// Trump marriage 4 + plain marriage 2.
	points, _ := CalculateMeld(hand, SuitHearts)
	if points != 6 {
		t.Fatalf("points = %d, want 6", points)
	}

	// No trump involvement: 2 + 2.
	points, _ = CalculateMeld(hand, SuitSpades)
	if points != 4 {
		t.Fatalf("points = %d, want 4", points)
	}
}

// TestMeldDoubleMarriageNoBonus: duplicate marriages score independently,
// with no extra bonus.
func TestMeldDoubleMarriageNoBonus(t *testing.T) {
	hand := cards(
		suitRank(SuitDiamonds, RankK),
		suitRank(SuitDiamonds, RankK),
		suitRank(SuitDiamonds, RankQ),
		suitRank(SuitDiamonds, RankQ),
	)
	points, breakdown := CalculateMeld(hand, SuitClubs)
	if points != 4 {
		t.Fatalf("points = %d, want 4", points)
	}
	if !slices.Contains(breakdown, "Marriage in D (x2): 4") {
		t.Errorf("breakdown %v missing doubled marriage entry", breakdown)
	}
}

func TestMeldTrumpNines(t *testing.T) {
	hand := cards(suitRank(SuitClubs, Rank9), suitRank(SuitClubs, Rank9))
	points, _ := CalculateMeld(hand, SuitClubs)
	if points != 2 {
		t.Fatalf("two trump nines = %d, want 2", points)
	}

	points, _ = CalculateMeld(hand, SuitHearts)
	if points != 0 {
		t.Fatalf("off-trump nines = %d, want 0", points)
	}
}

func TestMeldPinochle(t *testing.T) {
	hand := cards(suitRank(SuitSpades, RankQ), suitRank(SuitDiamonds, RankJ))
	points, breakdown := CalculateMeld(hand, SuitClubs)
	if points != 4 {
		t.Fatalf("pinochle = %d, want 4", points)
	}
	if !slices.Contains(breakdown, "Pinochle: 4") {
		t.Errorf("breakdown %v missing pinochle entry", breakdown)
	}
}

// TestMeldDoublePinochle: both copies of QS and JD score the fixed 30
// bonus, not 8.
func TestMeldDoublePinochle(t *testing.T) {
	hand := cards(
		suitRank(SuitSpades, RankQ),
		suitRank(SuitSpades, RankQ),
		suitRank(SuitDiamonds, RankJ),
		suitRank(SuitDiamonds, RankJ),
	)
	points, breakdown := CalculateMeld(hand, SuitClubs)
	if points != 30 {
		t.Fatalf("double pinochle = %d, want 30", points)
	}
	if !slices.Contains(breakdown, "Double Pinochle: 30") {
		t.Errorf("breakdown %v missing double pinochle entry", breakdown)
	}
}

func TestMeldRounds(t *testing.T) {
	roundOf := func(rank Rank, copies int) []Card {
		var hand []Card
		for suit := SuitClubs; suit <= SuitSpades; suit++ {
			for i := 0; i < copies; i++ {
				hand = append(hand, NewCard(suit, rank, uint8(i)))
			}
		}
		return hand
	}

	cases := []struct {
		rank   Rank
		copies int
		want   int
	}{
		{RankA, 1, 10},
		{RankA, 2, 100},
		{RankK, 1, 8},
		{RankK, 2, 80},
		{RankQ, 1, 6},
		{RankQ, 2, 60},
		{RankJ, 1, 4},
		{RankJ, 2, 40},
	}
	for _, tc := range cases {
		points, _ := CalculateMeld(roundOf(tc.rank, tc.copies), SuitClubs)
		if points != tc.want {
			t.Errorf("round of %s x%d = %d, want %d", tc.rank, tc.copies, points, tc.want)
		}
	}
}

// TestMeldRoundNeedsEverySuit: three suits of a rank score nothing.
func TestMeldRoundNeedsEverySuit(t *testing.T) {
	hand := cards(
		suitRank(SuitClubs, RankA),
		suitRank(SuitDiamonds, RankA),
		suitRank(SuitHearts, RankA),
	)
	points, _ := CalculateMeld(hand, SuitClubs)
	if points != 0 {
		t.Fatalf("three aces = %d, want 0", points)
	}
}

// TestMeldPure: the calculator neither mutates the hand nor drifts between
// identical calls.
func TestMeldPure(t *testing.T) {
	hand := cards(
		suitRank(SuitSpades, RankQ),
		suitRank(SuitDiamonds, RankJ),
		suitRank(SuitHearts, RankK),
		suitRank(SuitHearts, RankQ),
	)
	before := append([]Card(nil), hand...)

	p1, b1 := CalculateMeld(hand, SuitHearts)
	p2, b2 := CalculateMeld(hand, SuitHearts)
	if p1 != p2 || !slices.Equal(b1, b2) {
		t.Errorf("repeat call drifted: (%d %v) vs (%d %v)", p1, b1, p2, b2)
	}
	if !slices.Equal(hand, before) {
		t.Errorf("hand mutated: %v -> %v", before, hand)
	}
}
