package engine

import "fmt"

// Meld point values.
const (
	meldRun           = 15
	meldDoubleRun     = 150
	meldTrumpNine     = 1
	meldMarriage      = 2
	meldTrumpMarriage = 4
	meldPinochle      = 4

	// Double pinochle is a fixed bonus, not two pinochles added up.
	meldDoublePinochle = 30
)

var meldRounds = []struct {
	rank   Rank
	name   string
	points int
	double int
}{
	{RankA, "Aces", 10, 100},
	{RankK, "Kings", 8, 80},
	{RankQ, "Queens", 6, 60},
	{RankJ, "Jacks", 4, 40},
}

// CalculateMeld scores the combinations held in a hand for the given trump
// suit. It returns the total points and an ordered human-readable breakdown
// of the rules that fired. Pure: the hand is never mutated and identical
// inputs always produce identical results.
//
// Duplicate physical cards count separately, so every suit/rank count is in
// [0, 2]. A run absorbs its king and queen: marriages are not scored at all
// when the hand holds a trump run.
func CalculateMeld(hand []Card, trump Suit) (int, []string) {
	var counts [NumSuits][NumRanks]int
	for _, c := range hand {
		counts[c.Suit()][c.Rank()]++
	}

	points := 0
	var breakdown []string

	runRanks := []Rank{RankA, Rank10, RankK, RankQ, RankJ}
	runCount := 2
	for _, r := range runRanks {
		runCount = min(runCount, counts[trump][r])
	}
	hasRun := runCount >= 1
	switch {
	case runCount >= 2:
		points += meldDoubleRun
		breakdown = append(breakdown, fmt.Sprintf("Double Run in trump: %d", meldDoubleRun))
	case runCount == 1:
		points += meldRun
		breakdown = append(breakdown, fmt.Sprintf("Run in trump: %d", meldRun))
	}

	if !hasRun {
		for suit := SuitClubs; suit <= SuitSpades; suit++ {
			marriages := min(counts[suit][RankK], counts[suit][RankQ])
			if marriages == 0 {
				continue
			}
			per := meldMarriage
			if suit == trump {
				per = meldTrumpMarriage
			}
			pts := marriages * per
			points += pts
			if marriages == 1 {
				breakdown = append(breakdown, fmt.Sprintf("Marriage in %s: %d", suit, pts))
			} else {
				breakdown = append(breakdown, fmt.Sprintf("Marriage in %s (x%d): %d", suit, marriages, pts))
			}
		}
	}

	if nines := counts[trump][Rank9]; nines > 0 {
		pts := nines * meldTrumpNine
		points += pts
		if nines == 1 {
			breakdown = append(breakdown, "9 of trump: 1")
		} else {
			breakdown = append(breakdown, fmt.Sprintf("9 of trump (x%d): %d", nines, pts))
		}
	}

	queens := counts[SuitSpades][RankQ]
	jacks := counts[SuitDiamonds][RankJ]
	switch {
	case queens == 2 && jacks == 2:
		points += meldDoublePinochle
		breakdown = append(breakdown, fmt.Sprintf("Double Pinochle: %d", meldDoublePinochle))
	case queens >= 1 && jacks >= 1:
		points += meldPinochle
		breakdown = append(breakdown, fmt.Sprintf("Pinochle: %d", meldPinochle))
	}

	for _, round := range meldRounds {
		have := 2
		for suit := SuitClubs; suit <= SuitSpades; suit++ {
			have = min(have, counts[suit][round.rank])
		}
		switch {
		case have >= 2:
			points += round.double
			breakdown = append(breakdown, fmt.Sprintf("Double Round of %s: %d", round.name, round.double))
		case have == 1:
			points += round.points
			breakdown = append(breakdown, fmt.Sprintf("Round of %s: %d", round.name, round.points))
		}
	}

	return points, breakdown
}
