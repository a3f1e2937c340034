package engine

import "fmt"

// Suit constants. Index order matches the physical deck layout and the
// select-trump action id block.
const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

// Rank constants. Index order is trick strength order: 9 < J < Q < K < 10 < A.
const (
	Rank9 Rank = iota
	RankJ
	RankQ
	RankK
	Rank10
	RankA
)

const (
	NumPlayers = 3
	NumSuits   = 4
	NumRanks   = 6

	// DeckSize is the pinochle deck: every suit/rank combination twice.
	DeckSize = NumSuits * NumRanks * 2
)

type Suit uint8

type Rank uint8

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case Rank9:
		return "9"
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case Rank10:
		return "10"
	case RankA:
		return "A"
	default:
		return "?"
	}
}

// Card is a stable physical card identity in [0, DeckSize). The deck lays
// out suits C, D, H, S, each suit holding ranks 9, J, Q, K, 10, A with the
// two physical copies adjacent, so suit = id/12 and rank = (id%12)/2.
// The id doubles as the card's slot in the play-card action id block.
type Card uint8

// NewCard constructs the copy-th (0 or 1) physical card of a suit/rank pair.
func NewCard(suit Suit, rank Rank, copyIdx uint8) Card {
	return Card(uint8(suit)*12 + uint8(rank)*2 + copyIdx)
}

func (c Card) Suit() Suit { return Suit(c / 12) }

func (c Card) Rank() Rank { return Rank((c % 12) / 2) }

// Valid reports whether c names a physical card of the 48-card deck.
func (c Card) Valid() bool { return c < DeckSize }

// CounterValue is the trick point value of the card: 1 for aces, tens and
// kings, 0 otherwise.
func (c Card) CounterValue() int {
	switch c.Rank() {
	case RankA, Rank10, RankK:
		return 1
	default:
		return 0
	}
}

func (c Card) String() string {
	if !c.Valid() {
		return fmt.Sprintf("card(%d)", uint8(c))
	}
	return c.Rank().String() + c.Suit().String()
}

// NewDeck returns the canonical ordered 48-card deck.
func NewDeck() []Card {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}
