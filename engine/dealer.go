package engine

import "fmt"

// Dealer owns one shuffled 48-card deck and doles cards out to players.
// Shuffling is a permutation only; deck membership never changes.
type Dealer struct {
	// ShuffledDeck is the deal order, recorded in the move log. It is not
	// mutated after construction.
	ShuffledDeck []Card

	toDeal []Card
}

// NewDealer builds and shuffles a fresh deck using the injected generator
// (Fisher-Yates).
func NewDealer(rng *RNG) *Dealer {
	deck := NewDeck()
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	toDeal := make([]Card, len(deck))
	copy(toDeal, deck)
	return &Dealer{ShuffledDeck: deck, toDeal: toDeal}
}

// DealTo moves n cards from the top of the deck into the player's hand.
// Requesting more cards than remain breaks the 48-card deal invariant and
// panics rather than dealing short.
func (d *Dealer) DealTo(p *Player, n int) {
	if n > len(d.toDeal) {
		panic(fmt.Sprintf("dealer: %d cards requested, %d remain", n, len(d.toDeal)))
	}
	for i := 0; i < n; i++ {
		last := len(d.toDeal) - 1
		p.Hand = append(p.Hand, d.toDeal[last])
		d.toDeal = d.toDeal[:last]
	}
}

// Remaining reports how many cards are still undealt.
func (d *Dealer) Remaining() int { return len(d.toDeal) }
