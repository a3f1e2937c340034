package engine

import "fmt"

// Player owns a hand of physical cards and a seat identity. A hand only
// shrinks after the deal, by exactly one card per play.
type Player struct {
	ID   int
	Hand []Card
}

// NewPlayer creates a player for one of the three seats.
func NewPlayer(id int) (*Player, error) {
	if id < 0 || id >= NumPlayers {
		return nil, fmt.Errorf("%w: player id %d", ErrInvalidPlayer, id)
	}
	return &Player{ID: id, Hand: make([]Card, 0, DeckSize/NumPlayers)}, nil
}

// RemoveFromHand removes the given physical card, reporting whether it was
// held.
func (p *Player) RemoveFromHand(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// HasSuit reports whether the hand holds any card of the given suit.
func (p *Player) HasSuit(suit Suit) bool {
	for _, c := range p.Hand {
		if c.Suit() == suit {
			return true
		}
	}
	return false
}

func (p *Player) String() string {
	return fmt.Sprintf("player %d", p.ID)
}
