package engine

import (
	"fmt"
	"strings"
)

// MoveKind discriminates move log records.
type MoveKind uint8

const (
	MoveDealHand MoveKind = iota
	MovePassBid
	MoveBid
	MovePlayCard
	MoveSelectTrump
)

// Move is one record of the round's append-only move log. The log is the
// sole source of truth for derived state such as the last bid and the
// current trick; past entries are never mutated.
type Move struct {
	Kind   MoveKind
	Player int    // acting player; the dealer for MoveDealHand
	Action Action // zero value for MoveDealHand
	Deck   []Card // MoveDealHand only: the shuffled deck as dealt
}

func (m Move) String() string {
	switch m.Kind {
	case MoveDealHand:
		cards := make([]string, len(m.Deck))
		for i, c := range m.Deck {
			cards[i] = c.String()
		}
		return fmt.Sprintf("player %d deals [%s]", m.Player, strings.Join(cards, " "))
	case MovePassBid:
		return fmt.Sprintf("player %d passes", m.Player)
	case MoveBid:
		return fmt.Sprintf("player %d bids %d", m.Player, m.Action.Bid)
	case MovePlayCard:
		return fmt.Sprintf("player %d plays %s", m.Player, m.Action.Card)
	case MoveSelectTrump:
		return fmt.Sprintf("player %d picks trump %s", m.Player, m.Action.Trump)
	default:
		return fmt.Sprintf("move(%d)", m.Kind)
	}
}
