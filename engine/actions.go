package engine

import "fmt"

// ActionKind discriminates the closed set of action variants.
type ActionKind uint8

const (
	ActionPassBid ActionKind = iota
	ActionBid
	ActionPlayCard
	ActionSelectTrump
)

// Action id layout: the stable wire contract external collaborators use to
// represent an action as a single integer (e.g. as an index into an
// action-probability vector):
//
//	0       pass
//	1-30    bid 21-50 (amount = id + 20)
//	31-78   play a specific card (card id = id - 31)
//	79-82   select trump suit (suit index into C, D, H, S)
const (
	PassBidID       = 0
	FirstBidID      = 1
	FirstPlayCardID = 31
	FirstTrumpID    = 79
	NumActions      = 83

	MinBid = 21
	MaxBid = 50

	// FloorBid is the bid the dealer is stuck with when the other two
	// players pass without anyone bidding. It sits below MinBid and is
	// never encoded on the id wire.
	FloorBid = 20
)

// Action is a tagged union: Kind selects which payload field is meaningful.
// Actions carry no mutable state after construction; two actions are equal
// exactly when their ids are equal.
type Action struct {
	Kind  ActionKind
	Bid   int  // ActionBid
	Card  Card // ActionPlayCard
	Trump Suit // ActionSelectTrump
}

// PassBid returns the pass action.
func PassBid() Action {
	return Action{Kind: ActionPassBid}
}

// BidAction returns a bid of the given amount.
func BidAction(amount int) (Action, error) {
	if amount < MinBid || amount > MaxBid {
		return Action{}, fmt.Errorf("%w: bid amount %d outside [%d, %d]", ErrInvalidBid, amount, MinBid, MaxBid)
	}
	return Action{Kind: ActionBid, Bid: amount}, nil
}

// PlayCardAction returns the action playing the given physical card.
func PlayCardAction(card Card) (Action, error) {
	if !card.Valid() {
		return Action{}, fmt.Errorf("%w: card id %d outside deck", ErrInvalidAction, uint8(card))
	}
	return Action{Kind: ActionPlayCard, Card: card}, nil
}

// SelectTrumpAction returns the action declaring the given suit as trump.
func SelectTrumpAction(suit Suit) (Action, error) {
	if suit > SuitSpades {
		return Action{}, fmt.Errorf("%w: suit %d", ErrInvalidTrump, uint8(suit))
	}
	return Action{Kind: ActionSelectTrump, Trump: suit}, nil
}

// DecodeAction maps an action id back to its Action. It is total over
// [0, NumActions) and the left inverse of Action.ID.
func DecodeAction(id int) (Action, error) {
	switch {
	case id == PassBidID:
		return PassBid(), nil
	case id >= FirstBidID && id < FirstPlayCardID:
		return BidAction(id - FirstBidID + MinBid)
	case id >= FirstPlayCardID && id < FirstTrumpID:
		return PlayCardAction(Card(id - FirstPlayCardID))
	case id >= FirstTrumpID && id < NumActions:
		return SelectTrumpAction(Suit(id - FirstTrumpID))
	default:
		return Action{}, fmt.Errorf("%w: action id %d outside [0, %d)", ErrInvalidAction, id, NumActions)
	}
}

// ID returns the dense integer id of the action. Only canonical actions
// (those a constructor or DecodeAction can produce) have meaningful ids;
// the internal forced dealer bid of FloorBid is never encoded.
func (a Action) ID() int {
	switch a.Kind {
	case ActionPassBid:
		return PassBidID
	case ActionBid:
		return FirstBidID + a.Bid - MinBid
	case ActionPlayCard:
		return FirstPlayCardID + int(a.Card)
	case ActionSelectTrump:
		return FirstTrumpID + int(a.Trump)
	default:
		return -1
	}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPassBid:
		return "pass"
	case ActionBid:
		return fmt.Sprintf("bid %d", a.Bid)
	case ActionPlayCard:
		return "play " + a.Card.String()
	case ActionSelectTrump:
		return "trump " + a.Trump.String()
	default:
		return fmt.Sprintf("action(%d)", a.Kind)
	}
}
