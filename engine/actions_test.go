package engine

import (
	"errors"
	"testing"
)

// TestDecodeEncodeRoundTrip verifies DecodeAction is total over [0, 83) and
// a left inverse of Action.ID.
func TestDecodeEncodeRoundTrip(t *testing.T) {
	for id := 0; id < NumActions; id++ {
		a, err := DecodeAction(id)
		if err != nil {
			t.Fatalf("DecodeAction(%d): %v", id, err)
		}
		if a.ID() != id {
			t.Errorf("DecodeAction(%d).ID() = %d", id, a.ID())
		}
	}
}

func TestDecodeActionLayout(t *testing.T) {
	a, err := DecodeAction(PassBidID)
	if err != nil || a.Kind != ActionPassBid {
		t.Errorf("id 0: got %v, %v; want pass", a, err)
	}

	a, err = DecodeAction(FirstBidID)
	if err != nil || a.Kind != ActionBid || a.Bid != MinBid {
		t.Errorf("id 1: got %v, %v; want bid 21", a, err)
	}
	a, err = DecodeAction(FirstPlayCardID - 1)
	if err != nil || a.Kind != ActionBid || a.Bid != MaxBid {
		t.Errorf("id 30: got %v, %v; want bid 50", a, err)
	}

	a, err = DecodeAction(FirstPlayCardID)
	if err != nil || a.Kind != ActionPlayCard || a.Card != Card(0) {
		t.Errorf("id 31: got %v, %v; want play card 0", a, err)
	}
	a, err = DecodeAction(FirstTrumpID - 1)
	if err != nil || a.Kind != ActionPlayCard || a.Card != Card(DeckSize-1) {
		t.Errorf("id 78: got %v, %v; want play card 47", a, err)
	}

	a, err = DecodeAction(FirstTrumpID)
	if err != nil || a.Kind != ActionSelectTrump || a.Trump != SuitClubs {
		t.Errorf("id 79: got %v, %v; want trump C", a, err)
	}
	a, err = DecodeAction(NumActions - 1)
	if err != nil || a.Kind != ActionSelectTrump || a.Trump != SuitSpades {
		t.Errorf("id 82: got %v, %v; want trump S", a, err)
	}
}

func TestDecodeActionRejectsOutOfRange(t *testing.T) {
	for _, id := range []int{-1, NumActions, 1000} {
		if _, err := DecodeAction(id); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("DecodeAction(%d) err = %v, want ErrInvalidAction", id, err)
		}
	}
}

func TestBidActionBounds(t *testing.T) {
	if _, err := BidAction(MinBid - 1); !errors.Is(err, ErrInvalidBid) {
		t.Errorf("BidAction(20) err = %v, want ErrInvalidBid", err)
	}
	if _, err := BidAction(MaxBid + 1); !errors.Is(err, ErrInvalidBid) {
		t.Errorf("BidAction(51) err = %v, want ErrInvalidBid", err)
	}
	a, err := BidAction(35)
	if err != nil {
		t.Fatalf("BidAction(35): %v", err)
	}
	if a.ID() != FirstBidID+35-MinBid {
		t.Errorf("bid 35 id = %d", a.ID())
	}
}

func TestPlayCardActionBounds(t *testing.T) {
	if _, err := PlayCardAction(Card(DeckSize)); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("PlayCardAction(48) err = %v, want ErrInvalidAction", err)
	}
}

func TestSelectTrumpActionBounds(t *testing.T) {
	if _, err := SelectTrumpAction(Suit(NumSuits)); !errors.Is(err, ErrInvalidTrump) {
		t.Errorf("SelectTrumpAction(4) err = %v, want ErrInvalidTrump", err)
	}
}

// TestActionEquality verifies id equality defines action equality.
func TestActionEquality(t *testing.T) {
	a, _ := BidAction(25)
	b, _ := DecodeAction(a.ID())
	if a != b {
		t.Errorf("decoded bid %v differs from constructed %v", b, a)
	}

	p1, _ := PlayCardAction(NewCard(SuitSpades, RankQ, 0))
	p2, _ := PlayCardAction(NewCard(SuitSpades, RankQ, 1))
	if p1.ID() == p2.ID() {
		t.Error("distinct physical cards share an action id")
	}
}

func TestActionString(t *testing.T) {
	cases := map[string]Action{
		"pass":    PassBid(),
		"bid 21":  {Kind: ActionBid, Bid: 21},
		"play QS": {Kind: ActionPlayCard, Card: NewCard(SuitSpades, RankQ, 0)},
		"trump H": {Kind: ActionSelectTrump, Trump: SuitHearts},
	}
	for want, a := range cases {
		if got := a.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
