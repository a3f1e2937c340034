package engine

// LegalActions returns the exhaustive set of actions the current player may
// take, in a deterministic order. It is a pure query: calling it never
// mutates round state.
//
// Bidding: pass (unless already passed) plus one bid action per amount
// strictly above the last bid, up to MaxBid. Trump selection: the four suit
// actions, legal only for the bid winner. Trick play: follow suit with
// must-overtrump when able; trump when void in the led suit; anything when
// void in both.
func (r *Round) LegalActions() []Action {
	switch r.Phase {
	case PhaseBidding:
		return r.legalCalls()
	case PhaseTrumpSelect:
		return r.legalTrumpPicks()
	case PhaseTrickPlay:
		return r.legalPlays()
	default:
		// ShowMeld is a transient transition with no encodable action;
		// a complete round has nothing left to do.
		return nil
	}
}

func (r *Round) legalCalls() []Action {
	var actions []Action
	if !r.Passed[r.CurrentPlayerID] {
		actions = append(actions, PassBid())
	}

	// The last bid is derived from the move log, not a cached field.
	next := MinBid
	if last, ok := r.lastBidMove(); ok {
		next = last.Action.Bid + 1
	}
	for amount := next; amount <= MaxBid; amount++ {
		actions = append(actions, Action{Kind: ActionBid, Bid: amount})
	}
	return actions
}

func (r *Round) lastBidMove() (Move, bool) {
	for i := len(r.Moves) - 1; i >= 0; i-- {
		if r.Moves[i].Kind == MoveBid {
			return r.Moves[i], true
		}
	}
	return Move{}, false
}

func (r *Round) legalTrumpPicks() []Action {
	if r.CurrentPlayerID != r.BidWinnerID {
		return nil
	}
	actions := make([]Action, 0, NumSuits)
	for suit := SuitClubs; suit <= SuitSpades; suit++ {
		actions = append(actions, Action{Kind: ActionSelectTrump, Trump: suit})
	}
	return actions
}

func (r *Round) legalPlays() []Action {
	hand := r.Players[r.CurrentPlayerID].Hand

	// Leading a fresh trick: the whole hand.
	if r.PlayCardCount%NumPlayers == 0 {
		return playActions(hand)
	}

	trick := r.TrickMoves()
	led := trick[0].Action.Card.Suit()

	var ledCards []Card
	for _, c := range hand {
		if c.Suit() == led {
			ledCards = append(ledCards, c)
		}
	}
	if len(ledCards) > 0 {
		// Must follow suit, and must beat the best led-suit card in the
		// trick when able.
		high := highestOfSuit(trick, led)
		var over []Card
		for _, c := range ledCards {
			if c.Rank() > high {
				over = append(over, c)
			}
		}
		if len(over) > 0 {
			return playActions(over)
		}
		return playActions(ledCards)
	}

	// Void in the led suit: must trump when able.
	var trumps []Card
	for _, c := range hand {
		if c.Suit() == *r.Trump {
			trumps = append(trumps, c)
		}
	}
	if len(trumps) > 0 {
		return playActions(trumps)
	}
	return playActions(hand)
}

func highestOfSuit(trick []Move, suit Suit) Rank {
	high := Rank9
	for _, m := range trick {
		c := m.Action.Card
		if c.Suit() == suit && c.Rank() > high {
			high = c.Rank()
		}
	}
	return high
}

func playActions(cards []Card) []Action {
	actions := make([]Action, 0, len(cards))
	for _, c := range cards {
		actions = append(actions, Action{Kind: ActionPlayCard, Card: c})
	}
	return actions
}
