package engine

import "fmt"

// Phase enumerates the round state machine. Transitions are strictly
// forward: Bidding → TrumpSelect → ShowMeld → TrickPlay → Complete.
type Phase uint8

const (
	PhaseBidding Phase = iota
	PhaseTrumpSelect
	PhaseShowMeld
	PhaseTrickPlay
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseBidding:
		return "bidding"
	case PhaseTrumpSelect:
		return "trump selection"
	case PhaseShowMeld:
		return "show meld"
	case PhaseTrickPlay:
		return "play card"
	case PhaseComplete:
		return "round over"
	default:
		return "unknown"
	}
}

// Round is one deal: the bidding auction, trump selection, meld reveal and
// sixteen tricks. It is mutated only through MakeCall, SetTrump, ShowMeld
// and PlayCard, and becomes terminal once all 48 cards are played.
type Round struct {
	DealerID        int
	CurrentPlayerID int
	Phase           Phase

	Players []*Player
	Dealer  *Dealer

	// Moves is the append-only move log; derived state (last bid, current
	// trick) is recomputed from it rather than stored redundantly.
	Moves []Move

	CurrentBid  int
	BidWinnerID int // -1 until a player holds the bid
	Passed      [NumPlayers]bool
	PassCount   int

	Trump      *Suit
	MeldShown  bool
	MeldPoints [NumPlayers]int

	PlayCardCount int
	TrickPoints   [NumPlayers]int
	TricksWon     [NumPlayers]int
}

// NewRound shuffles, deals 48 cards in batches of four starting left of the
// dealer, and opens the auction with the player left of the dealer.
func NewRound(dealerID int, rng *RNG) (*Round, error) {
	if dealerID < 0 || dealerID >= NumPlayers {
		return nil, fmt.Errorf("%w: dealer id %d", ErrInvalidPlayer, dealerID)
	}

	r := &Round{
		DealerID:        dealerID,
		CurrentPlayerID: (dealerID + 1) % NumPlayers,
		Phase:           PhaseBidding,
		Dealer:          NewDealer(rng),
		BidWinnerID:     -1,
	}
	for id := 0; id < NumPlayers; id++ {
		p, err := NewPlayer(id)
		if err != nil {
			return nil, err
		}
		r.Players = append(r.Players, p)
	}

	const batch = 4
	for dealt := 0; dealt < DeckSize; {
		for i := 1; i <= NumPlayers; i++ {
			r.Dealer.DealTo(r.Players[(dealerID+i)%NumPlayers], batch)
			dealt += batch
		}
	}

	r.Moves = append(r.Moves, Move{
		Kind:   MoveDealHand,
		Player: dealerID,
		Deck:   r.Dealer.ShuffledDeck,
	})
	return r, nil
}

// IsBiddingOver reports whether the auction has resolved.
func (r *Round) IsBiddingOver() bool { return r.Phase != PhaseBidding }

// IsOver reports whether the round is terminal.
func (r *Round) IsOver() bool { return r.Phase == PhaseComplete }

// CurrentPlayer returns the player expected to act.
func (r *Round) CurrentPlayer() *Player { return r.Players[r.CurrentPlayerID] }

// MakeCall applies a pass or a bid for the current player.
//
// A pass is permanent; the auction ends as soon as two players have passed.
// If no bid was ever placed at that point the remaining player is the
// dealer, who is stuck with the floor bid of 20 and becomes bid winner.
// Once the auction resolves, the turn moves to the bid winner.
func (r *Round) MakeCall(action Action) error {
	if r.Phase != PhaseBidding {
		return fmt.Errorf("%w: call during %s", ErrInvalidAction, r.Phase)
	}
	cur := r.CurrentPlayerID

	switch action.Kind {
	case ActionPassBid:
		if r.Passed[cur] {
			return fmt.Errorf("%w: player %d already passed", ErrInvalidAction, cur)
		}
		r.Moves = append(r.Moves, Move{Kind: MovePassBid, Player: cur, Action: action})
		r.Passed[cur] = true
		r.PassCount++

		if r.PassCount >= NumPlayers-1 {
			if r.BidWinnerID < 0 {
				// Both non-dealers passed without a bid: the dealer is
				// stuck at the floor. Logged as a bid move so log-derived
				// queries keep working.
				r.CurrentBid = FloorBid
				r.BidWinnerID = r.DealerID
				r.Moves = append(r.Moves, Move{
					Kind:   MoveBid,
					Player: r.DealerID,
					Action: Action{Kind: ActionBid, Bid: FloorBid},
				})
			}
			r.Phase = PhaseTrumpSelect
			r.CurrentPlayerID = r.BidWinnerID
			return nil
		}
		r.CurrentPlayerID = r.nextBidder(cur)
		return nil

	case ActionBid:
		if action.Bid < MinBid || action.Bid > MaxBid {
			return fmt.Errorf("%w: amount %d outside [%d, %d]", ErrInvalidBid, action.Bid, MinBid, MaxBid)
		}
		if action.Bid <= r.CurrentBid {
			return fmt.Errorf("%w: %d does not exceed current bid %d", ErrInvalidBid, action.Bid, r.CurrentBid)
		}
		r.CurrentBid = action.Bid
		r.BidWinnerID = cur
		r.Moves = append(r.Moves, Move{Kind: MoveBid, Player: cur, Action: action})
		r.CurrentPlayerID = r.nextBidder(cur)
		return nil

	default:
		return fmt.Errorf("%w: %s is not a call", ErrInvalidAction, action)
	}
}

// nextBidder returns the next seat in rotation that has not passed.
func (r *Round) nextBidder(from int) int {
	for i := 1; i < NumPlayers; i++ {
		n := (from + i) % NumPlayers
		if !r.Passed[n] {
			return n
		}
	}
	return from
}

// SetTrump fixes the trump suit for the round and freezes every player's
// meld points. Callable exactly once, by the bid winner, after the auction
// resolves.
func (r *Round) SetTrump(suit Suit) error {
	if r.Phase == PhaseBidding {
		return fmt.Errorf("%w: trump before bidding resolved", ErrPrematureMeld)
	}
	if r.Trump != nil {
		return fmt.Errorf("%w: trump already set to %s", ErrInvalidTrump, *r.Trump)
	}
	if suit > SuitSpades {
		return fmt.Errorf("%w: suit %d", ErrInvalidTrump, uint8(suit))
	}

	s := suit
	r.Trump = &s
	for _, p := range r.Players {
		points, _ := CalculateMeld(p.Hand, suit)
		r.MeldPoints[p.ID] = points
	}
	r.Moves = append(r.Moves, Move{
		Kind:   MoveSelectTrump,
		Player: r.BidWinnerID,
		Action: Action{Kind: ActionSelectTrump, Trump: suit},
	})
	r.Phase = PhaseShowMeld
	return nil
}

// ShowMeld reveals the frozen meld and hands the lead to the bid winner.
func (r *Round) ShowMeld() error {
	if r.Phase != PhaseShowMeld {
		return fmt.Errorf("%w: show meld during %s", ErrPrematureMeld, r.Phase)
	}
	r.MeldShown = true
	r.CurrentPlayerID = r.BidWinnerID
	r.Phase = PhaseTrickPlay
	return nil
}

// PlayCard removes the card from the current player's hand and appends the
// play to the log. On the third card of a trick the winner is credited with
// the trick, its counter points, and the lead of the next trick; the last
// trick carries one bonus point. After the 48th card the round is complete.
func (r *Round) PlayCard(action Action) error {
	if r.Phase != PhaseTrickPlay {
		return fmt.Errorf("%w: play during %s", ErrPrematureMeld, r.Phase)
	}
	if action.Kind != ActionPlayCard {
		return fmt.Errorf("%w: %s is not a card play", ErrInvalidAction, action)
	}
	cur := r.CurrentPlayerID
	if !r.Players[cur].RemoveFromHand(action.Card) {
		return fmt.Errorf("%w: player %d does not hold %s", ErrInvalidAction, cur, action.Card)
	}

	r.Moves = append(r.Moves, Move{Kind: MovePlayCard, Player: cur, Action: action})
	r.PlayCardCount++

	trick := r.TrickMoves()
	if len(trick) < NumPlayers {
		r.CurrentPlayerID = (cur + 1) % NumPlayers
		return nil
	}

	winner := r.trickWinner(trick)
	r.TricksWon[winner]++
	points := 0
	for _, m := range trick {
		points += m.Action.Card.CounterValue()
	}
	if r.PlayCardCount == DeckSize {
		points++ // last trick bonus
	}
	r.TrickPoints[winner] += points
	r.CurrentPlayerID = winner

	if r.PlayCardCount == DeckSize {
		r.Phase = PhaseComplete
	}
	return nil
}

// TrickMoves returns the plays of the current trick, derived from the tail
// of the move log. A just-completed trick stays current until the next card
// is played.
func (r *Round) TrickMoves() []Move {
	if !r.MeldShown || r.PlayCardCount == 0 {
		return nil
	}
	size := r.PlayCardCount % NumPlayers
	if size == 0 {
		size = NumPlayers
	}
	tail := r.Moves[len(r.Moves)-size:]
	trick := make([]Move, 0, NumPlayers)
	for _, m := range tail {
		if m.Kind == MovePlayCard {
			trick = append(trick, m)
		}
	}
	return trick
}

// trickWinner resolves a completed trick: trump beats non-trump, higher
// rank wins within a suit, and on a duplicate-card tie the earlier play
// keeps the trick.
func (r *Round) trickWinner(trick []Move) int {
	best := trick[0]
	for _, m := range trick[1:] {
		if r.beats(m.Action.Card, best.Action.Card) {
			best = m
		}
	}
	return best.Player
}

// beats reports whether card c takes the trick from the current winning
// card w. Strict comparisons only, so an identical duplicate never takes
// over.
func (r *Round) beats(c, w Card) bool {
	trump := *r.Trump
	if c.Suit() == trump && w.Suit() != trump {
		return true
	}
	return c.Suit() == w.Suit() && c.Rank() > w.Rank()
}

// CalculateScores produces the round scores once the round is complete.
//
// A player who won no tricks forfeits meld and scores trick points only
// (necessarily zero, since trick points accrue to trick winners). The bid
// winner scores their total when it covers the bid and -bid otherwise;
// everyone else scores their own total.
func (r *Round) CalculateScores() [NumPlayers]int {
	var scores [NumPlayers]int
	for id := 0; id < NumPlayers; id++ {
		total := r.MeldPoints[id] + r.TrickPoints[id]
		if r.TricksWon[id] == 0 {
			total = r.TrickPoints[id]
		}
		if id == r.BidWinnerID && total < r.CurrentBid {
			scores[id] = -r.CurrentBid
			continue
		}
		scores[id] = total
	}
	return scores
}

// PerfectInfo is a full-visibility snapshot of a round, intended for
// debugging and analysis hosts. Imperfect-information consumers must derive
// their own restricted view.
type PerfectInfo struct {
	MoveCount       int
	DealerID        int
	CurrentPlayerID int
	Phase           string
	CurrentBid      int
	BidWinnerID     int
	Trump           *Suit
	MeldShown       bool
	MeldPoints      [NumPlayers]int
	Hands           [NumPlayers][]Card
	TrickMoves      []Move
	TrickPoints     [NumPlayers]int
	TricksWon       [NumPlayers]int
}

// PerfectInfo snapshots the round. Hands are copied; mutating the snapshot
// does not touch the round.
func (r *Round) PerfectInfo() PerfectInfo {
	info := PerfectInfo{
		MoveCount:       len(r.Moves),
		DealerID:        r.DealerID,
		CurrentPlayerID: r.CurrentPlayerID,
		Phase:           r.Phase.String(),
		CurrentBid:      r.CurrentBid,
		BidWinnerID:     r.BidWinnerID,
		MeldShown:       r.MeldShown,
		MeldPoints:      r.MeldPoints,
		TrickMoves:      r.TrickMoves(),
		TrickPoints:     r.TrickPoints,
		TricksWon:       r.TricksWon,
	}
	if r.Trump != nil {
		s := *r.Trump
		info.Trump = &s
	}
	for i, p := range r.Players {
		info.Hands[i] = append([]Card(nil), p.Hand...)
	}
	return info
}
