// Package engine implements three-player cutthroat pinochle: the bidding
// auction, trump selection, meld declaration, trick play, and multi-round
// scoring to a target total.
//
// The package is a pure in-memory state machine with no external resources
// and no global randomness; a Game seeded identically replays identically.
// External collaborators drive it through three operations: LegalActions
// (read-only), Step (apply one action), and PerfectInfo / Payoffs.
package engine

import "fmt"

// Rules holds the configurable game-level settings.
type Rules struct {
	// TargetScore ends the game once a cumulative total reaches it. The
	// check runs only at round boundaries so every player gets a full
	// final round.
	TargetScore int

	// WinBonus and LossPenalty are folded into Payoffs at game end.
	WinBonus    float64
	LossPenalty float64
}

// DefaultRules returns the standard cutthroat variant.
func DefaultRules() Rules {
	return Rules{
		TargetScore: 100,
		WinBonus:    50,
		LossPenalty: -50,
	}
}

// Game sequences rounds, rotates the dealer, accumulates scores and detects
// the win condition. It owns the randomness handle used for dealer selection
// and shuffling.
type Game struct {
	Rules Rules
	RNG   *RNG

	Round       *Round
	RoundNumber int
	DealerID    int
	Scores      [NumPlayers]int
	WinnerID    int // -1 while the game is in progress
}

// NewGame starts round 1 with a randomly selected dealer.
func NewGame(seed uint64, rules Rules) *Game {
	g := &Game{
		Rules:    rules,
		RNG:      NewRNG(seed),
		WinnerID: -1,
	}
	g.DealerID = g.RNG.Intn(NumPlayers)
	g.RoundNumber = 1
	g.Round = mustNewRound(g.DealerID, g.RNG)
	return g
}

// mustNewRound wraps NewRound for internally generated dealer ids, which
// are always in range.
func mustNewRound(dealerID int, rng *RNG) *Round {
	r, err := NewRound(dealerID, rng)
	if err != nil {
		panic(err)
	}
	return r
}

// IsOver reports whether a player has won. True only once the round that
// pushed a total past the target has fully completed.
func (g *Game) IsOver() bool { return g.WinnerID >= 0 }

// CurrentPlayerID returns the seat expected to act.
func (g *Game) CurrentPlayerID() int { return g.Round.CurrentPlayerID }

// LegalActions returns the legal actions for the current player, empty once
// the game is over.
func (g *Game) LegalActions() []Action {
	if g.IsOver() {
		return nil
	}
	return g.Round.LegalActions()
}

// Step applies one action for the current player and returns the next
// player to act. Actions that are malformed or not currently legal are
// rejected with ErrInvalidAction (or a more specific sentinel) and leave
// no partial state behind.
//
// A select-trump action also reveals meld: the id wire carries no separate
// reveal action, so the ShowMeld transition rides on trump selection. When
// the applied action completes the round, scores are accumulated, the win
// condition is checked, and, if the game continues, the dealer is rotated
// and the next round dealt.
func (g *Game) Step(action Action) (int, error) {
	if g.IsOver() {
		return g.CurrentPlayerID(), fmt.Errorf("%w: game is over", ErrInvalidAction)
	}
	if !g.isLegal(action) {
		return g.CurrentPlayerID(), fmt.Errorf("%w: %s is not legal now", ErrInvalidAction, action)
	}

	switch action.Kind {
	case ActionPassBid, ActionBid:
		if err := g.Round.MakeCall(action); err != nil {
			return g.CurrentPlayerID(), err
		}
	case ActionSelectTrump:
		if err := g.Round.SetTrump(action.Trump); err != nil {
			return g.CurrentPlayerID(), err
		}
		if err := g.Round.ShowMeld(); err != nil {
			return g.CurrentPlayerID(), err
		}
	case ActionPlayCard:
		if err := g.Round.PlayCard(action); err != nil {
			return g.CurrentPlayerID(), err
		}
	default:
		return g.CurrentPlayerID(), fmt.Errorf("%w: unhandled kind %d", ErrInvalidAction, action.Kind)
	}

	if g.Round.IsOver() {
		g.finishRound()
	}
	return g.CurrentPlayerID(), nil
}

func (g *Game) isLegal(action Action) bool {
	// Kind is checked alongside the id: non-canonical payloads (a bid of
	// 20, say) can collide with another action's id.
	id := action.ID()
	for _, a := range g.Round.LegalActions() {
		if a.Kind == action.Kind && a.ID() == id {
			return true
		}
	}
	return false
}

// finishRound folds the completed round into the cumulative totals and
// either ends the game or deals the next round.
func (g *Game) finishRound() {
	scores := g.Round.CalculateScores()
	for i, s := range scores {
		g.Scores[i] += s
	}

	reached := false
	for _, total := range g.Scores {
		if total >= g.Rules.TargetScore {
			reached = true
			break
		}
	}
	if reached {
		// The bid winner wins outright when they made the target;
		// otherwise the highest total takes it.
		if bw := g.Round.BidWinnerID; bw >= 0 && g.Scores[bw] >= g.Rules.TargetScore {
			g.WinnerID = bw
			return
		}
		best := 0
		for i := 1; i < NumPlayers; i++ {
			if g.Scores[i] > g.Scores[best] {
				best = i
			}
		}
		g.WinnerID = best
		return
	}

	g.DealerID = (g.DealerID + 1) % NumPlayers
	g.RoundNumber++
	g.Round = mustNewRound(g.DealerID, g.RNG)
}

// Payoffs returns the per-player reward: zero for everyone while the game
// is in progress; at game end, each player's cumulative total plus the win
// bonus for the winner and the loss penalty for the others.
func (g *Game) Payoffs() [NumPlayers]float64 {
	var payoffs [NumPlayers]float64
	if !g.IsOver() {
		return payoffs
	}
	for i, total := range g.Scores {
		if i == g.WinnerID {
			payoffs[i] = float64(total) + g.Rules.WinBonus
		} else {
			payoffs[i] = float64(total) + g.Rules.LossPenalty
		}
	}
	return payoffs
}

// PerfectInfo snapshots the live round.
func (g *Game) PerfectInfo() PerfectInfo { return g.Round.PerfectInfo() }
