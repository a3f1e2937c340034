package server

import (
	"github.com/google/uuid"

	"github.com/NullPatterson/ctpinochle/engine"
)

// ObfCard represents a card for client synchronization. Known is true only
// when rank and suit are revealed to the requesting seat.
type ObfCard struct {
	ID    int    `json:"id"`
	Known bool   `json:"known"`
	Rank  string `json:"rank,omitempty"`
	Suit  string `json:"suit,omitempty"`
}

// TrickCard is one play of the trick in progress.
type TrickCard struct {
	Seat int     `json:"seat"`
	Card ObfCard `json:"card"`
}

// SeatPlayerState is one seat's public state, plus the hand when the state
// is built for that seat itself.
type SeatPlayerState struct {
	Seat          int  `json:"seat"`
	Connected     bool `json:"connected"`
	IsCurrentTurn bool `json:"isCurrentTurn"`
	HandSize      int  `json:"handSize"`
	Passed        bool `json:"passed"`
	// MeldPoints is zero until meld has been shown.
	MeldPoints int `json:"meldPoints"`
	TricksWon  int `json:"tricksWon"`
	// RevealedHand is populated only for the seat requesting the state.
	RevealedHand []ObfCard `json:"revealedHand,omitempty"`
}

// SeatState is the full game state redacted for one observer: the
// observer's own hand is revealed, everyone else's stays hidden behind
// hand sizes.
type SeatState struct {
	GameID      uuid.UUID `json:"gameId"`
	Started     bool      `json:"started"`
	GameOver    bool      `json:"gameOver"`
	RoundNumber int       `json:"roundNumber"`
	DealerSeat  int       `json:"dealerSeat"`
	CurrentSeat int       `json:"currentSeat"`
	Phase       string    `json:"phase"`

	CurrentBid    int    `json:"currentBid"`
	BidWinnerSeat int    `json:"bidWinnerSeat"`
	Trump         string `json:"trump,omitempty"`

	Trick  []TrickCard       `json:"trick,omitempty"`
	Scores [3]int            `json:"scores"`
	Seats  []SeatPlayerState `json:"seats"`

	// LegalActionIDs lists the wire ids the observer may submit now;
	// empty when it is not the observer's turn.
	LegalActionIDs []int `json:"legalActionIds,omitempty"`
}

func obfuscate(c engine.Card, known bool) ObfCard {
	obf := ObfCard{ID: int(c), Known: known}
	if known {
		obf.Rank = c.Rank().String()
		obf.Suit = c.Suit().String()
	}
	return obf
}

// seatStateFor generates a snapshot of the session tailored to the
// perspective of the requesting seat. Assumes the session lock is HELD by
// the caller.
func (s *Session) seatStateFor(forSeat int) SeatState {
	g := s.game
	round := g.Round

	state := SeatState{
		GameID:        s.ID,
		Started:       s.Started,
		GameOver:      g.IsOver() || s.GameOver,
		RoundNumber:   g.RoundNumber,
		DealerSeat:    round.DealerID,
		CurrentSeat:   round.CurrentPlayerID,
		Phase:         round.Phase.String(),
		CurrentBid:    round.CurrentBid,
		BidWinnerSeat: round.BidWinnerID,
		Scores:        g.Scores,
	}
	if round.Trump != nil {
		state.Trump = round.Trump.String()
	}

	// Trick in progress: plays are public knowledge.
	for _, m := range round.TrickMoves() {
		state.Trick = append(state.Trick, TrickCard{
			Seat: m.Player,
			Card: obfuscate(m.Action.Card, true),
		})
	}

	state.Seats = make([]SeatPlayerState, engine.NumPlayers)
	for seat := 0; seat < engine.NumPlayers; seat++ {
		ps := SeatPlayerState{
			Seat:          seat,
			Connected:     s.seats[seat] != nil && s.seats[seat].Connected,
			IsCurrentTurn: s.Started && !state.GameOver && round.CurrentPlayerID == seat,
			HandSize:      len(round.Players[seat].Hand),
			Passed:        round.Passed[seat],
			TricksWon:     round.TricksWon[seat],
		}
		if round.MeldShown {
			ps.MeldPoints = round.MeldPoints[seat]
		}
		if seat == forSeat {
			hand := round.Players[seat].Hand
			ps.RevealedHand = make([]ObfCard, len(hand))
			for i, c := range hand {
				ps.RevealedHand[i] = obfuscate(c, true)
			}
		}
		state.Seats[seat] = ps
	}

	if s.Started && !state.GameOver && round.CurrentPlayerID == forSeat {
		for _, a := range g.LegalActions() {
			state.LegalActionIDs = append(state.LegalActionIDs, a.ID())
		}
	}
	return state
}
