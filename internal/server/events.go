package server

import "github.com/google/uuid"

// GameEventType represents the type of a game-related event broadcast via
// WebSockets.
type GameEventType string

const (
	EventSeatAssigned   GameEventType = "seat_assigned"    // Private: the seat index granted to a joining player.
	EventPlayerJoined   GameEventType = "player_joined"    // Public: a seat was filled (or refilled on reconnect).
	EventPlayerLeft     GameEventType = "player_left"      // Public: a seat disconnected.
	EventGameStart      GameEventType = "game_start"       // Public: all seats filled, round one dealt.
	EventPlayerTurn     GameEventType = "game_player_turn" // Public: notification of the seat expected to act.
	EventActionApplied  GameEventType = "action_applied"   // Public: an action was accepted (with its id and seat).
	EventActionRejected GameEventType = "action_rejected"  // Private: the submitted action was refused.
	EventRoundEnd       GameEventType = "round_end"        // Public: a round completed; carries cumulative scores.
	EventGameEnd        GameEventType = "game_end"         // Public: the game is over; carries final results.
	EventPrivateSync    GameEventType = "private_sync"     // Private: full redacted state for one seat.
)

// GameResults is the payload of EventGameEnd.
type GameResults struct {
	WinnerSeat int        `json:"winnerSeat"`
	Scores     [3]int     `json:"scores"`
	Payoffs    [3]float64 `json:"payoffs"`
	Rounds     int        `json:"rounds"`
}

// GameEvent is the standard structure for broadcasting session changes.
// Only the fields relevant to the Type are populated.
type GameEvent struct {
	Type     GameEventType `json:"type"`
	GameID   uuid.UUID     `json:"gameId"`
	PlayerID *uuid.UUID    `json:"playerId,omitempty"` // Seat-assignment events: the identity to present when rejoining.
	Seat     *int          `json:"seat,omitempty"`     // Seat initiating or targeted by the event.
	ActionID *int          `json:"actionId,omitempty"` // Wire id of an applied action.
	Message  string        `json:"message,omitempty"`  // Human-readable detail for rejections.
	Scores   *[3]int       `json:"scores,omitempty"`   // Cumulative totals for round-end events.
	Results  *GameResults  `json:"results,omitempty"`  // Final results for game-end events.
	State    *SeatState    `json:"state,omitempty"`    // Redacted state for sync events.
}

func seatRef(seat int) *int { return &seat }
