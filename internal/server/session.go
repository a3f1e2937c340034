// Package server hosts pinochle games over WebSockets: it seats players,
// relays their actions into the engine, and broadcasts redacted state back.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/NullPatterson/ctpinochle/engine"
)

// OnGameEndFunc defines the signature for a callback executed when a game
// ends. It receives the session ID, the winning seat, and the final scores.
type OnGameEndFunc func(sessionID uuid.UUID, winnerSeat int, scores [3]int)

// Seat binds a connected player to a seat index.
type Seat struct {
	PlayerID  uuid.UUID
	Connected bool
}

// Session represents the state and lifecycle of a single hosted game.
type Session struct {
	ID   uuid.UUID
	Seed uint64

	game *engine.Game

	seats [engine.NumPlayers]*Seat

	// Lifecycle state.
	Started  bool // All seats filled and round one underway.
	GameOver bool

	TurnTimeout time.Duration // Zero disables the turn timer.
	turnTimer   *time.Timer

	mu  sync.Mutex
	log *logrus.Entry

	// Communication callbacks, installed by the transport layer.
	BroadcastFn       func(ev GameEvent)           // Sends an event to all connected seats.
	BroadcastToSeatFn func(seat int, ev GameEvent) // Sends an event to a single seat.
	OnGameEnd         OnGameEndFunc                // Executed once when the game finishes.
}

// NewSession creates a hosted game seeded for deterministic replay. Seats
// are filled later via AddPlayer.
func NewSession(seed uint64, rules engine.Rules, log *logrus.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:   id,
		Seed: seed,
		game: engine.NewGame(seed, rules),
		log:  log.WithField("game", id),
	}
}

// AddPlayer seats a player, reusing their previous seat when the same
// identity rejoins. The seat-assignment event echoes the identity so the
// client can present it on a later reconnect.
// Returns the seat index, or an error when the table is full.
func (s *Session) AddPlayer(playerID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := playerID

	for i, seat := range s.seats {
		if seat != nil && seat.PlayerID == playerID {
			seat.Connected = true
			s.log.Infof("Player %s reconnected to seat %d.", playerID, i)
			s.fireEventToSeat(i, GameEvent{Type: EventSeatAssigned, GameID: s.ID, Seat: seatRef(i), PlayerID: &pid})
			s.fireEvent(GameEvent{Type: EventPlayerJoined, GameID: s.ID, Seat: seatRef(i)})
			s.sendSyncStateLocked(i)
			return i, nil
		}
	}

	for i, seat := range s.seats {
		if seat == nil {
			s.seats[i] = &Seat{PlayerID: playerID, Connected: true}
			s.log.Infof("Player %s seated at %d.", playerID, i)
			s.fireEventToSeat(i, GameEvent{Type: EventSeatAssigned, GameID: s.ID, Seat: seatRef(i), PlayerID: &pid})
			s.fireEvent(GameEvent{Type: EventPlayerJoined, GameID: s.ID, Seat: seatRef(i)})

			if s.seatedCount() == engine.NumPlayers && !s.Started {
				s.startLocked()
			}
			return i, nil
		}
	}
	return -1, fmt.Errorf("session %s: all seats taken", s.ID)
}

// HandleDisconnect marks the seat as disconnected. The game continues; the
// turn timer, when enabled, keeps it moving.
func (s *Session) HandleDisconnect(playerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, seat := range s.seats {
		if seat != nil && seat.PlayerID == playerID {
			if !seat.Connected {
				return
			}
			seat.Connected = false
			s.log.Infof("Seat %d (player %s) disconnected.", i, playerID)
			s.fireEvent(GameEvent{Type: EventPlayerLeft, GameID: s.ID, Seat: seatRef(i)})
			return
		}
	}
}

// inactive reports whether the session holds no game worth keeping: play
// never started or is already over.
func (s *Session) inactive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.Started || s.GameOver
}

// seatOf returns the seat index of the player, or -1.
func (s *Session) seatOf(playerID uuid.UUID) int {
	for i, seat := range s.seats {
		if seat != nil && seat.PlayerID == playerID {
			return i
		}
	}
	return -1
}

func (s *Session) seatedCount() int {
	n := 0
	for _, seat := range s.seats {
		if seat != nil {
			n++
		}
	}
	return n
}

// startLocked begins play once all seats are filled. Assumes the lock is
// held.
func (s *Session) startLocked() {
	s.Started = true
	s.log.Infof("Game started with dealer at seat %d.", s.game.DealerID)
	s.fireEvent(GameEvent{Type: EventGameStart, GameID: s.ID})
	s.broadcastSyncStateLocked()
	s.broadcastPlayerTurn()
	s.scheduleTurnTimer()
}

// HandleAction validates and applies one action submitted by a player,
// identified by its wire id. Invalid submissions are answered privately;
// accepted ones are broadcast together with fresh state for every seat.
func (s *Session) HandleAction(playerID uuid.UUID, actionID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat := s.seatOf(playerID)
	if seat < 0 {
		s.log.Warnf("Action %d from unseated player %s ignored.", actionID, playerID)
		return
	}
	if s.GameOver || s.game.IsOver() {
		s.log.Infof("Action %d from seat %d ignored (game over).", actionID, seat)
		s.rejectAction(seat, actionID, "The game is over.")
		return
	}
	if !s.Started {
		s.log.Infof("Action %d from seat %d ignored (game not started).", actionID, seat)
		s.rejectAction(seat, actionID, "The game has not started.")
		return
	}
	if s.game.CurrentPlayerID() != seat {
		s.log.Infof("Action %d from seat %d ignored (not their turn).", actionID, seat)
		s.rejectAction(seat, actionID, "It's not your turn.")
		return
	}

	action, err := engine.DecodeAction(actionID)
	if err != nil {
		s.log.Infof("Malformed action %d from seat %d: %v.", actionID, seat, err)
		s.rejectAction(seat, actionID, "Unknown action id.")
		return
	}

	s.applyLocked(seat, action)
}

// applyLocked steps the engine and broadcasts the outcome. Assumes the
// lock is held and the action comes from the current seat.
func (s *Session) applyLocked(seat int, action engine.Action) {
	roundBefore := s.game.RoundNumber

	if _, err := s.game.Step(action); err != nil {
		s.log.Infof("Action %s from seat %d rejected: %v.", action, seat, err)
		s.rejectAction(seat, action.ID(), fmt.Sprintf("Illegal action: %s.", action))
		return
	}
	s.log.Debugf("Seat %d: %s.", seat, action)

	id := action.ID()
	s.fireEvent(GameEvent{Type: EventActionApplied, GameID: s.ID, Seat: seatRef(seat), ActionID: &id})

	if s.game.IsOver() {
		s.endGameLocked()
		return
	}
	if s.game.RoundNumber != roundBefore {
		scores := s.game.Scores
		s.log.Infof("Round %d complete; totals %v.", roundBefore, scores)
		s.fireEvent(GameEvent{Type: EventRoundEnd, GameID: s.ID, Scores: &scores})
	}

	s.broadcastSyncStateLocked()
	s.broadcastPlayerTurn()
	s.scheduleTurnTimer()
}

func (s *Session) rejectAction(seat, actionID int, msg string) {
	s.fireEventToSeat(seat, GameEvent{
		Type:     EventActionRejected,
		GameID:   s.ID,
		Seat:     seatRef(seat),
		ActionID: &actionID,
		Message:  msg,
	})
}

// endGameLocked finalizes the session, broadcasts results, and triggers
// the OnGameEnd callback. Assumes the lock is held.
func (s *Session) endGameLocked() {
	if s.GameOver {
		return
	}
	s.GameOver = true
	if s.turnTimer != nil {
		s.turnTimer.Stop()
	}

	results := GameResults{
		WinnerSeat: s.game.WinnerID,
		Scores:     s.game.Scores,
		Payoffs:    s.game.Payoffs(),
		Rounds:     s.game.RoundNumber,
	}
	s.log.Infof("Game over: seat %d wins with %d (totals %v).",
		results.WinnerSeat, results.Scores[results.WinnerSeat], results.Scores)

	s.broadcastSyncStateLocked()
	s.fireEvent(GameEvent{Type: EventGameEnd, GameID: s.ID, Results: &results})

	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, results.WinnerSeat, results.Scores)
	}
}

// scheduleTurnTimer arms (or re-arms) the auto-play timer for the current
// seat. Assumes the lock is held.
func (s *Session) scheduleTurnTimer() {
	if s.TurnTimeout <= 0 {
		return
	}
	if s.turnTimer != nil {
		s.turnTimer.Stop()
	}
	seat := s.game.CurrentPlayerID()
	s.turnTimer = time.AfterFunc(s.TurnTimeout, func() { s.handleTimeout(seat) })
}

// handleTimeout plays the first legal action for a seat that ran out its
// turn clock.
func (s *Session) handleTimeout(seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GameOver || !s.Started || s.game.CurrentPlayerID() != seat {
		return
	}
	actions := s.game.LegalActions()
	if len(actions) == 0 {
		return
	}
	s.log.Infof("Seat %d timed out; auto-playing %s.", seat, actions[0])
	s.applyLocked(seat, actions[0])
}

// SyncState pushes a fresh private state snapshot to one seat.
func (s *Session) SyncState(playerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat := s.seatOf(playerID)
	if seat < 0 {
		return
	}
	s.sendSyncStateLocked(seat)
}

func (s *Session) sendSyncStateLocked(seat int) {
	state := s.seatStateFor(seat)
	s.fireEventToSeat(seat, GameEvent{Type: EventPrivateSync, GameID: s.ID, State: &state})
}

func (s *Session) broadcastSyncStateLocked() {
	for seat, st := range s.seats {
		if st != nil && st.Connected {
			s.sendSyncStateLocked(seat)
		}
	}
}

func (s *Session) broadcastPlayerTurn() {
	seat := s.game.CurrentPlayerID()
	s.fireEvent(GameEvent{Type: EventPlayerTurn, GameID: s.ID, Seat: seatRef(seat)})
}

func (s *Session) fireEvent(ev GameEvent) {
	if s.BroadcastFn == nil {
		s.log.Warnf("BroadcastFn is nil, cannot broadcast event type %s.", ev.Type)
		return
	}
	s.BroadcastFn(ev)
}

func (s *Session) fireEventToSeat(seat int, ev GameEvent) {
	if s.BroadcastToSeatFn == nil {
		s.log.Warnf("BroadcastToSeatFn is nil, cannot send event type %s to seat %d.", ev.Type, seat)
		return
	}
	s.BroadcastToSeatFn(seat, ev)
}
