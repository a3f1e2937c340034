package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/NullPatterson/ctpinochle/engine"
	"github.com/NullPatterson/ctpinochle/internal/store"
)

// ClientMessage is the envelope clients send over the WebSocket.
//
//	{"type":"join"}                    create a game and take a seat
//	{"type":"join","gameId":"..."}     take a seat in an existing game
//	{"type":"join","gameId":"...","playerId":"..."}
//	                                   reclaim a previous seat after a drop
//	{"type":"act","actionId":17}       submit an action by wire id
//	{"type":"state"}                   request a fresh private sync
//
// The playerId to present on reconnect is the one the seat-assignment
// event carried when the seat was first granted.
type ClientMessage struct {
	Type     string `json:"type"`
	GameID   string `json:"gameId,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
	ActionID *int   `json:"actionId,omitempty"`
}

// Server owns the live sessions and their WebSocket connections.
type Server struct {
	log   *logrus.Logger
	store *store.Store
	rules engine.Rules

	turnTimeout time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	conns    map[uuid.UUID]map[uuid.UUID]*websocket.Conn // session -> player -> conn
}

// New creates a server. The store may be nil, in which case results are
// not persisted.
func New(log *logrus.Logger, st *store.Store, rules engine.Rules, turnTimeout time.Duration) *Server {
	return &Server{
		log:         log,
		store:       st,
		rules:       rules,
		turnTimeout: turnTimeout,
		sessions:    make(map[uuid.UUID]*Session),
		conns:       make(map[uuid.UUID]map[uuid.UUID]*websocket.Conn),
	}
}

// Handler returns the HTTP routes: /ws for game play and /results for the
// recent-results listing.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/results", srv.handleResults)
	return mux
}

func (srv *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if srv.store == nil {
		http.Error(w, "results not persisted", http.StatusNotFound)
		return
	}
	results, err := srv.store.ListResults(r.Context(), 50)
	if err != nil {
		srv.log.Errorf("List results: %v.", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// handleWS upgrades the connection and runs the per-player read loop. Each
// connection is one player; the first message must be a join.
func (srv *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		srv.log.Warnf("WebSocket accept failed: %v.", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ctx := r.Context()

	var msg ClientMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil || msg.Type != "join" {
		conn.Close(websocket.StatusPolicyViolation, "expected a join message")
		return
	}

	// A client presenting the playerId from an earlier seat assignment
	// reclaims that seat; otherwise it gets a fresh identity.
	playerID := uuid.New()
	if msg.PlayerID != "" {
		id, err := uuid.Parse(msg.PlayerID)
		if err != nil {
			conn.Close(websocket.StatusPolicyViolation, "malformed playerId")
			return
		}
		playerID = id
	}

	session, err := srv.joinSession(msg.GameID, playerID, conn)
	if err != nil {
		srv.log.Infof("Player %s join failed: %v.", playerID, err)
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}
	defer srv.leaveSession(session, playerID, conn)

	for {
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return
		}
		switch msg.Type {
		case "act":
			if msg.ActionID == nil {
				srv.log.Infof("Player %s sent act without actionId.", playerID)
				continue
			}
			session.HandleAction(playerID, *msg.ActionID)
		case "state":
			session.SyncState(playerID)
		default:
			srv.log.Infof("Player %s sent unknown message type %q.", playerID, msg.Type)
		}
	}
}

// joinSession finds or creates the session and seats the player.
func (srv *Server) joinSession(gameID string, playerID uuid.UUID, conn *websocket.Conn) (*Session, error) {
	srv.mu.Lock()

	var session *Session
	if gameID == "" {
		session = srv.newSessionLocked()
	} else {
		id, err := uuid.Parse(gameID)
		if err != nil {
			srv.mu.Unlock()
			return nil, err
		}
		var ok bool
		if session, ok = srv.sessions[id]; !ok {
			srv.mu.Unlock()
			return nil, fmt.Errorf("unknown game %s", id)
		}
	}
	srv.conns[session.ID][playerID] = conn
	srv.mu.Unlock()

	if _, err := session.AddPlayer(playerID); err != nil {
		srv.mu.Lock()
		delete(srv.conns[session.ID], playerID)
		srv.mu.Unlock()
		return nil, err
	}
	return session, nil
}

// leaveSession tears down one connection. A connection superseded by a
// reconnect under the same identity is ignored; when the last connection
// drops from a session with no game in progress, the session is reclaimed.
func (srv *Server) leaveSession(session *Session, playerID uuid.UUID, conn *websocket.Conn) {
	srv.mu.Lock()
	m, ok := srv.conns[session.ID]
	if !ok || m[playerID] != conn {
		srv.mu.Unlock()
		return
	}
	delete(m, playerID)
	abandoned := len(m) == 0
	srv.mu.Unlock()

	session.HandleDisconnect(playerID)
	if abandoned && session.inactive() {
		srv.log.Infof("Game %s abandoned.", session.ID)
		srv.removeSession(session.ID)
	}
}

// newSessionLocked creates a session wired to this server's transport and
// store. Assumes srv.mu is held.
func (srv *Server) newSessionLocked() *Session {
	session := NewSession(rand.Uint64(), srv.rules, srv.log)
	session.TurnTimeout = srv.turnTimeout
	session.BroadcastFn = func(ev GameEvent) { srv.broadcast(session, ev) }
	session.BroadcastToSeatFn = func(seat int, ev GameEvent) { srv.sendToSeat(session, seat, ev) }
	session.OnGameEnd = srv.handleGameEnd

	srv.sessions[session.ID] = session
	srv.conns[session.ID] = make(map[uuid.UUID]*websocket.Conn)
	srv.log.Infof("Created game %s (seed %d).", session.ID, session.Seed)
	return session
}

func (srv *Server) broadcast(session *Session, ev GameEvent) {
	srv.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(srv.conns[session.ID]))
	for _, c := range srv.conns[session.ID] {
		conns = append(conns, c)
	}
	srv.mu.Unlock()

	for _, c := range conns {
		srv.write(c, ev)
	}
}

func (srv *Server) sendToSeat(session *Session, seat int, ev GameEvent) {
	st := session.seats[seat]
	if st == nil {
		return
	}
	srv.mu.Lock()
	conn := srv.conns[session.ID][st.PlayerID]
	srv.mu.Unlock()
	if conn != nil {
		srv.write(conn, ev)
	}
}

func (srv *Server) write(conn *websocket.Conn, ev GameEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, conn, ev); err != nil {
		srv.log.Debugf("Write event %s failed: %v.", ev.Type, err)
	}
}

// handleGameEnd persists the finished game and releases the session. It
// runs as the session's OnGameEnd callback, after the final events have
// been broadcast.
func (srv *Server) handleGameEnd(sessionID uuid.UUID, winnerSeat int, scores [3]int) {
	srv.persistResult(sessionID, winnerSeat, scores)
	srv.removeSession(sessionID)
}

// removeSession drops the session and its connection registry. Idempotent.
func (srv *Server) removeSession(id uuid.UUID) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if _, ok := srv.sessions[id]; !ok {
		return
	}
	delete(srv.sessions, id)
	delete(srv.conns, id)
	srv.log.Infof("Removed game %s.", id)
}

// persistResult writes a finished game to the store.
func (srv *Server) persistResult(sessionID uuid.UUID, winnerSeat int, scores [3]int) {
	if srv.store == nil {
		return
	}
	srv.mu.Lock()
	session := srv.sessions[sessionID]
	srv.mu.Unlock()
	if session == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.store.SaveResult(ctx, store.Result{
		GameID:     sessionID,
		Seed:       session.Seed,
		Rounds:     session.game.RoundNumber,
		WinnerSeat: winnerSeat,
		Scores:     scores,
		FinishedAt: time.Now(),
	})
	if err != nil {
		srv.log.Errorf("Persist result for game %s: %v.", sessionID, err)
	}
}
