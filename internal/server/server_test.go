package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NullPatterson/ctpinochle/engine"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(testLogger(), nil, engine.DefaultRules(), 0)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http") + "/ws"
}

// readUntil discards events until one of the wanted type arrives.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, want GameEventType) GameEvent {
	t.Helper()
	for {
		var ev GameEvent
		require.NoError(t, wsjson.Read(ctx, conn, &ev), "waiting for %s", want)
		if ev.Type == want {
			return ev
		}
	}
}

// dialJoin opens a connection, sends a join, and waits for the seat
// assignment.
func dialJoin(t *testing.T, ctx context.Context, url, gameID, playerID string) (*websocket.Conn, GameEvent) {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	require.NoError(t, wsjson.Write(ctx, conn, ClientMessage{
		Type:     "join",
		GameID:   gameID,
		PlayerID: playerID,
	}))
	return conn, readUntil(t, ctx, conn, EventSeatAssigned)
}

// TestServerReconnectReclaimsSeat drives the reclaim flow over the wire: a
// seated client drops mid-game, then rejoins with the playerId its seat
// assignment carried and gets the same seat back.
func TestServerReconnectReclaimsSeat(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	url := wsURL(ts.URL)

	conn0, ev0 := dialJoin(t, ctx, url, "", "")
	defer conn0.Close(websocket.StatusNormalClosure, "")
	require.Equal(t, 0, *ev0.Seat)
	require.NotNil(t, ev0.PlayerID)
	gameID := ev0.GameID.String()

	conn1, ev1 := dialJoin(t, ctx, url, gameID, "")
	require.Equal(t, 1, *ev1.Seat)
	require.NotNil(t, ev1.PlayerID)

	conn2, ev2 := dialJoin(t, ctx, url, gameID, "")
	defer conn2.Close(websocket.StatusNormalClosure, "")
	require.Equal(t, 2, *ev2.Seat)

	readUntil(t, ctx, conn0, EventGameStart)

	// Seat 1 drops and rejoins with its prior identity.
	prior := ev1.PlayerID.String()
	conn1.Close(websocket.StatusNormalClosure, "")

	conn1b, ev1b := dialJoin(t, ctx, url, gameID, prior)
	defer conn1b.Close(websocket.StatusNormalClosure, "")
	assert.Equal(t, 1, *ev1b.Seat)
	require.NotNil(t, ev1b.PlayerID)
	assert.Equal(t, prior, ev1b.PlayerID.String())

	// The reclaimed seat immediately receives a private state snapshot.
	sync := readUntil(t, ctx, conn1b, EventPrivateSync)
	require.NotNil(t, sync.State)
	assert.NotEmpty(t, sync.State.Seats[1].RevealedHand)
}

func TestServerRejectsMalformedPlayerID(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(ts.URL), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")
	require.NoError(t, wsjson.Write(ctx, conn, ClientMessage{Type: "join", PlayerID: "not-a-uuid"}))

	var ev GameEvent
	assert.Error(t, wsjson.Read(ctx, conn, &ev))
}

// TestServerRemovesFinishedSessions: a session that plays to completion is
// dropped from the server's registries.
func TestServerRemovesFinishedSessions(t *testing.T) {
	srv := New(testLogger(), nil, engine.DefaultRules(), 0)

	srv.mu.Lock()
	session := srv.newSessionLocked()
	srv.mu.Unlock()

	var players [3]uuid.UUID
	for i := range players {
		players[i] = uuid.New()
		_, err := session.AddPlayer(players[i])
		require.NoError(t, err)
	}

	for steps := 0; !session.GameOver; steps++ {
		require.Less(t, steps, 100000, "game did not terminate")

		session.mu.Lock()
		seat := session.game.CurrentPlayerID()
		actions := session.game.LegalActions()
		session.mu.Unlock()
		require.NotEmpty(t, actions)

		session.HandleAction(players[seat], actions[0].ID())
	}

	srv.mu.Lock()
	_, haveSession := srv.sessions[session.ID]
	_, haveConns := srv.conns[session.ID]
	srv.mu.Unlock()
	assert.False(t, haveSession, "finished session still registered")
	assert.False(t, haveConns, "finished session still holds a conn registry")
}

// TestServerRemovesAbandonedSessions: a game whose only player leaves
// before play starts is reclaimed.
func TestServerRemovesAbandonedSessions(t *testing.T) {
	srv, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, _ := dialJoin(t, ctx, wsURL(ts.URL), "", "")
	conn.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		return len(srv.sessions) == 0 && len(srv.conns) == 0
	}, 5*time.Second, 10*time.Millisecond, "abandoned session not reclaimed")
}
