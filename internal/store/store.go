// Package store persists finished game results to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id     TEXT PRIMARY KEY,
	seed        INTEGER NOT NULL,
	rounds      INTEGER NOT NULL,
	winner_seat INTEGER NOT NULL,
	score_0     INTEGER NOT NULL,
	score_1     INTEGER NOT NULL,
	score_2     INTEGER NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
`

// Result is one finished game's summary row.
type Result struct {
	GameID     uuid.UUID
	Seed       uint64
	Rounds     int
	WinnerSeat int
	Scores     [3]int
	FinishedAt time.Time
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveResult inserts one finished game. A duplicate game id is an error.
func (s *Store) SaveResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_results
			(game_id, seed, rounds, winner_seat, score_0, score_1, score_2, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID.String(), int64(r.Seed), r.Rounds, r.WinnerSeat,
		r.Scores[0], r.Scores[1], r.Scores[2], r.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.GameID, err)
	}
	return nil
}

// ListResults returns up to limit results, most recent first.
func (s *Store) ListResults(ctx context.Context, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, seed, rounds, winner_seat, score_0, score_1, score_2, finished_at
		FROM game_results
		ORDER BY finished_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r    Result
			id   string
			seed int64
		)
		if err := rows.Scan(&id, &seed, &r.Rounds, &r.WinnerSeat,
			&r.Scores[0], &r.Scores[1], &r.Scores[2], &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.GameID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse game id %q: %w", id, err)
		}
		r.Seed = uint64(seed)
		results = append(results, r)
	}
	return results, rows.Err()
}
