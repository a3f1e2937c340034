// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings the server and its storage layer need.
type Config struct {
	// Addr is the listen address for the HTTP/WebSocket server.
	Addr string

	// DatabasePath is the SQLite file holding finished game results.
	DatabasePath string

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string

	// TargetScore overrides the cumulative total that ends a game.
	TargetScore int

	// TurnTimeoutSec is how long a seat may sit on its turn before the
	// session auto-plays for it; 0 disables the timer.
	TurnTimeoutSec int
}

// Load reads the environment, after loading .env if present. Missing
// variables fall back to defaults suitable for local play.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:           envStr("PINOCHLE_ADDR", ":8080"),
		DatabasePath:   envStr("PINOCHLE_DB", "pinochle.db"),
		LogLevel:       envStr("PINOCHLE_LOG_LEVEL", "info"),
		TargetScore:    envInt("PINOCHLE_TARGET_SCORE", 100),
		TurnTimeoutSec: envInt("PINOCHLE_TURN_TIMEOUT_SEC", 0),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
