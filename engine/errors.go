package engine

import "errors"

// Every error the engine returns wraps one of these sentinels. They all mark
// caller-contract violations: a well-behaved caller consults LegalActions
// before applying an action and never sees any of them. There is no retry
// and no rollback; a host should treat them as fatal for the game instance.
var (
	// ErrInvalidBid marks a bid that does not strictly exceed the current
	// bid or lies outside [MinBid, MaxBid].
	ErrInvalidBid = errors.New("invalid bid")

	// ErrInvalidTrump marks a trump suit outside C/D/H/S or a second
	// set-trump attempt in the same round.
	ErrInvalidTrump = errors.New("invalid trump")

	// ErrInvalidAction marks an action that is malformed, outside the
	// decodable id space, or not legal in the current state.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidPlayer marks a player id outside {0, 1, 2}.
	ErrInvalidPlayer = errors.New("invalid player")

	// ErrPrematureMeld marks a set-trump before bidding is resolved or a
	// card play before meld has been shown.
	ErrPrematureMeld = errors.New("premature meld")
)
