package content

import (
	"context"
)

// Provider fetches maze content for a game level
type Provider interface {
	FetchMaze(ctx context.Context, gameID int, level string) (*Envelope, error)
}

// Scorer records the score of a finished session
type Scorer interface {
	SubmitScore(ctx context.Context, gameID, playerID, score int) error
}

// Identity resolves the player a session plays for
type Identity interface {
	PlayerID(ctx context.Context) (int, bool)
}

// Presence is told when a session starts and stops being played, so it can
// pause background music or mark the player busy.
type Presence interface {
	SetActive(active bool)
}

// StaticIdentity is a fixed player id. Zero means nobody is signed in.
type StaticIdentity int

// PlayerID implements Identity
func (s StaticIdentity) PlayerID(context.Context) (int, bool) {
	return int(s), s > 0
}

// NopPresence ignores presence changes
type NopPresence struct{}

// SetActive implements Presence
func (NopPresence) SetActive(bool) {}

// PresenceFunc adapts a function to Presence
type PresenceFunc func(active bool)

// SetActive implements Presence
func (f PresenceFunc) SetActive(active bool) {
	f(active)
}
