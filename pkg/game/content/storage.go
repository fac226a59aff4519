package content

import (
	"context"
	"fmt"
	"time"
)

// ScoreRecord is one stored score
type ScoreRecord struct {
	GameID      int       `json:"gameId"`
	PlayerID    int       `json:"playerId"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Storage defines the interface for maze and score persistence
type Storage interface {
	SaveMaze(ctx context.Context, gameID int, level string, maze *Maze) error
	LoadMaze(ctx context.Context, gameID int, level string) (*Maze, error)
	SaveScore(ctx context.Context, record ScoreRecord) error
	Scores(ctx context.Context, gameID int) ([]ScoreRecord, error)
	Close() error
}

// StoreProvider serves mazes and records scores from a local Storage.
// It implements Provider and Scorer.
type StoreProvider struct {
	store Storage
	now   func() time.Time
}

// NewStoreProvider wraps a Storage
func NewStoreProvider(store Storage) *StoreProvider {
	return &StoreProvider{store: store, now: time.Now}
}

// FetchMaze implements Provider
func (p *StoreProvider) FetchMaze(ctx context.Context, gameID int, level string) (*Envelope, error) {
	maze, err := p.store.LoadMaze(ctx, gameID, NormalizeLevel(level))
	if err != nil {
		return nil, err
	}
	return &Envelope{Content: []Maze{*maze}}, nil
}

// SubmitScore implements Scorer
func (p *StoreProvider) SubmitScore(ctx context.Context, gameID, playerID, score int) error {
	err := p.store.SaveScore(ctx, ScoreRecord{
		GameID:      gameID,
		PlayerID:    playerID,
		Score:       score,
		SubmittedAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// Scores lists the stored scores of a game
func (p *StoreProvider) Scores(ctx context.Context, gameID int) ([]ScoreRecord, error) {
	return p.store.Scores(ctx, gameID)
}

func mazeKey(gameID int, level string) string {
	return fmt.Sprintf("%d/%s", gameID, NormalizeLevel(level))
}
