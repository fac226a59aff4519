package content

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// SeedEntry is one bundled maze and the game level it belongs to
type SeedEntry struct {
	GameID int    `json:"gameId"`
	Level  string `json:"level"`
	Maze   Maze   `json:"maze"`
}

// ParseSeed decodes a list of seed entries and checks every maze can be won
func ParseSeed(data []byte) ([]SeedEntry, error) {
	var entries []SeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: seed: %v", ErrMalformed, err)
	}
	for i := range entries {
		if err := entries[i].Maze.CheckSolvable(); err != nil {
			return nil, fmt.Errorf("seed entry %d (game %d %s): %w", i, entries[i].GameID, entries[i].Level, err)
		}
	}
	return entries, nil
}

// Seed writes entries into store. Without overwrite, levels the store
// already has are left alone. It returns how many mazes were written.
func Seed(ctx context.Context, store Storage, entries []SeedEntry, overwrite bool) (int, error) {
	written := 0
	for i := range entries {
		entry := &entries[i]
		if !overwrite {
			_, err := store.LoadMaze(ctx, entry.GameID, entry.Level)
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return written, err
			}
		}
		if err := store.SaveMaze(ctx, entry.GameID, NormalizeLevel(entry.Level), &entry.Maze); err != nil {
			return written, fmt.Errorf("seed game %d %s: %w", entry.GameID, entry.Level, err)
		}
		written++
	}
	return written, nil
}
